package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 60*time.Second, cfg.Server.PongWait)
	assert.Equal(t, 3, cfg.Game.DefaultTopCards)
	assert.Equal(t, 20, cfg.Game.DefaultDieSides)
	assert.Equal(t, "replays", cfg.Replay.Directory)
	assert.False(t, cfg.Replay.Enabled)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
server:
  url: ws://example.test/game
  pong_wait: 30s
game:
  game_id: 12
  player_id: 3
  player_name: carol
  default_die_sides: 6
replay:
  enabled: true
  directory: /tmp/journals
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "ws://example.test/game", cfg.Server.URL)
	assert.Equal(t, 30*time.Second, cfg.Server.PongWait)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteWait, "unset keys keep defaults")
	assert.Equal(t, 12, cfg.Game.GameID)
	assert.Equal(t, "carol", cfg.Game.PlayerName)
	assert.Equal(t, 6, cfg.Game.DefaultDieSides)
	assert.True(t, cfg.Replay.Enabled)
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  url: ws://file.test\n")
	t.Setenv("MAGE_SERVER_URL", "ws://env.test")
	t.Setenv("MAGE_GAME_PLAYER_ID", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ws://env.test", cfg.Server.URL)
	assert.Equal(t, 7, cfg.Game.PlayerID)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, "logging:\n  format: xml\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "game:\n  default_die_sides: 1\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "logging: [unclosed\n"))
	assert.Error(t, err)
}
