// Package config loads the client configuration from a YAML file with MAGE_ environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete client configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
	Game    GameConfig    `mapstructure:"game"`
	Replay  ReplayConfig  `mapstructure:"replay"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig describes the websocket endpoint.
type ServerConfig struct {
	URL              string        `mapstructure:"url"`
	HandshakeTimeout time.Duration `mapstructure:"handshake_timeout"`
	WriteWait        time.Duration `mapstructure:"write_wait"`
	PongWait         time.Duration `mapstructure:"pong_wait"`
	SendQueue        int           `mapstructure:"send_queue"`
}

// GameConfig identifies the game to join and tunes the local player.
type GameConfig struct {
	GameID          int    `mapstructure:"game_id"`
	PlayerID        int    `mapstructure:"player_id"`
	PlayerName      string `mapstructure:"player_name"`
	CardDatabase    string `mapstructure:"card_database"`
	DefaultTopCards int    `mapstructure:"default_top_cards"`
	DefaultDieSides int    `mapstructure:"default_die_sides"`
}

// ReplayConfig controls journal recording.
type ReplayConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.url", "ws://localhost:4747/game")
	v.SetDefault("server.handshake_timeout", 10*time.Second)
	v.SetDefault("server.write_wait", 10*time.Second)
	v.SetDefault("server.pong_wait", 60*time.Second)
	v.SetDefault("server.send_queue", 256)

	v.SetDefault("game.game_id", 0)
	v.SetDefault("game.player_id", 0)
	v.SetDefault("game.player_name", "")
	v.SetDefault("game.card_database", "")
	v.SetDefault("game.default_top_cards", 3)
	v.SetDefault("game.default_die_sides", 20)

	v.SetDefault("replay.enabled", false)
	v.SetDefault("replay.directory", "replays")
}

// Load reads the configuration file at path. A missing file is not an error: defaults and
// environment variables (MAGE_SERVER_URL, MAGE_LOGGING_LEVEL, ...) still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("MAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging.format %q", c.Logging.Format)
	}
	if c.Server.PongWait <= 0 {
		return fmt.Errorf("server.pong_wait must be positive")
	}
	if c.Server.WriteWait <= 0 {
		return fmt.Errorf("server.write_wait must be positive")
	}
	if c.Server.SendQueue <= 0 {
		return fmt.Errorf("server.send_queue must be positive")
	}
	if c.Game.DefaultDieSides < 2 || c.Game.DefaultDieSides > 1000 {
		return fmt.Errorf("game.default_die_sides must be between 2 and 1000, got %d", c.Game.DefaultDieSides)
	}
	if c.Game.DefaultTopCards < 1 {
		return fmt.Errorf("game.default_top_cards must be at least 1, got %d", c.Game.DefaultTopCards)
	}
	return nil
}
