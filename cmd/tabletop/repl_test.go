package main

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/magefree/mage-client-go/internal/config"
	"github.com/magefree/mage-client-go/internal/game/protocol"
)

type captureSender struct {
	mu   sync.Mutex
	cmds []protocol.Command
}

func (c *captureSender) Send(cc protocol.CommandContainer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cmds = append(c.cmds, cc.Commands...)
	return nil
}

func runScript(t *testing.T, script ...string) (*captureSender, string) {
	t.Helper()
	color.NoColor = true
	cfg := &config.Config{Game: config.GameConfig{
		GameID:          10,
		PlayerID:        1,
		PlayerName:      "alice",
		DefaultTopCards: 3,
		DefaultDieSides: 20,
	}}
	lines := make(chan string, len(script))
	for _, l := range script {
		lines <- l
	}
	close(lines)

	var out bytes.Buffer
	sender := &captureSender{}
	s := newSession(zaptest.NewLogger(t), cfg, sender, nil, &out, lines)
	s.AddPlayer(1, "alice")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.NoError(t, repl(ctx, s, lines, &out))
	s.Close()
	<-done
	return sender, out.String()
}

func TestReplSendsCommands(t *testing.T) {
	sender, out := runScript(t, "draw 2", "roll 6", "say hello there", "bogus", "quit", "shuffle")

	assert.Equal(t, []protocol.Command{
		protocol.DrawCardsCommand{Number: 2},
		protocol.RollDieCommand{Sides: 6},
		protocol.GameSayCommand{Message: "hello there"},
	}, sender.cmds)
	assert.Contains(t, out, `unknown command "bogus"`)
}

func TestReplPromptReadsNextLine(t *testing.T) {
	sender, _ := runScript(t, "draw", "3", "roll", "", "draw", "cancel")

	assert.Equal(t, []protocol.Command{
		protocol.DrawCardsCommand{Number: 3},
		protocol.RollDieCommand{Sides: 20},
	}, sender.cmds)
}

func TestReplUsageErrors(t *testing.T) {
	sender, out := runScript(t, "draw x", "select table", "play hand 9", "move sideways")

	assert.Empty(t, sender.cmds)
	assert.Contains(t, out, `bad number "x"`)
	assert.Contains(t, out, "usage: select")
	assert.Contains(t, out, "no card 9 in hand")
	assert.Contains(t, out, `unknown destination "sideways"`)
}

func TestPrintState(t *testing.T) {
	_, out := runScript(t, "state")

	assert.Contains(t, out, "player 1 alice (you)")
	assert.Contains(t, out, "checksum ")
}
