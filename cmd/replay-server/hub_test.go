package main

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/magefree/mage-client-go/internal/game/protocol"
)

func TestHubPlaysFeedAndReadsCommands(t *testing.T) {
	snapshot, err := protocol.EncodeGameState(protocol.GameState{
		GameID:  3,
		Players: []protocol.PlayerInfo{{ID: 1, Name: "alice"}},
	})
	require.NoError(t, err)
	entry, err := protocol.EncodeEventContainer(protocol.EventContainer{
		GameID: 3,
		Events: []protocol.GameEvent{{PlayerID: 1, Event: protocol.ShuffleEvent{}}},
	})
	require.NoError(t, err)

	h := newHub(zaptest.NewLogger(t), feed{snapshot: snapshot, entries: [][]byte{entry, entry}})
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	msg, err := protocol.DecodeServerMessage(data)
	require.NoError(t, err)
	gs, ok := msg.(*protocol.GameState)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, 3, gs.GameID)

	for i := 0; i < 2; i++ {
		_, data, err = conn.ReadMessage()
		require.NoError(t, err)
		msg, err = protocol.DecodeServerMessage(data)
		require.NoError(t, err)
		assert.IsType(t, &protocol.EventContainer{}, msg)
	}

	out, err := protocol.EncodeCommandContainer(protocol.CommandContainer{
		ID:       "c1",
		GameID:   3,
		PlayerID: 1,
		Commands: []protocol.Command{protocol.ShuffleCommand{}},
	})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, out))
	assert.Equal(t, 1, h.Count())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return h.Count() == 0 }, time.Second, 10*time.Millisecond)
}
