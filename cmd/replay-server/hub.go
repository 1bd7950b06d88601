package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/magefree/mage-client-go/internal/game/protocol"
)

// feed is what every connecting client is sent: an optional snapshot followed by recorded
// server messages.
type feed struct {
	snapshot []byte
	entries  [][]byte
	interval time.Duration
}

type client struct {
	conn     *websocket.Conn
	playerID int
	commands int
}

// hub serves the feed to tabletop clients and logs the commands they send back.
type hub struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader
	feed     feed

	mu      sync.Mutex
	clients map[*client]bool
}

func newHub(logger *zap.Logger, f feed) *hub {
	return &hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		feed:    f,
		clients: make(map[*client]bool),
	}
}

func (h *hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
	h.logger.Info("client registered", zap.String("remote", c.conn.RemoteAddr().String()))
}

func (h *hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		h.logger.Info("client unregistered",
			zap.Int("player_id", c.playerID),
			zap.Int("commands", c.commands))
	}
}

// Count returns the number of connected clients.
func (h *hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, playerID: protocol.NoPlayer}
	h.register(c)
	defer func() {
		h.unregister(c)
		conn.Close()
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.readCommands(c)
	}()

	if !h.play(c, done) {
		return
	}
	<-done
}

// play writes the feed and reports whether the client is still connected.
func (h *hub) play(c *client, done <-chan struct{}) bool {
	if h.feed.snapshot != nil {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, h.feed.snapshot); err != nil {
			h.logger.Warn("failed to send snapshot", zap.Error(err))
			return false
		}
	}
	for i, entry := range h.feed.entries {
		if h.feed.interval > 0 {
			select {
			case <-done:
				return false
			case <-time.After(h.feed.interval):
			}
		}
		if err := c.conn.WriteMessage(websocket.BinaryMessage, entry); err != nil {
			h.logger.Warn("failed to send journal entry", zap.Int("entry", i), zap.Error(err))
			return false
		}
	}
	h.logger.Info("feed sent", zap.Int("entries", len(h.feed.entries)))
	return true
}

func (h *hub) readCommands(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("client read failed", zap.Error(err))
			}
			return
		}
		cc, err := protocol.DecodeCommandContainer(data)
		if err != nil {
			h.logger.Warn("undecodable command container", zap.Error(err))
			continue
		}

		kinds := make([]string, 0, len(cc.Commands))
		for _, cmd := range cc.Commands {
			kinds = append(kinds, string(cmd.Kind()))
		}
		h.mu.Lock()
		c.playerID = cc.PlayerID
		c.commands += len(cc.Commands)
		h.mu.Unlock()
		h.logger.Info("commands received",
			zap.String("id", cc.ID),
			zap.Int("game_id", cc.GameID),
			zap.Int("player_id", cc.PlayerID),
			zap.Strings("commands", kinds))
	}
}
