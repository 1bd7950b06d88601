// Package transport connects a session to the game server over a websocket.
//
// Every frame is one binary message in the protocol wire encoding: command containers go up,
// event containers and game states come down.
package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/magefree/mage-client-go/internal/game/protocol"
)

var (
	// ErrClosed is returned when sending on a closed client.
	ErrClosed = errors.New("transport closed")
	// ErrSendQueueFull is returned when the server does not keep up with outgoing commands.
	ErrSendQueueFull = errors.New("send queue full")
)

const defaultSendQueue = 256

// Config tunes the connection. Zero durations fall back to the gorilla defaults where they exist.
type Config struct {
	URL              string
	HandshakeTimeout time.Duration
	WriteWait        time.Duration
	PongWait         time.Duration
	SendQueue        int
}

func (c Config) pingPeriod() time.Duration {
	return c.PongWait * 9 / 10
}

// Handler receives every decoded server message. session.Session.Enqueue fits.
type Handler func(ctx context.Context, msg any) error

// Client is one websocket connection to the server.
type Client struct {
	logger  *zap.Logger
	cfg     Config
	conn    *websocket.Conn
	handler Handler

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to cfg.URL.
func Dial(ctx context.Context, logger *zap.Logger, cfg Config, handler Handler) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SendQueue <= 0 {
		cfg.SendQueue = defaultSendQueue
	}
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = 10 * time.Second
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = 60 * time.Second
	}

	dialer := websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout}
	conn, resp, err := dialer.DialContext(ctx, cfg.URL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.URL, err)
	}
	logger.Info("connected to server", zap.String("url", cfg.URL))

	return &Client{
		logger:  logger.With(zap.String("url", cfg.URL)),
		cfg:     cfg,
		conn:    conn,
		handler: handler,
		send:    make(chan []byte, cfg.SendQueue),
		done:    make(chan struct{}),
	}, nil
}

// Run pumps messages in both directions until ctx is done, the server hangs up or Close is
// called. A clean shutdown returns nil.
func (c *Client) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.readPump(ctx) })
	g.Go(func() error { return c.writePump() })
	g.Go(func() error {
		select {
		case <-ctx.Done():
			c.Close()
		case <-c.done:
		}
		return nil
	})
	err := g.Wait()
	c.logger.Info("disconnected from server")
	return err
}

// Send queues a command container. It never blocks.
func (c *Client) Send(cc protocol.CommandContainer) error {
	data, err := protocol.EncodeCommandContainer(cc)
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.send <- data:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Close sends a close frame and shuts the connection. It is safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		deadline := time.Now().Add(c.cfg.WriteWait)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = c.conn.Close()
	})
}

func (c *Client) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Client) readPump(ctx context.Context) error {
	defer c.Close()

	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if c.closed() || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		}

		msg, err := protocol.DecodeServerMessage(data)
		if err != nil {
			c.logger.Warn("dropping undecodable message", zap.Int("bytes", len(data)), zap.Error(err))
			continue
		}
		if c.handler == nil {
			continue
		}
		if err := c.handler(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to deliver message: %w", err)
		}
	}
}

func (c *Client) writePump() error {
	ticker := time.NewTicker(c.cfg.pingPeriod())
	defer ticker.Stop()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				if c.closed() {
					return nil
				}
				c.Close()
				return fmt.Errorf("write failed: %w", err)
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if c.closed() {
					return nil
				}
				c.Close()
				return fmt.Errorf("ping failed: %w", err)
			}
		case <-c.done:
			return nil
		}
	}
}
