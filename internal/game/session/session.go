// Package session holds the players of one game and applies server messages to them in order.
//
// All player state is owned by one goroutine. Online, that is the goroutine running Run; messages
// and closures reach it through Enqueue and Do. Offline tools may instead call HandleMessage
// directly as long as they do so from a single goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/magefree/mage-client-go/internal/game/carddb"
	"github.com/magefree/mage-client-go/internal/game/player"
	"github.com/magefree/mage-client-go/internal/game/protocol"
	"github.com/magefree/mage-client-go/internal/game/replay"
	"github.com/magefree/mage-client-go/internal/game/report"
)

const (
	defaultQueueSize = 64

	playerLeftEvent protocol.EventKind = "player_left"
)

// ErrSessionClosed is returned when submitting work to a session that stopped running.
var ErrSessionClosed = errors.New("session closed")

// Sender delivers command containers to the server.
type Sender interface {
	Send(c protocol.CommandContainer) error
}

// Options configures a Session. GameID and LocalPlayerID identify the game; the rest is optional.
type Options struct {
	GameID          int
	LocalPlayerID   int
	Sender          Sender
	Prompter        player.Prompter
	CardDatabase    *carddb.Database
	DefaultTopCards int
	DefaultDieSides int
	Recorder        *replay.Recorder
	Bus             *report.Bus
	QueueSize       int
}

// Session is the game context of the client: it owns every player, resolves cross-player
// lookups and turns the commands of the local player into containers for the server.
type Session struct {
	logger   *zap.Logger
	gameID   int
	localID  int
	opts     Options
	sender   Sender
	recorder *replay.Recorder
	bus      *report.Bus

	players map[int]*player.Player

	inbox     chan any
	ops       chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// New creates an empty session.
func New(logger *zap.Logger, opts Options) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	bus := opts.Bus
	if bus == nil {
		bus = report.NewBus()
	}
	return &Session{
		logger:   logger.With(zap.Int("game_id", opts.GameID)),
		gameID:   opts.GameID,
		localID:  opts.LocalPlayerID,
		opts:     opts,
		sender:   opts.Sender,
		recorder: opts.Recorder,
		bus:      bus,
		players:  make(map[int]*player.Player),
		inbox:    make(chan any, opts.QueueSize),
		ops:      make(chan func()),
		done:     make(chan struct{}),
	}
}

func (s *Session) GameID() int           { return s.gameID }
func (s *Session) LocalPlayerID() int    { return s.localID }
func (s *Session) Bus() *report.Bus      { return s.bus }
func (s *Session) Local() *player.Player { return s.players[s.localID] }

// Player returns the player with the given id, or nil.
func (s *Session) Player(id int) *player.Player {
	return s.players[id]
}

// Players returns every player ordered by id.
func (s *Session) Players() []*player.Player {
	out := make([]*player.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// AddPlayer registers a participant, or returns the one already registered under id.
func (s *Session) AddPlayer(id int, name string) *player.Player {
	if p, ok := s.players[id]; ok {
		return p
	}
	p := player.New(s.logger, id, name, player.Options{
		Local:           id == s.localID,
		Context:         s,
		Sink:            s,
		Prompter:        s.opts.Prompter,
		CardDatabase:    s.opts.CardDatabase,
		DefaultTopCards: s.opts.DefaultTopCards,
		DefaultDieSides: s.opts.DefaultDieSides,
	})
	s.players[id] = p
	s.logger.Debug("player joined", zap.Int("player_id", id), zap.String("name", name))
	return p
}

// RemovePlayer clears a player's state, forgets it and publishes the report.
func (s *Session) RemovePlayer(id int) *report.Report {
	r := s.removePlayer(id)
	if r != nil {
		s.bus.Publish(r)
	}
	return r
}

func (s *Session) removePlayer(id int) *report.Report {
	p := s.players[id]
	if p == nil {
		return nil
	}
	r := report.New(id, playerLeftEvent, protocol.NoContext)
	p.Clear(r)
	delete(s.players, id)
	return r
}

// SetConceded marks a player as conceded or back in the game.
func (s *Session) SetConceded(playerID int, conceded bool) *report.Report {
	p := s.players[playerID]
	if p == nil {
		return nil
	}
	r := p.SetConceded(conceded)
	s.bus.Publish(r)
	return r
}

// SendCommands wraps the commands of one player action into a container and hands it to the
// sender. Failures are logged; the engine never retries.
func (s *Session) SendCommands(playerID int, cmds ...protocol.Command) {
	if len(cmds) == 0 {
		return
	}
	c := protocol.CommandContainer{
		ID:       uuid.NewString(),
		GameID:   s.gameID,
		PlayerID: playerID,
		Commands: cmds,
	}
	if s.sender == nil {
		s.logger.Warn("no sender, dropping commands", zap.Int("player_id", playerID), zap.Int("count", len(cmds)))
		return
	}
	if err := s.sender.Send(c); err != nil {
		s.logger.Warn("failed to send commands",
			zap.String("container_id", c.ID),
			zap.Int("count", len(cmds)),
			zap.Error(err))
		return
	}
	s.logger.Debug("sent commands", zap.String("container_id", c.ID), zap.Int("count", len(cmds)))
}

// HandleMessage applies one decoded server message: an event container or a game state.
func (s *Session) HandleMessage(msg any) []*report.Report {
	switch m := msg.(type) {
	case *protocol.EventContainer:
		return s.ProcessEventContainer(*m)
	case protocol.EventContainer:
		return s.ProcessEventContainer(m)
	case *protocol.GameState:
		return s.ApplyGameState(*m)
	case protocol.GameState:
		return s.ApplyGameState(m)
	default:
		s.logger.Warn("ignoring unexpected message", zap.String("type", fmt.Sprintf("%T", msg)))
		return nil
	}
}

// ProcessEventContainer applies every event of the container in order and publishes the reports.
// Events for unknown players are skipped.
func (s *Session) ProcessEventContainer(c protocol.EventContainer) []*report.Report {
	if !s.sameGame(c.GameID) {
		return nil
	}
	if s.recorder != nil {
		if data, err := protocol.EncodeEventContainer(c); err == nil {
			s.recorder.Record(s.gameID, data)
		} else {
			s.logger.Warn("failed to record event container", zap.Error(err))
		}
	}
	reports := make([]*report.Report, 0, len(c.Events))
	for _, ge := range c.Events {
		p := s.players[ge.PlayerID]
		if p == nil {
			s.logger.Debug("event for unknown player",
				zap.Int("player_id", ge.PlayerID),
				zap.String("event", string(ge.Event.Kind())))
			continue
		}
		reports = append(reports, p.ApplyEvent(ge.Event, c.Context))
	}
	s.bus.PublishBatch(reports)
	return reports
}

// ApplyGameState replaces the state of every player with a snapshot. Zones and counters are
// rebuilt for all players first; attachments and arrows are resolved afterwards because they may
// point at players later in the list. Players missing from the snapshot are removed.
func (s *Session) ApplyGameState(gs protocol.GameState) []*report.Report {
	if !s.sameGame(gs.GameID) {
		return nil
	}
	if s.recorder != nil {
		if data, err := protocol.EncodeGameState(gs); err == nil {
			s.recorder.Record(s.gameID, data)
		} else {
			s.logger.Warn("failed to record game state", zap.Error(err))
		}
	}

	var reports []*report.Report
	present := make(map[int]bool, len(gs.Players))
	for _, info := range gs.Players {
		present[info.ID] = true
	}
	for _, p := range s.Players() {
		if !present[p.ID()] {
			if r := s.removePlayer(p.ID()); r != nil {
				reports = append(reports, r)
			}
		}
	}

	for _, info := range gs.Players {
		p := s.AddPlayer(info.ID, info.Name)
		reports = append(reports, p.ProcessPlayerInfo(info))
	}
	for _, info := range gs.Players {
		reports = append(reports, s.players[info.ID].ProcessCardAttachments(info))
	}
	for _, info := range gs.Players {
		reports = append(reports, s.players[info.ID].ProcessArrows(info))
	}
	s.bus.PublishBatch(reports)
	s.logger.Info("applied game state", zap.Int("players", len(gs.Players)))
	return reports
}

// GameState describes the current state of every player.
func (s *Session) GameState() protocol.GameState {
	gs := protocol.GameState{GameID: s.gameID, LocalPlayerID: s.localID}
	for _, p := range s.Players() {
		gs.Players = append(gs.Players, p.Info())
	}
	return gs
}

func (s *Session) sameGame(gameID int) bool {
	if gameID == 0 || gameID == s.gameID {
		return true
	}
	s.logger.Warn("ignoring message for another game", zap.Int("message_game_id", gameID))
	return false
}

// Run owns the players until ctx is done or Close is called. Queued messages and closures are
// handled one at a time, in arrival order per channel.
func (s *Session) Run(ctx context.Context) error {
	defer s.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case msg := <-s.inbox:
			s.HandleMessage(msg)
		case op := <-s.ops:
			op()
		}
	}
}

// Enqueue queues a server message for the running session.
func (s *Session) Enqueue(ctx context.Context, msg any) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	select {
	case s.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrSessionClosed
	}
}

// Do runs fn on the session goroutine and waits for it to return. User actions go through Do so
// they never race with event application.
func (s *Session) Do(ctx context.Context, fn func(s *Session)) error {
	finished := make(chan struct{})
	op := func() {
		defer close(finished)
		fn(s)
	}
	select {
	case s.ops <- op:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrSessionClosed
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PumpPending applies the messages already queued without waiting for more and returns how many
// were handled. It must be called on the session goroutine, typically by a prompt that keeps the
// game live while it waits for the user.
func (s *Session) PumpPending() int {
	n := 0
	for {
		select {
		case msg := <-s.inbox:
			s.HandleMessage(msg)
			n++
		default:
			return n
		}
	}
}

// Close stops Run. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Done is closed when the session stops.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
