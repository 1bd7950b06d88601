// Package player implements the client-side state engine of one game participant.
//
// A Player owns its zones, counters and arrows. Local intents are turned into protocol commands
// and handed to a CommandSink without touching local state; server events are applied through
// ApplyEvent, which keeps attachments and arrows consistent and returns a report of what changed.
// A Player is not safe for concurrent use: the session serializes every call on one goroutine.
package player

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/magefree/mage-client-go/internal/game/arrows"
	"github.com/magefree/mage-client-go/internal/game/carddb"
	"github.com/magefree/mage-client-go/internal/game/cards"
	"github.com/magefree/mage-client-go/internal/game/counters"
	"github.com/magefree/mage-client-go/internal/game/protocol"
	"github.com/magefree/mage-client-go/internal/game/zones"
)

const (
	defaultTopCards = 3
	defaultDieSides = 20
)

// Context resolves the other players of the game.
type Context interface {
	// Player returns the player with the given id, or nil.
	Player(id int) *Player
	// Players returns every player ordered by id.
	Players() []*Player
}

// CommandSink receives the commands a player emits. Commands passed in one call form one batch.
type CommandSink interface {
	SendCommands(playerID int, cmds ...protocol.Command)
}

// Options configures a Player. Every field is optional.
type Options struct {
	Local        bool
	Context      Context
	Sink         CommandSink
	Prompter     Prompter
	CardDatabase *carddb.Database
	// DefaultTopCards is the initial count offered when viewing the top of the library.
	DefaultTopCards int
	// DefaultDieSides is the initial side count offered when rolling a die.
	DefaultDieSides int
}

// Target is the player as an arrow end point and holder of the life counter.
type Target struct {
	PlayerID int
	life     *counters.Counter
}

// Life returns the life total and whether a life counter exists.
func (t *Target) Life() (int, bool) {
	if t.life == nil {
		return 0, false
	}
	return t.life.Value, true
}

// LifeCounter returns the bound life counter, or nil.
func (t *Target) LifeCounter() *counters.Counter {
	return t.life
}

// Player mirrors one participant's visible game state.
type Player struct {
	logger *zap.Logger

	id       int
	name     string
	local    bool
	conceded bool

	ctx      Context
	sink     CommandSink
	prompter Prompter
	cardDB   *carddb.Database

	zones    map[string]*zones.Zone
	counters *counters.Set
	arrows   *arrows.Set
	target   *Target

	selection []uuid.UUID
	views     map[string]int

	lastToken       *TokenParams
	defaultTopCards int
	defaultDieSides int

	promptDepth   int
	cardsToDelete []*cards.Card
}

// New creates a player with the seven standard zones. The hand is known only to a local player;
// library and sideboard contents are never known.
func New(logger *zap.Logger, id int, name string, opts Options) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Player{
		logger:          logger.With(zap.Int("player_id", id)),
		id:              id,
		name:            name,
		local:           opts.Local,
		ctx:             opts.Context,
		sink:            opts.Sink,
		prompter:        opts.Prompter,
		cardDB:          opts.CardDatabase,
		zones:           make(map[string]*zones.Zone, len(protocol.ZoneNames)),
		counters:        counters.NewSet(),
		arrows:          arrows.NewSet(),
		target:          &Target{PlayerID: id},
		views:           make(map[string]int),
		defaultTopCards: opts.DefaultTopCards,
		defaultDieSides: opts.DefaultDieSides,
	}
	if p.defaultTopCards <= 0 {
		p.defaultTopCards = defaultTopCards
	}
	if p.defaultDieSides < 2 {
		p.defaultDieSides = defaultDieSides
	}
	for _, zoneName := range protocol.ZoneNames {
		known := true
		switch zoneName {
		case protocol.ZoneDeck, protocol.ZoneSideboard:
			known = false
		case protocol.ZoneHand:
			known = opts.Local
		}
		p.zones[zoneName] = zones.New(zoneName, id, known)
	}
	return p
}

// SetContext attaches the player to a game. The session calls it when registering the player.
func (p *Player) SetContext(ctx Context) {
	p.ctx = ctx
}

// SetSink replaces the command sink.
func (p *Player) SetSink(sink CommandSink) {
	p.sink = sink
}

// SetPrompter replaces the prompter.
func (p *Player) SetPrompter(prompter Prompter) {
	p.prompter = prompter
}

func (p *Player) ID() int              { return p.id }
func (p *Player) Name() string         { return p.name }
func (p *Player) IsLocal() bool        { return p.local }
func (p *Player) Conceded() bool       { return p.conceded }
func (p *Player) Target() *Target      { return p.target }
func (p *Player) DefaultTopCards() int { return p.defaultTopCards }

// Zone returns the zone with the given name, or nil.
func (p *Player) Zone(name string) *zones.Zone {
	return p.zones[name]
}

// Zones returns the zones in the standard order.
func (p *Player) Zones() []*zones.Zone {
	out := make([]*zones.Zone, 0, len(protocol.ZoneNames))
	for _, name := range protocol.ZoneNames {
		out = append(out, p.zones[name])
	}
	return out
}

// Counter returns the counter with the given id, or nil.
func (p *Player) Counter(id int) *counters.Counter {
	return p.counters.Get(id)
}

// Counters returns the counters ordered by id.
func (p *Player) Counters() []*counters.Counter {
	return p.counters.Sorted()
}

// Arrow returns the arrow with the given id, or nil.
func (p *Player) Arrow(id int) *arrows.Arrow {
	return p.arrows.Get(id)
}

// Arrows returns the arrows this player owns ordered by id.
func (p *Player) Arrows() []*arrows.Arrow {
	return p.arrows.Sorted()
}

// CardByHandle finds a card in this player's zones.
func (p *Player) CardByHandle(h uuid.UUID) (*cards.Card, *zones.Zone) {
	if h == uuid.Nil {
		return nil, nil
	}
	for _, z := range p.Zones() {
		if c := z.ByHandle(h); c != nil {
			return c, z
		}
	}
	return nil, nil
}

// Card finds a card by zone name and protocol id.
func (p *Player) Card(zone string, id int) *cards.Card {
	z := p.zones[zone]
	if z == nil {
		return nil
	}
	return z.Card(id)
}

// ResolveCard finds a card of any player in the game.
func (p *Player) ResolveCard(playerID int, zone string, id int) *cards.Card {
	owner := p.lookupPlayer(playerID)
	if owner == nil {
		return nil
	}
	return owner.Card(zone, id)
}

// Locate finds a card by handle across every player in the game.
func (p *Player) Locate(h uuid.UUID) (*cards.Card, *zones.Zone) {
	for _, pl := range p.allPlayers() {
		if c, z := pl.CardByHandle(h); c != nil {
			return c, z
		}
	}
	return nil, nil
}

// Children returns the cards attached to the card, across every player.
func (p *Player) Children(h uuid.UUID) []*cards.Card {
	if h == uuid.Nil {
		return nil
	}
	var out []*cards.Card
	for _, pl := range p.allPlayers() {
		for _, z := range pl.Zones() {
			for _, c := range z.Cards() {
				if c.AttachedTo == h {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

func (p *Player) lookupPlayer(id int) *Player {
	if id == p.id {
		return p
	}
	if p.ctx == nil {
		return nil
	}
	return p.ctx.Player(id)
}

func (p *Player) allPlayers() []*Player {
	if p.ctx == nil {
		return []*Player{p}
	}
	players := p.ctx.Players()
	for _, pl := range players {
		if pl == p {
			return players
		}
	}
	return append(players, p)
}
