package protocol

// EventKind identifies an inbound game event.
type EventKind string

const (
	EventConnectionStateChanged EventKind = "connection_state_changed"
	EventSay                    EventKind = "say"
	EventShuffle                EventKind = "shuffle"
	EventRollDie                EventKind = "roll_die"
	EventCreateArrows           EventKind = "create_arrows"
	EventDeleteArrow            EventKind = "delete_arrow"
	EventCreateToken            EventKind = "create_token"
	EventSetCardAttr            EventKind = "set_card_attr"
	EventSetCardCounter         EventKind = "set_card_counter"
	EventCreateCounters         EventKind = "create_counters"
	EventSetCounter             EventKind = "set_counter"
	EventDelCounter             EventKind = "del_counter"
	EventDumpZone               EventKind = "dump_zone"
	EventStopDumpZone           EventKind = "stop_dump_zone"
	EventMoveCard               EventKind = "move_card"
	EventFlipCard               EventKind = "flip_card"
	EventDestroyCard            EventKind = "destroy_card"
	EventAttachCard             EventKind = "attach_card"
	EventDrawCards              EventKind = "draw_cards"
	EventRevealCards            EventKind = "reveal_cards"
)

// Event is one inbound state change addressed to a single player. The set of implementations is
// closed; UnknownEvent carries kinds introduced by newer servers.
type Event interface {
	Kind() EventKind
	isEvent()
}

type ConnectionStateChangedEvent struct {
	Connected bool
}

type SayEvent struct {
	Message string
}

type ShuffleEvent struct{}

type RollDieEvent struct {
	Sides int
	Value int
}

type CreateArrowsEvent struct {
	Arrows []ArrowInfo
}

type DeleteArrowEvent struct {
	ArrowID int
}

type CreateTokenEvent struct {
	Zone                string
	CardID              int
	CardName            string
	Color               string
	PT                  string
	Annotation          string
	DestroyOnZoneChange bool
	X                   int
	Y                   int
}

type SetCardAttrEvent struct {
	Zone      string
	CardID    int // NoCard applies to every card in the zone
	AttrName  string
	AttrValue string
}

type SetCardCounterEvent struct {
	Zone         string
	CardID       int
	CounterID    int
	CounterValue int
}

type CreateCountersEvent struct {
	Counters []CounterInfo
}

type SetCounterEvent struct {
	CounterID int
	Value     int
}

type DelCounterEvent struct {
	CounterID int
}

// DumpZoneEvent reports that the event's player started looking at another player's zone.
// NumberCards is -1 for the whole zone.
type DumpZoneEvent struct {
	ZoneOwnerID int
	Zone        string
	NumberCards int
}

type StopDumpZoneEvent struct {
	ZoneOwnerID int
	Zone        string
}

// MoveCardEvent moves one card. Position -1 means "find the card by CardID"; X -1 means append.
type MoveCardEvent struct {
	CardID         int
	CardName       string
	StartZone      string
	Position       int
	TargetPlayerID int
	TargetZone     string
	X              int
	Y              int
	NewCardID      int
	FaceDown       bool
}

type FlipCardEvent struct {
	Zone     string
	CardID   int
	CardName string
	FaceDown bool
}

type DestroyCardEvent struct {
	Zone   string
	CardID int
}

// AttachCardEvent attaches a card. An unresolvable target (TargetPlayerID NoPlayer, missing zone
// or card) detaches it.
type AttachCardEvent struct {
	StartZone      string
	CardID         int
	TargetPlayerID int
	TargetZone     string
	TargetCardID   int
}

// DrawCardsEvent moves cards from deck to hand. Cards is empty when the draw is concealed.
type DrawCardsEvent struct {
	NumberCards int
	Cards       []CardInfo
}

type RevealCardsEvent struct {
	ZoneName      string
	CardID        int
	OtherPlayerID int // NoPlayer when revealed to everyone
	Cards         []CardInfo
}

// UnknownEvent is an event kind this client does not understand.
type UnknownEvent struct {
	Type string
}

func (ConnectionStateChangedEvent) Kind() EventKind { return EventConnectionStateChanged }
func (SayEvent) Kind() EventKind                    { return EventSay }
func (ShuffleEvent) Kind() EventKind                { return EventShuffle }
func (RollDieEvent) Kind() EventKind                { return EventRollDie }
func (CreateArrowsEvent) Kind() EventKind           { return EventCreateArrows }
func (DeleteArrowEvent) Kind() EventKind            { return EventDeleteArrow }
func (CreateTokenEvent) Kind() EventKind            { return EventCreateToken }
func (SetCardAttrEvent) Kind() EventKind            { return EventSetCardAttr }
func (SetCardCounterEvent) Kind() EventKind         { return EventSetCardCounter }
func (CreateCountersEvent) Kind() EventKind         { return EventCreateCounters }
func (SetCounterEvent) Kind() EventKind             { return EventSetCounter }
func (DelCounterEvent) Kind() EventKind             { return EventDelCounter }
func (DumpZoneEvent) Kind() EventKind               { return EventDumpZone }
func (StopDumpZoneEvent) Kind() EventKind           { return EventStopDumpZone }
func (MoveCardEvent) Kind() EventKind               { return EventMoveCard }
func (FlipCardEvent) Kind() EventKind               { return EventFlipCard }
func (DestroyCardEvent) Kind() EventKind            { return EventDestroyCard }
func (AttachCardEvent) Kind() EventKind             { return EventAttachCard }
func (DrawCardsEvent) Kind() EventKind              { return EventDrawCards }
func (RevealCardsEvent) Kind() EventKind            { return EventRevealCards }
func (e UnknownEvent) Kind() EventKind              { return EventKind(e.Type) }

func (ConnectionStateChangedEvent) isEvent() {}
func (SayEvent) isEvent()                    {}
func (ShuffleEvent) isEvent()                {}
func (RollDieEvent) isEvent()                {}
func (CreateArrowsEvent) isEvent()           {}
func (DeleteArrowEvent) isEvent()            {}
func (CreateTokenEvent) isEvent()            {}
func (SetCardAttrEvent) isEvent()            {}
func (SetCardCounterEvent) isEvent()         {}
func (CreateCountersEvent) isEvent()         {}
func (SetCounterEvent) isEvent()             {}
func (DelCounterEvent) isEvent()             {}
func (DumpZoneEvent) isEvent()               {}
func (StopDumpZoneEvent) isEvent()           {}
func (MoveCardEvent) isEvent()               {}
func (FlipCardEvent) isEvent()               {}
func (DestroyCardEvent) isEvent()            {}
func (AttachCardEvent) isEvent()             {}
func (DrawCardsEvent) isEvent()              {}
func (RevealCardsEvent) isEvent()            {}
func (UnknownEvent) isEvent()                {}

// EventContext tells the client why a container of events happened. It only changes how changes
// are described, never how they are applied.
type EventContext string

const (
	NoContext          EventContext = ""
	ContextUndoDraw    EventContext = "undo_draw"
	ContextMoveCard    EventContext = "move_card"
	ContextReadyStart  EventContext = "ready_start"
	ContextConcede     EventContext = "concede"
	ContextDeckSelect  EventContext = "deck_select"
	ContextPingChanged EventContext = "ping_changed"
)

// GameEvent addresses one event to the player it concerns.
type GameEvent struct {
	PlayerID int
	Event    Event
}

// EventContainer is one server broadcast. Its events are applied in order, completely, before the
// next container.
type EventContainer struct {
	GameID  int
	Context EventContext
	Events  []GameEvent
}
