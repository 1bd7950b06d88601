// Package protocol defines the closed set of commands a client sends to the game server, the
// closed set of events the server broadcasts back, the player-info snapshot structures and the
// wire codec used to move them between client and server.
package protocol

// Zone names shared by every player.
const (
	ZoneDeck      = "deck"
	ZoneHand      = "hand"
	ZoneGrave     = "grave"
	ZoneExile     = "rfg"
	ZoneSideboard = "sb"
	ZoneTable     = "table"
	ZoneStack     = "stack"
)

// ZoneNames lists the zones every player owns, in creation order.
var ZoneNames = []string{ZoneDeck, ZoneGrave, ZoneExile, ZoneSideboard, ZoneTable, ZoneStack, ZoneHand}

// Sentinel ids used on the wire.
const (
	// NoCard addresses "every card in the zone" in SetCardAttr and "unknown id" elsewhere.
	NoCard = -1
	// RandomCard asks the server to pick a random card (reveal random hand card).
	RandomCard = -2
	// NoPlayer means "no player" / "all players" depending on the command.
	NoPlayer = -1
	// AppendPosition places a card at the end (bottom) of a zone.
	AppendPosition = -1
)

// Card attribute names carried by SetCardAttr.
const (
	AttrTapped      = "tapped"
	AttrAttacking   = "attacking"
	AttrFaceDown    = "facedown"
	AttrAnnotation  = "annotation"
	AttrDoesntUntap = "doesnt_untap"
	AttrPT          = "pt"
)

// BoolValue encodes a boolean attribute value for the wire.
func BoolValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// ParseBoolValue decodes a boolean attribute value. Anything but "1" is false.
func ParseBoolValue(v string) bool {
	return v == "1"
}

// CommandKind identifies an outbound command. Each kind maps to one server RPC.
type CommandKind string

const (
	CommandShuffle        CommandKind = "shuffle"
	CommandMulligan       CommandKind = "mulligan"
	CommandDrawCards      CommandKind = "draw_cards"
	CommandUndoDraw       CommandKind = "undo_draw"
	CommandRollDie        CommandKind = "roll_die"
	CommandCreateToken    CommandKind = "create_token"
	CommandMoveCard       CommandKind = "move_card"
	CommandSetCardAttr    CommandKind = "set_card_attr"
	CommandSetCardCounter CommandKind = "set_card_counter"
	CommandFlipCard       CommandKind = "flip_card"
	CommandAttachCard     CommandKind = "attach_card"
	CommandRevealCards    CommandKind = "reveal_cards"
	CommandGameSay        CommandKind = "game_say"
)

// Command is one outbound intent. The set of implementations is closed.
type Command interface {
	Kind() CommandKind
	isCommand()
}

type ShuffleCommand struct{}

type MulliganCommand struct{}

type DrawCardsCommand struct {
	Number int
}

type UndoDrawCommand struct{}

type RollDieCommand struct {
	Sides int
}

type CreateTokenCommand struct {
	Zone                string
	CardName            string
	Color               string
	PT                  string
	Annotation          string
	DestroyOnZoneChange bool
	X                   int
	Y                   int
}

// CardToMove is one entry of a MoveCard command. FaceDown, PT and Tapped are hints applied by the
// server when the card lands on the table.
type CardToMove struct {
	CardID   int
	FaceDown bool
	PT       string
	Tapped   bool
}

type MoveCardCommand struct {
	StartZone      string
	TargetPlayerID int
	TargetZone     string
	Cards          []CardToMove
	X              int
	Y              int
}

type SetCardAttrCommand struct {
	Zone      string
	CardID    int // NoCard addresses every card in the zone
	AttrName  string
	AttrValue string
}

type SetCardCounterCommand struct {
	Zone         string
	CardID       int
	CounterID    int
	CounterValue int
}

type FlipCardCommand struct {
	Zone     string
	CardID   int
	FaceDown bool
}

// AttachCardCommand attaches a card to a target card. TargetPlayerID NoPlayer means unattach.
type AttachCardCommand struct {
	StartZone      string
	CardID         int
	TargetPlayerID int
	TargetZone     string
	TargetCardID   int
}

// RevealCardsCommand reveals a zone, or one card of it, to one player or to everyone.
type RevealCardsCommand struct {
	ZoneName string
	PlayerID int // NoPlayer reveals to everyone
	CardID   int // NoCard reveals the whole zone, RandomCard a random one
}

type GameSayCommand struct {
	Message string
}

func (ShuffleCommand) Kind() CommandKind        { return CommandShuffle }
func (MulliganCommand) Kind() CommandKind       { return CommandMulligan }
func (DrawCardsCommand) Kind() CommandKind      { return CommandDrawCards }
func (UndoDrawCommand) Kind() CommandKind       { return CommandUndoDraw }
func (RollDieCommand) Kind() CommandKind        { return CommandRollDie }
func (CreateTokenCommand) Kind() CommandKind    { return CommandCreateToken }
func (MoveCardCommand) Kind() CommandKind       { return CommandMoveCard }
func (SetCardAttrCommand) Kind() CommandKind    { return CommandSetCardAttr }
func (SetCardCounterCommand) Kind() CommandKind { return CommandSetCardCounter }
func (FlipCardCommand) Kind() CommandKind       { return CommandFlipCard }
func (AttachCardCommand) Kind() CommandKind     { return CommandAttachCard }
func (RevealCardsCommand) Kind() CommandKind    { return CommandRevealCards }
func (GameSayCommand) Kind() CommandKind        { return CommandGameSay }

func (ShuffleCommand) isCommand()        {}
func (MulliganCommand) isCommand()       {}
func (DrawCardsCommand) isCommand()      {}
func (UndoDrawCommand) isCommand()       {}
func (RollDieCommand) isCommand()        {}
func (CreateTokenCommand) isCommand()    {}
func (MoveCardCommand) isCommand()       {}
func (SetCardAttrCommand) isCommand()    {}
func (SetCardCounterCommand) isCommand() {}
func (FlipCardCommand) isCommand()       {}
func (AttachCardCommand) isCommand()     {}
func (RevealCardsCommand) isCommand()    {}
func (GameSayCommand) isCommand()        {}

// CommandContainer is one outbound batch. All commands in a batch are processed by the server in
// order and acknowledged together.
type CommandContainer struct {
	ID       string // correlation id (uuid)
	GameID   int
	PlayerID int
	Commands []Command
}
