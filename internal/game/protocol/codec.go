package protocol

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Envelope kinds distinguish the top-level messages exchanged with the server.
const (
	envelopeCommands  = "command_container"
	envelopeEvents    = "event_container"
	envelopeGameState = "game_state"
)

// ErrUnexpectedMessage is returned when a payload decodes to a different envelope kind.
var ErrUnexpectedMessage = errors.New("unexpected message kind")

// EncodeCommandContainer marshals an outbound batch.
func EncodeCommandContainer(c CommandContainer) ([]byte, error) {
	commands := make([]any, 0, len(c.Commands))
	for _, cmd := range c.Commands {
		fields, err := commandFields(cmd)
		if err != nil {
			return nil, err
		}
		commands = append(commands, fields)
	}
	return marshal(map[string]any{
		"kind":      envelopeCommands,
		"id":        c.ID,
		"game_id":   c.GameID,
		"player_id": c.PlayerID,
		"commands":  commands,
	})
}

// DecodeCommandContainer unmarshals an outbound batch. Servers and test doubles use it.
func DecodeCommandContainer(data []byte) (CommandContainer, error) {
	o, err := unmarshal(data, envelopeCommands)
	if err != nil {
		return CommandContainer{}, err
	}
	c := CommandContainer{
		ID:       o.str("id"),
		GameID:   o.int("game_id", 0),
		PlayerID: o.int("player_id", NoPlayer),
	}
	for _, item := range o.objects("commands") {
		cmd, err := decodeCommand(item)
		if err != nil {
			return CommandContainer{}, err
		}
		c.Commands = append(c.Commands, cmd)
	}
	return c, nil
}

// EncodeEventContainer marshals one server broadcast.
func EncodeEventContainer(c EventContainer) ([]byte, error) {
	events := make([]any, 0, len(c.Events))
	for _, ge := range c.Events {
		fields := eventFields(ge.Event)
		fields["player_id"] = ge.PlayerID
		events = append(events, fields)
	}
	return marshal(map[string]any{
		"kind":    envelopeEvents,
		"game_id": c.GameID,
		"context": string(c.Context),
		"events":  events,
	})
}

// DecodeEventContainer unmarshals one server broadcast. Unknown event types decode to
// UnknownEvent so newer servers do not break older clients.
func DecodeEventContainer(data []byte) (EventContainer, error) {
	o, err := unmarshal(data, envelopeEvents)
	if err != nil {
		return EventContainer{}, err
	}
	return decodeEventContainer(o), nil
}

// EncodeGameState marshals a full-state snapshot.
func EncodeGameState(gs GameState) ([]byte, error) {
	players := make([]any, 0, len(gs.Players))
	for _, p := range gs.Players {
		players = append(players, playerInfoFields(p))
	}
	return marshal(map[string]any{
		"kind":         envelopeGameState,
		"game_id":      gs.GameID,
		"local_player": gs.LocalPlayerID,
		"players":      players,
	})
}

// DecodeGameState unmarshals a full-state snapshot.
func DecodeGameState(data []byte) (GameState, error) {
	o, err := unmarshal(data, envelopeGameState)
	if err != nil {
		return GameState{}, err
	}
	return decodeGameState(o), nil
}

// DecodeServerMessage decodes anything the server pushes: *EventContainer or *GameState.
func DecodeServerMessage(data []byte) (any, error) {
	o, err := unmarshal(data, "")
	if err != nil {
		return nil, err
	}
	switch o.str("kind") {
	case envelopeEvents:
		c := decodeEventContainer(o)
		return &c, nil
	case envelopeGameState:
		gs := decodeGameState(o)
		return &gs, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnexpectedMessage, o.str("kind"))
	}
}

func marshal(m map[string]any) ([]byte, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build message: %w", err)
	}
	data, err := proto.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}
	return data, nil
}

func unmarshal(data []byte, kind string) (object, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	o := object(s.AsMap())
	if kind != "" && o.str("kind") != kind {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrUnexpectedMessage, o.str("kind"), kind)
	}
	return o, nil
}

// object reads fields of a decoded structpb value. Numbers arrive as float64.
type object map[string]any

func (o object) int(key string, def int) int {
	if f, ok := o[key].(float64); ok {
		return int(f)
	}
	return def
}

func (o object) str(key string) string {
	s, _ := o[key].(string)
	return s
}

func (o object) bool(key string) bool {
	return o.boolOr(key, false)
}

func (o object) boolOr(key string, def bool) bool {
	if b, ok := o[key].(bool); ok {
		return b
	}
	return def
}

func (o object) object(key string) (object, bool) {
	m, ok := o[key].(map[string]any)
	return object(m), ok
}

func (o object) objects(key string) []object {
	list, _ := o[key].([]any)
	out := make([]object, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, object(m))
		}
	}
	return out
}

func commandFields(cmd Command) (map[string]any, error) {
	m := map[string]any{"type": string(cmd.Kind())}
	switch c := cmd.(type) {
	case ShuffleCommand, MulliganCommand, UndoDrawCommand:
	case DrawCardsCommand:
		m["number"] = c.Number
	case RollDieCommand:
		m["sides"] = c.Sides
	case CreateTokenCommand:
		m["zone"] = c.Zone
		m["card_name"] = c.CardName
		m["color"] = c.Color
		m["pt"] = c.PT
		m["annotation"] = c.Annotation
		m["destroy_on_zone_change"] = c.DestroyOnZoneChange
		m["x"] = c.X
		m["y"] = c.Y
	case MoveCardCommand:
		cards := make([]any, 0, len(c.Cards))
		for _, ctm := range c.Cards {
			cards = append(cards, map[string]any{
				"card_id":   ctm.CardID,
				"face_down": ctm.FaceDown,
				"pt":        ctm.PT,
				"tapped":    ctm.Tapped,
			})
		}
		m["start_zone"] = c.StartZone
		m["target_player_id"] = c.TargetPlayerID
		m["target_zone"] = c.TargetZone
		m["cards_to_move"] = cards
		m["x"] = c.X
		m["y"] = c.Y
	case SetCardAttrCommand:
		m["zone"] = c.Zone
		m["card_id"] = c.CardID
		m["attr_name"] = c.AttrName
		m["attr_value"] = c.AttrValue
	case SetCardCounterCommand:
		m["zone"] = c.Zone
		m["card_id"] = c.CardID
		m["counter_id"] = c.CounterID
		m["counter_value"] = c.CounterValue
	case FlipCardCommand:
		m["zone"] = c.Zone
		m["card_id"] = c.CardID
		m["face_down"] = c.FaceDown
	case AttachCardCommand:
		m["start_zone"] = c.StartZone
		m["card_id"] = c.CardID
		if c.TargetPlayerID != NoPlayer {
			m["target_player_id"] = c.TargetPlayerID
			m["target_zone"] = c.TargetZone
			m["target_card_id"] = c.TargetCardID
		}
	case RevealCardsCommand:
		m["zone_name"] = c.ZoneName
		if c.PlayerID != NoPlayer {
			m["player_id"] = c.PlayerID
		}
		if c.CardID != NoCard {
			m["card_id"] = c.CardID
		}
	case GameSayCommand:
		m["message"] = c.Message
	default:
		return nil, fmt.Errorf("unsupported command %T", cmd)
	}
	return m, nil
}

func decodeCommand(o object) (Command, error) {
	switch CommandKind(o.str("type")) {
	case CommandShuffle:
		return ShuffleCommand{}, nil
	case CommandMulligan:
		return MulliganCommand{}, nil
	case CommandUndoDraw:
		return UndoDrawCommand{}, nil
	case CommandDrawCards:
		return DrawCardsCommand{Number: o.int("number", 1)}, nil
	case CommandRollDie:
		return RollDieCommand{Sides: o.int("sides", 0)}, nil
	case CommandCreateToken:
		return CreateTokenCommand{
			Zone:                o.str("zone"),
			CardName:            o.str("card_name"),
			Color:               o.str("color"),
			PT:                  o.str("pt"),
			Annotation:          o.str("annotation"),
			DestroyOnZoneChange: o.boolOr("destroy_on_zone_change", true),
			X:                   o.int("x", AppendPosition),
			Y:                   o.int("y", 0),
		}, nil
	case CommandMoveCard:
		c := MoveCardCommand{
			StartZone:      o.str("start_zone"),
			TargetPlayerID: o.int("target_player_id", NoPlayer),
			TargetZone:     o.str("target_zone"),
			X:              o.int("x", AppendPosition),
			Y:              o.int("y", 0),
		}
		for _, item := range o.objects("cards_to_move") {
			c.Cards = append(c.Cards, CardToMove{
				CardID:   item.int("card_id", NoCard),
				FaceDown: item.bool("face_down"),
				PT:       item.str("pt"),
				Tapped:   item.bool("tapped"),
			})
		}
		return c, nil
	case CommandSetCardAttr:
		return SetCardAttrCommand{
			Zone:      o.str("zone"),
			CardID:    o.int("card_id", NoCard),
			AttrName:  o.str("attr_name"),
			AttrValue: o.str("attr_value"),
		}, nil
	case CommandSetCardCounter:
		return SetCardCounterCommand{
			Zone:         o.str("zone"),
			CardID:       o.int("card_id", NoCard),
			CounterID:    o.int("counter_id", 0),
			CounterValue: o.int("counter_value", 0),
		}, nil
	case CommandFlipCard:
		return FlipCardCommand{
			Zone:     o.str("zone"),
			CardID:   o.int("card_id", NoCard),
			FaceDown: o.bool("face_down"),
		}, nil
	case CommandAttachCard:
		return AttachCardCommand{
			StartZone:      o.str("start_zone"),
			CardID:         o.int("card_id", NoCard),
			TargetPlayerID: o.int("target_player_id", NoPlayer),
			TargetZone:     o.str("target_zone"),
			TargetCardID:   o.int("target_card_id", NoCard),
		}, nil
	case CommandRevealCards:
		return RevealCardsCommand{
			ZoneName: o.str("zone_name"),
			PlayerID: o.int("player_id", NoPlayer),
			CardID:   o.int("card_id", NoCard),
		}, nil
	case CommandGameSay:
		return GameSayCommand{Message: o.str("message")}, nil
	default:
		return nil, fmt.Errorf("unknown command type %q", o.str("type"))
	}
}

func eventFields(ev Event) map[string]any {
	m := map[string]any{"type": string(ev.Kind())}
	switch e := ev.(type) {
	case ConnectionStateChangedEvent:
		m["connected"] = e.Connected
	case SayEvent:
		m["message"] = e.Message
	case ShuffleEvent:
	case RollDieEvent:
		m["sides"] = e.Sides
		m["value"] = e.Value
	case CreateArrowsEvent:
		arrows := make([]any, 0, len(e.Arrows))
		for _, a := range e.Arrows {
			arrows = append(arrows, arrowInfoFields(a))
		}
		m["arrows"] = arrows
	case DeleteArrowEvent:
		m["arrow_id"] = e.ArrowID
	case CreateTokenEvent:
		m["zone"] = e.Zone
		m["card_id"] = e.CardID
		m["card_name"] = e.CardName
		m["color"] = e.Color
		m["pt"] = e.PT
		m["annotation"] = e.Annotation
		m["destroy_on_zone_change"] = e.DestroyOnZoneChange
		m["x"] = e.X
		m["y"] = e.Y
	case SetCardAttrEvent:
		m["zone"] = e.Zone
		m["card_id"] = e.CardID
		m["attr_name"] = e.AttrName
		m["attr_value"] = e.AttrValue
	case SetCardCounterEvent:
		m["zone"] = e.Zone
		m["card_id"] = e.CardID
		m["counter_id"] = e.CounterID
		m["counter_value"] = e.CounterValue
	case CreateCountersEvent:
		counters := make([]any, 0, len(e.Counters))
		for _, c := range e.Counters {
			counters = append(counters, counterInfoFields(c))
		}
		m["counters"] = counters
	case SetCounterEvent:
		m["counter_id"] = e.CounterID
		m["value"] = e.Value
	case DelCounterEvent:
		m["counter_id"] = e.CounterID
	case DumpZoneEvent:
		m["zone_owner_id"] = e.ZoneOwnerID
		m["zone"] = e.Zone
		m["number_cards"] = e.NumberCards
	case StopDumpZoneEvent:
		m["zone_owner_id"] = e.ZoneOwnerID
		m["zone"] = e.Zone
	case MoveCardEvent:
		m["card_id"] = e.CardID
		m["card_name"] = e.CardName
		m["start_zone"] = e.StartZone
		m["position"] = e.Position
		m["target_player_id"] = e.TargetPlayerID
		m["target_zone"] = e.TargetZone
		m["x"] = e.X
		m["y"] = e.Y
		m["new_card_id"] = e.NewCardID
		m["face_down"] = e.FaceDown
	case FlipCardEvent:
		m["zone"] = e.Zone
		m["card_id"] = e.CardID
		m["card_name"] = e.CardName
		m["face_down"] = e.FaceDown
	case DestroyCardEvent:
		m["zone"] = e.Zone
		m["card_id"] = e.CardID
	case AttachCardEvent:
		m["start_zone"] = e.StartZone
		m["card_id"] = e.CardID
		m["target_player_id"] = e.TargetPlayerID
		m["target_zone"] = e.TargetZone
		m["target_card_id"] = e.TargetCardID
	case DrawCardsEvent:
		m["number_cards"] = e.NumberCards
		m["cards"] = cardInfoList(e.Cards)
	case RevealCardsEvent:
		m["zone_name"] = e.ZoneName
		m["card_id"] = e.CardID
		m["other_player_id"] = e.OtherPlayerID
		m["cards"] = cardInfoList(e.Cards)
	case UnknownEvent:
	}
	return m
}

func decodeEvent(o object) Event {
	switch kind := EventKind(o.str("type")); kind {
	case EventConnectionStateChanged:
		return ConnectionStateChangedEvent{Connected: o.bool("connected")}
	case EventSay:
		return SayEvent{Message: o.str("message")}
	case EventShuffle:
		return ShuffleEvent{}
	case EventRollDie:
		return RollDieEvent{Sides: o.int("sides", 0), Value: o.int("value", 0)}
	case EventCreateArrows:
		e := CreateArrowsEvent{}
		for _, item := range o.objects("arrows") {
			e.Arrows = append(e.Arrows, decodeArrowInfo(item))
		}
		return e
	case EventDeleteArrow:
		return DeleteArrowEvent{ArrowID: o.int("arrow_id", -1)}
	case EventCreateToken:
		return CreateTokenEvent{
			Zone:                o.str("zone"),
			CardID:              o.int("card_id", NoCard),
			CardName:            o.str("card_name"),
			Color:               o.str("color"),
			PT:                  o.str("pt"),
			Annotation:          o.str("annotation"),
			DestroyOnZoneChange: o.boolOr("destroy_on_zone_change", true),
			X:                   o.int("x", AppendPosition),
			Y:                   o.int("y", 0),
		}
	case EventSetCardAttr:
		return SetCardAttrEvent{
			Zone:      o.str("zone"),
			CardID:    o.int("card_id", NoCard),
			AttrName:  o.str("attr_name"),
			AttrValue: o.str("attr_value"),
		}
	case EventSetCardCounter:
		return SetCardCounterEvent{
			Zone:         o.str("zone"),
			CardID:       o.int("card_id", NoCard),
			CounterID:    o.int("counter_id", 0),
			CounterValue: o.int("counter_value", 0),
		}
	case EventCreateCounters:
		e := CreateCountersEvent{}
		for _, item := range o.objects("counters") {
			e.Counters = append(e.Counters, decodeCounterInfo(item))
		}
		return e
	case EventSetCounter:
		return SetCounterEvent{CounterID: o.int("counter_id", -1), Value: o.int("value", 0)}
	case EventDelCounter:
		return DelCounterEvent{CounterID: o.int("counter_id", -1)}
	case EventDumpZone:
		return DumpZoneEvent{
			ZoneOwnerID: o.int("zone_owner_id", NoPlayer),
			Zone:        o.str("zone"),
			NumberCards: o.int("number_cards", -1),
		}
	case EventStopDumpZone:
		return StopDumpZoneEvent{
			ZoneOwnerID: o.int("zone_owner_id", NoPlayer),
			Zone:        o.str("zone"),
		}
	case EventMoveCard:
		return MoveCardEvent{
			CardID:         o.int("card_id", NoCard),
			CardName:       o.str("card_name"),
			StartZone:      o.str("start_zone"),
			Position:       o.int("position", -1),
			TargetPlayerID: o.int("target_player_id", NoPlayer),
			TargetZone:     o.str("target_zone"),
			X:              o.int("x", AppendPosition),
			Y:              o.int("y", 0),
			NewCardID:      o.int("new_card_id", NoCard),
			FaceDown:       o.bool("face_down"),
		}
	case EventFlipCard:
		return FlipCardEvent{
			Zone:     o.str("zone"),
			CardID:   o.int("card_id", NoCard),
			CardName: o.str("card_name"),
			FaceDown: o.bool("face_down"),
		}
	case EventDestroyCard:
		return DestroyCardEvent{Zone: o.str("zone"), CardID: o.int("card_id", NoCard)}
	case EventAttachCard:
		return AttachCardEvent{
			StartZone:      o.str("start_zone"),
			CardID:         o.int("card_id", NoCard),
			TargetPlayerID: o.int("target_player_id", NoPlayer),
			TargetZone:     o.str("target_zone"),
			TargetCardID:   o.int("target_card_id", NoCard),
		}
	case EventDrawCards:
		return DrawCardsEvent{
			NumberCards: o.int("number_cards", 0),
			Cards:       decodeCardInfoList(o.objects("cards")),
		}
	case EventRevealCards:
		return RevealCardsEvent{
			ZoneName:      o.str("zone_name"),
			CardID:        o.int("card_id", NoCard),
			OtherPlayerID: o.int("other_player_id", NoPlayer),
			Cards:         decodeCardInfoList(o.objects("cards")),
		}
	default:
		return UnknownEvent{Type: string(kind)}
	}
}

func decodeEventContainer(o object) EventContainer {
	c := EventContainer{
		GameID:  o.int("game_id", 0),
		Context: EventContext(o.str("context")),
	}
	for _, item := range o.objects("events") {
		c.Events = append(c.Events, GameEvent{
			PlayerID: item.int("player_id", NoPlayer),
			Event:    decodeEvent(item),
		})
	}
	return c
}

func decodeGameState(o object) GameState {
	gs := GameState{
		GameID:        o.int("game_id", 0),
		LocalPlayerID: o.int("local_player", NoPlayer),
	}
	for _, item := range o.objects("players") {
		gs.Players = append(gs.Players, decodePlayerInfo(item))
	}
	return gs
}

func colorFields(c Color) map[string]any {
	return map[string]any{"r": c.R, "g": c.G, "b": c.B}
}

func decodeColor(o object) Color {
	return Color{R: o.int("r", 0), G: o.int("g", 0), B: o.int("b", 0)}
}

func cardInfoFields(c CardInfo) map[string]any {
	counters := make([]any, 0, len(c.Counters))
	for _, cc := range c.Counters {
		counters = append(counters, map[string]any{"id": cc.ID, "value": cc.Value})
	}
	m := map[string]any{
		"id":                     c.ID,
		"name":                   c.Name,
		"x":                      c.X,
		"y":                      c.Y,
		"counters":               counters,
		"tapped":                 c.Tapped,
		"attacking":              c.Attacking,
		"color":                  c.Color,
		"pt":                     c.PT,
		"annotation":             c.Annotation,
		"face_down":              c.FaceDown,
		"destroy_on_zone_change": c.DestroyOnZoneChange,
		"doesnt_untap":           c.DoesntUntap,
	}
	if c.Attached != nil {
		m["attached"] = map[string]any{
			"player": c.Attached.PlayerID,
			"zone":   c.Attached.Zone,
			"card":   c.Attached.CardID,
		}
	}
	return m
}

func decodeCardInfo(o object) CardInfo {
	c := CardInfo{
		ID:                  o.int("id", NoCard),
		Name:                o.str("name"),
		X:                   o.int("x", 0),
		Y:                   o.int("y", 0),
		Tapped:              o.bool("tapped"),
		Attacking:           o.bool("attacking"),
		Color:               o.str("color"),
		PT:                  o.str("pt"),
		Annotation:          o.str("annotation"),
		FaceDown:            o.bool("face_down"),
		DestroyOnZoneChange: o.bool("destroy_on_zone_change"),
		DoesntUntap:         o.bool("doesnt_untap"),
	}
	for _, item := range o.objects("counters") {
		c.Counters = append(c.Counters, CardCounterInfo{ID: item.int("id", 0), Value: item.int("value", 0)})
	}
	if a, ok := o.object("attached"); ok {
		c.Attached = &AttachInfo{
			PlayerID: a.int("player", NoPlayer),
			Zone:     a.str("zone"),
			CardID:   a.int("card", NoCard),
		}
	}
	return c
}

func cardInfoList(cards []CardInfo) []any {
	out := make([]any, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardInfoFields(c))
	}
	return out
}

func decodeCardInfoList(items []object) []CardInfo {
	var out []CardInfo
	for _, item := range items {
		out = append(out, decodeCardInfo(item))
	}
	return out
}

func counterInfoFields(c CounterInfo) map[string]any {
	return map[string]any{
		"id":     c.ID,
		"name":   c.Name,
		"color":  colorFields(c.Color),
		"radius": c.Radius,
		"count":  c.Count,
	}
}

func decodeCounterInfo(o object) CounterInfo {
	c := CounterInfo{
		ID:     o.int("id", -1),
		Name:   o.str("name"),
		Radius: o.int("radius", 0),
		Count:  o.int("count", 0),
	}
	if color, ok := o.object("color"); ok {
		c.Color = decodeColor(color)
	}
	return c
}

func arrowInfoFields(a ArrowInfo) map[string]any {
	return map[string]any{
		"id":               a.ID,
		"start_player_id":  a.StartPlayerID,
		"start_zone":       a.StartZone,
		"start_card_id":    a.StartCardID,
		"target_player_id": a.TargetPlayerID,
		"target_zone":      a.TargetZone,
		"target_card_id":   a.TargetCardID,
		"color":            colorFields(a.Color),
	}
}

func decodeArrowInfo(o object) ArrowInfo {
	a := ArrowInfo{
		ID:             o.int("id", -1),
		StartPlayerID:  o.int("start_player_id", NoPlayer),
		StartZone:      o.str("start_zone"),
		StartCardID:    o.int("start_card_id", NoCard),
		TargetPlayerID: o.int("target_player_id", NoPlayer),
		TargetZone:     o.str("target_zone"),
		TargetCardID:   o.int("target_card_id", NoCard),
	}
	if color, ok := o.object("color"); ok {
		a.Color = decodeColor(color)
	}
	return a
}

func playerInfoFields(p PlayerInfo) map[string]any {
	zones := make([]any, 0, len(p.Zones))
	for _, z := range p.Zones {
		zones = append(zones, map[string]any{
			"name":       z.Name,
			"card_count": z.CardCount,
			"cards":      cardInfoList(z.Cards),
		})
	}
	counters := make([]any, 0, len(p.Counters))
	for _, c := range p.Counters {
		counters = append(counters, counterInfoFields(c))
	}
	arrows := make([]any, 0, len(p.Arrows))
	for _, a := range p.Arrows {
		arrows = append(arrows, arrowInfoFields(a))
	}
	return map[string]any{
		"id":       p.ID,
		"name":     p.Name,
		"conceded": p.Conceded,
		"zones":    zones,
		"counters": counters,
		"arrows":   arrows,
	}
}

func decodePlayerInfo(o object) PlayerInfo {
	p := PlayerInfo{
		ID:       o.int("id", NoPlayer),
		Name:     o.str("name"),
		Conceded: o.bool("conceded"),
	}
	for _, z := range o.objects("zones") {
		p.Zones = append(p.Zones, ZoneInfo{
			Name:      z.str("name"),
			CardCount: z.int("card_count", 0),
			Cards:     decodeCardInfoList(z.objects("cards")),
		})
	}
	for _, c := range o.objects("counters") {
		p.Counters = append(p.Counters, decodeCounterInfo(c))
	}
	for _, a := range o.objects("arrows") {
		p.Arrows = append(p.Arrows, decodeArrowInfo(a))
	}
	return p
}
