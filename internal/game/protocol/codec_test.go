package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestCommandContainerRoundTrip(t *testing.T) {
	in := CommandContainer{
		ID:       "batch-1",
		GameID:   7,
		PlayerID: 2,
		Commands: []Command{
			DrawCardsCommand{Number: 3},
			MoveCardCommand{
				StartZone:      ZoneHand,
				TargetPlayerID: 2,
				TargetZone:     ZoneTable,
				Cards:          []CardToMove{{CardID: 4, FaceDown: true, PT: "2/2", Tapped: true}},
				X:              AppendPosition,
			},
			SetCardAttrCommand{Zone: ZoneTable, CardID: NoCard, AttrName: AttrTapped, AttrValue: "0"},
			AttachCardCommand{StartZone: ZoneTable, CardID: 5, TargetPlayerID: NoPlayer, TargetCardID: NoCard},
			RevealCardsCommand{ZoneName: ZoneHand, PlayerID: NoPlayer, CardID: RandomCard},
		},
	}

	data, err := EncodeCommandContainer(in)
	require.NoError(t, err)

	out, err := DecodeCommandContainer(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEventContainerDecodesEveryKnownEvent(t *testing.T) {
	in := EventContainer{
		GameID:  3,
		Context: ContextUndoDraw,
		Events: []GameEvent{
			{PlayerID: 1, Event: MoveCardEvent{
				CardID: 10, CardName: "Island", StartZone: ZoneHand, Position: 2,
				TargetPlayerID: 1, TargetZone: ZoneDeck, X: 0, Y: 0, NewCardID: 11,
			}},
			{PlayerID: 1, Event: DrawCardsEvent{NumberCards: 1, Cards: []CardInfo{{ID: 20, Name: "Forest"}}}},
			{PlayerID: 2, Event: CreateArrowsEvent{Arrows: []ArrowInfo{{
				ID: 1, StartPlayerID: 2, StartZone: ZoneTable, StartCardID: 3,
				TargetPlayerID: 1, Color: Color{R: 255},
			}}}},
			{PlayerID: 2, Event: CreateCountersEvent{Counters: []CounterInfo{{
				ID: 0, Name: "life", Color: Color{R: 255, G: 255, B: 255}, Radius: 25, Count: 20,
			}}}},
			{PlayerID: 2, Event: SetCardAttrEvent{Zone: ZoneTable, CardID: NoCard, AttrName: AttrTapped, AttrValue: "0"}},
		},
	}

	data, err := EncodeEventContainer(in)
	require.NoError(t, err)

	out, err := DecodeEventContainer(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUnknownEventTypeIsPreserved(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{
		"kind":    envelopeEvents,
		"game_id": 1,
		"events": []any{
			map[string]any{"type": "set_active_phase", "player_id": 0, "phase": 3},
		},
	})
	require.NoError(t, err)
	data, err := proto.Marshal(s)
	require.NoError(t, err)

	out, err := DecodeEventContainer(data)
	require.NoError(t, err)
	require.Len(t, out.Events, 1)
	assert.Equal(t, UnknownEvent{Type: "set_active_phase"}, out.Events[0].Event)
	assert.Equal(t, EventKind("set_active_phase"), out.Events[0].Event.Kind())
}

func TestTokensDefaultToDestroyOnZoneChange(t *testing.T) {
	events, err := structpb.NewStruct(map[string]any{
		"kind":    envelopeEvents,
		"game_id": 1,
		"events": []any{
			map[string]any{"type": "create_token", "player_id": 1, "zone": "table", "card_id": 3, "card_name": "Goblin"},
			map[string]any{"type": "create_token", "player_id": 1, "zone": "table", "card_id": 4, "card_name": "Wall",
				"destroy_on_zone_change": false},
		},
	})
	require.NoError(t, err)
	data, err := proto.Marshal(events)
	require.NoError(t, err)

	out, err := DecodeEventContainer(data)
	require.NoError(t, err)
	require.Len(t, out.Events, 2)
	goblin, ok := out.Events[0].Event.(CreateTokenEvent)
	require.True(t, ok)
	assert.True(t, goblin.DestroyOnZoneChange)
	wall, ok := out.Events[1].Event.(CreateTokenEvent)
	require.True(t, ok)
	assert.False(t, wall.DestroyOnZoneChange, "persistent tokens stay persistent")

	commands, err := structpb.NewStruct(map[string]any{
		"kind":      envelopeCommands,
		"game_id":   1,
		"player_id": 1,
		"commands":  []any{map[string]any{"type": "create_token", "zone": "table", "card_name": "Goblin"}},
	})
	require.NoError(t, err)
	data, err = proto.Marshal(commands)
	require.NoError(t, err)

	cc, err := DecodeCommandContainer(data)
	require.NoError(t, err)
	require.Len(t, cc.Commands, 1)
	cmd, ok := cc.Commands[0].(CreateTokenCommand)
	require.True(t, ok)
	assert.True(t, cmd.DestroyOnZoneChange)
}

func TestDecodeServerMessageDispatchesOnKind(t *testing.T) {
	gs := GameState{
		GameID:        9,
		LocalPlayerID: 1,
		Players: []PlayerInfo{{
			ID:   1,
			Name: "alice",
			Zones: []ZoneInfo{
				{Name: ZoneDeck, CardCount: 40},
				{Name: ZoneTable, CardCount: 1, Cards: []CardInfo{{
					ID: 4, Name: "Aura", Attached: &AttachInfo{PlayerID: 1, Zone: ZoneTable, CardID: 5},
				}}},
			},
		}},
	}
	data, err := EncodeGameState(gs)
	require.NoError(t, err)

	msg, err := DecodeServerMessage(data)
	require.NoError(t, err)
	got, ok := msg.(*GameState)
	require.True(t, ok)
	assert.Equal(t, gs, *got)

	events, err := EncodeEventContainer(EventContainer{GameID: 9})
	require.NoError(t, err)
	msg, err = DecodeServerMessage(events)
	require.NoError(t, err)
	assert.IsType(t, &EventContainer{}, msg)
}

func TestDecodeRejectsWrongEnvelope(t *testing.T) {
	data, err := EncodeGameState(GameState{GameID: 1})
	require.NoError(t, err)

	_, err = DecodeEventContainer(data)
	assert.ErrorIs(t, err, ErrUnexpectedMessage)

	cmds, err := EncodeCommandContainer(CommandContainer{ID: "x"})
	require.NoError(t, err)
	_, err = DecodeServerMessage(cmds)
	assert.ErrorIs(t, err, ErrUnexpectedMessage)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := DecodeEventContainer([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}
