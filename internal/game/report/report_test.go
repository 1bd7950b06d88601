package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/mage-client-go/internal/game/protocol"
)

func TestReportFind(t *testing.T) {
	r := New(2, protocol.EventMoveCard, protocol.ContextUndoDraw)
	r.Add(Change{Kind: KindUndoDraw, CardName: "Island"})
	r.Add(Change{Kind: KindDeleteArrow, Value: 4})
	r.Add(Change{Kind: KindDeleteArrow, Value: 5})

	assert.True(t, r.Has(KindUndoDraw))
	assert.False(t, r.Has(KindMoveCard))
	deleted := r.Find(KindDeleteArrow)
	require.Len(t, deleted, 2)
	assert.Equal(t, 5, deleted[1].Value)
	assert.Equal(t, 2, deleted[0].PlayerID)

	var empty *Report
	assert.True(t, empty.Empty())
	assert.Nil(t, empty.Find(KindSay))
}

func TestChangeString(t *testing.T) {
	assert.Equal(t, "player 1 untaps their permanents",
		Change{Kind: KindSetTapped, PlayerID: 1, CardID: protocol.NoCard}.String())
	assert.Equal(t, "player 0 taps Bear",
		Change{Kind: KindSetTapped, PlayerID: 0, CardID: 3, CardName: "Bear", Flag: true}.String())
	assert.Equal(t, "player 3 draws 2 card(s)", Change{Kind: KindDrawCards, PlayerID: 3, Value: 2}.String())
	assert.Equal(t, "reorganize_zone player=1 zone=table",
		Change{Kind: KindReorganizeZone, PlayerID: 1, Zone: protocol.ZoneTable}.String())
}

func TestBusSubscribeKind(t *testing.T) {
	bus := NewBus()

	var all []*Report
	var says []string
	allHandle := bus.Subscribe(func(r *Report) { all = append(all, r) })
	sayHandle := bus.SubscribeKind(KindSay, func(_ *Report, c Change) { says = append(says, c.Text) })

	r := New(1, protocol.EventSay, protocol.NoContext)
	r.Add(Change{Kind: KindSay, Text: "hello"})
	bus.Publish(r)

	other := New(1, protocol.EventShuffle, protocol.NoContext)
	other.Add(Change{Kind: KindShuffle})
	bus.Publish(other)

	assert.Len(t, all, 2)
	assert.Equal(t, []string{"hello"}, says)

	bus.Unsubscribe(sayHandle)
	bus.Unsubscribe(allHandle)
	bus.PublishBatch([]*Report{r, other})
	assert.Len(t, all, 2)
	assert.Len(t, says, 1)

	assert.Equal(t, -1, bus.Subscribe(nil))
	assert.Equal(t, -1, bus.SubscribeKind(KindSay, nil))
}

func TestBusCallsListenersInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	handles := make([]int, 0, 20)
	for i := 0; i < 20; i++ {
		i := i
		handles = append(handles, bus.Subscribe(func(*Report) { order = append(order, i) }))
	}
	bus.Unsubscribe(handles[7])

	bus.Publish(New(1, protocol.EventShuffle, protocol.NoContext))

	want := make([]int, 0, 19)
	for i := 0; i < 20; i++ {
		if i != 7 {
			want = append(want, i)
		}
	}
	assert.Equal(t, want, order)
}
