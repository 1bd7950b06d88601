package counters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/mage-client-go/internal/game/protocol"
)

func TestSetAddRejectsDuplicateID(t *testing.T) {
	s := NewSet()
	life := s.Add(NewCounter(protocol.CounterInfo{ID: 0, Name: LifeName, Count: 20}))
	require.NotNil(t, life)
	assert.True(t, life.IsLife())

	dup := s.Add(NewCounter(protocol.CounterInfo{ID: 0, Name: "poison", Count: 1}))
	assert.Nil(t, dup)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, LifeName, s.Get(0).Name, "existing counter is kept")
}

func TestSetRemoveMissingIsNoop(t *testing.T) {
	s := NewSet()
	s.Add(NewCounter(protocol.CounterInfo{ID: 3, Name: "storm"}))

	assert.Nil(t, s.Remove(7))
	assert.Equal(t, 1, s.Len())

	removed := s.Remove(3)
	require.NotNil(t, removed)
	assert.Equal(t, "storm", removed.Name)
	assert.Zero(t, s.Len())
}

func TestCounterSetValueReturnsPrevious(t *testing.T) {
	c := NewCounter(protocol.CounterInfo{ID: 1, Name: LifeName, Count: 20})
	assert.Equal(t, 20, c.SetValue(17))
	assert.Equal(t, 17, c.SetValue(17))
	assert.Equal(t, 17, c.Value)
}

func TestSetSortedAndInfo(t *testing.T) {
	s := NewSet()
	s.Add(NewCounter(protocol.CounterInfo{ID: 5, Name: "poison"}))
	s.Add(NewCounter(protocol.CounterInfo{ID: 1, Name: LifeName, Count: 20}))

	infos := s.ToInfo()
	require.Len(t, infos, 2)
	assert.Equal(t, 1, infos[0].ID)
	assert.Equal(t, 20, infos[0].Count)
	assert.Equal(t, 5, infos[1].ID)
	assert.Equal(t, "poison", s.ByName("poison").Name)

	copy := s.Copy()
	copy.Get(1).SetValue(3)
	assert.Equal(t, 20, s.Get(1).Value)
}

func TestCardCounters(t *testing.T) {
	cc := CardCountersFromInfo([]protocol.CardCounterInfo{{ID: CardCounterGreen, Value: 2}})

	assert.Equal(t, 2, cc.Set(CardCounterGreen, 3))
	assert.Equal(t, 3, cc.Set(CardCounterGreen, 3), "setting the same value twice reports it")
	assert.Equal(t, 3, cc.Get(CardCounterGreen))

	assert.Equal(t, 0, cc.Set(CardCounterRed, 1))
	assert.Equal(t, []int{CardCounterRed, CardCounterGreen}, cc.IDs())

	assert.Equal(t, 1, cc.Set(CardCounterRed, 0))
	_, present := cc[CardCounterRed]
	assert.False(t, present)
}

func TestClampCardValue(t *testing.T) {
	assert.Equal(t, 0, ClampCardValue(-4))
	assert.Equal(t, 12, ClampCardValue(12))
	assert.Equal(t, MaxOnCard, ClampCardValue(5000))
	assert.Equal(t, "yellow", CardCounterName(CardCounterYellow))
	assert.Equal(t, "counter 7", CardCounterName(7))
}
