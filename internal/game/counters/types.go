package counters

import (
	"sort"
	"strconv"

	"github.com/magefree/mage-client-go/internal/game/protocol"
)

// MaxOnCard bounds the value of a single card counter.
const MaxOnCard = 999

// Card counter ids understood by the server.
const (
	CardCounterRed    = 0
	CardCounterYellow = 1
	CardCounterGreen  = 2
)

// CardCounterName returns a display name for a card counter id.
func CardCounterName(id int) string {
	switch id {
	case CardCounterRed:
		return "red"
	case CardCounterYellow:
		return "yellow"
	case CardCounterGreen:
		return "green"
	default:
		return "counter " + strconv.Itoa(id)
	}
}

// ClampCardValue bounds a requested card counter value to [0, MaxOnCard].
func ClampCardValue(value int) int {
	if value < 0 {
		return 0
	}
	if value > MaxOnCard {
		return MaxOnCard
	}
	return value
}

// CardCounters maps counter id to value for one card. Ids with value 0 are not stored.
type CardCounters map[int]int

// CardCountersFromInfo builds the map from a snapshot card.
func CardCountersFromInfo(infos []protocol.CardCounterInfo) CardCounters {
	cc := make(CardCounters, len(infos))
	for _, info := range infos {
		cc.Set(info.ID, info.Value)
	}
	return cc
}

// Get returns the value of the counter, 0 when absent.
func (cc CardCounters) Get(id int) int {
	return cc[id]
}

// Set overwrites the value and returns the previous one. A value of 0 or less removes the counter.
func (cc CardCounters) Set(id, value int) int {
	old := cc[id]
	if value <= 0 {
		delete(cc, id)
	} else {
		cc[id] = value
	}
	return old
}

// IDs returns the ids present, sorted.
func (cc CardCounters) IDs() []int {
	ids := make([]int, 0, len(cc))
	for id := range cc {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Copy creates a copy of the map.
func (cc CardCounters) Copy() CardCounters {
	copy := make(CardCounters, len(cc))
	for id, v := range cc {
		copy[id] = v
	}
	return copy
}

// ToInfo converts the map to snapshot form ordered by id.
func (cc CardCounters) ToInfo() []protocol.CardCounterInfo {
	var infos []protocol.CardCounterInfo
	for _, id := range cc.IDs() {
		infos = append(infos, protocol.CardCounterInfo{ID: id, Value: cc[id]})
	}
	return infos
}
