package counters

import (
	"sort"

	"github.com/magefree/mage-client-go/internal/game/protocol"
)

// LifeName is the name of the counter that is bound to the player target.
const LifeName = "life"

// Counter is a player-level counter (life, poison, storm and the like).
type Counter struct {
	ID     int
	Name   string
	Color  protocol.Color
	Radius int
	Value  int
}

// NewCounter creates a counter from its snapshot description.
func NewCounter(info protocol.CounterInfo) *Counter {
	return &Counter{
		ID:     info.ID,
		Name:   info.Name,
		Color:  info.Color,
		Radius: info.Radius,
		Value:  info.Count,
	}
}

// IsLife reports whether the counter is the player's life total.
func (c *Counter) IsLife() bool {
	return c.Name == LifeName
}

// SetValue overwrites the value and returns the previous one.
func (c *Counter) SetValue(value int) int {
	old := c.Value
	c.Value = value
	return old
}

// Copy creates a deep copy of the counter.
func (c *Counter) Copy() *Counter {
	copy := *c
	return &copy
}

// Info converts the counter back to its snapshot description.
func (c *Counter) Info() protocol.CounterInfo {
	return protocol.CounterInfo{
		ID:     c.ID,
		Name:   c.Name,
		Color:  c.Color,
		Radius: c.Radius,
		Count:  c.Value,
	}
}

// Set holds the counters of one player keyed by id.
type Set struct {
	counters map[int]*Counter
}

// NewSet creates an empty counter set.
func NewSet() *Set {
	return &Set{
		counters: make(map[int]*Counter),
	}
}

// Add stores the counter. It returns nil and leaves the set untouched when the id is taken.
func (s *Set) Add(counter *Counter) *Counter {
	if counter == nil {
		return nil
	}
	if _, ok := s.counters[counter.ID]; ok {
		return nil
	}
	s.counters[counter.ID] = counter
	return counter
}

// Get returns the counter with the given id, or nil.
func (s *Set) Get(id int) *Counter {
	return s.counters[id]
}

// ByName returns the first counter (lowest id) with the given name, or nil.
func (s *Set) ByName(name string) *Counter {
	for _, c := range s.Sorted() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Remove deletes the counter and returns it, or nil when there was none.
func (s *Set) Remove(id int) *Counter {
	c, ok := s.counters[id]
	if !ok {
		return nil
	}
	delete(s.counters, id)
	return c
}

// Clear removes every counter.
func (s *Set) Clear() {
	s.counters = make(map[int]*Counter)
}

// Len returns the number of counters.
func (s *Set) Len() int {
	return len(s.counters)
}

// Sorted returns the counters ordered by id.
func (s *Set) Sorted() []*Counter {
	result := make([]*Counter, 0, len(s.counters))
	for _, c := range s.counters {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Copy creates a deep copy of the set.
func (s *Set) Copy() *Set {
	copy := NewSet()
	for id, c := range s.counters {
		copy.counters[id] = c.Copy()
	}
	return copy
}

// ToInfo converts the set to snapshot descriptions ordered by id.
func (s *Set) ToInfo() []protocol.CounterInfo {
	var infos []protocol.CounterInfo
	for _, c := range s.Sorted() {
		infos = append(infos, c.Info())
	}
	return infos
}
