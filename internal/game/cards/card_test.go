package cards

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/mage-client-go/internal/game/protocol"
)

func TestWildcardUntapSkipsDoesntUntap(t *testing.T) {
	stuck := New(1, "Mana Vault")
	stuck.Tapped = true
	stuck.DoesntUntap = true

	normal := New(2, "Forest")
	normal.Tapped = true

	res := stuck.ApplyAttr(protocol.AttrTapped, "0", true)
	assert.True(t, res.Skipped)
	assert.True(t, stuck.Tapped)

	res = normal.ApplyAttr(protocol.AttrTapped, "0", true)
	assert.True(t, res.Changed)
	assert.False(t, normal.Tapped)

	res = stuck.ApplyAttr(protocol.AttrTapped, "0", false)
	assert.False(t, res.Skipped, "a targeted untap applies")
	assert.False(t, stuck.Tapped)
}

func TestApplyAttrDecodesWireValues(t *testing.T) {
	c := New(1, "Bear")

	c.ApplyAttr(protocol.AttrAttacking, "1", false)
	c.ApplyAttr(protocol.AttrFaceDown, "1", false)
	c.ApplyAttr(protocol.AttrDoesntUntap, "1", false)
	c.ApplyAttr(protocol.AttrPT, "3/3", false)
	c.ApplyAttr(protocol.AttrAnnotation, "kicked", false)

	assert.True(t, c.Attacking)
	assert.True(t, c.FaceDown)
	assert.True(t, c.DoesntUntap)
	assert.Equal(t, "3/3", c.PT)
	assert.Equal(t, "kicked", c.Annotation)

	res := c.ApplyAttr("unknown", "1", false)
	assert.False(t, res.Changed)

	res = c.ApplyAttr(protocol.AttrPT, "3/3", false)
	assert.False(t, res.Changed, "overwriting with the same value is idempotent")
}

func TestFromInfoKeepsFields(t *testing.T) {
	info := protocol.CardInfo{
		ID: 4, Name: "Rancor", X: 2, Y: 1, Tapped: true, PT: "0/0",
		Counters: []protocol.CardCounterInfo{{ID: 1, Value: 3}},
		Attached: &protocol.AttachInfo{PlayerID: 1, Zone: protocol.ZoneTable, CardID: 0},
	}
	c := FromInfo(info)

	require.NotEqual(t, uuid.Nil, c.Handle)
	assert.False(t, c.IsAttached(), "attachments are resolved in a second pass")
	assert.Equal(t, 3, c.Counter(1))

	back := c.Info()
	info.Attached = nil
	assert.Equal(t, info, back)
}

func TestSetCounterReportsPrevious(t *testing.T) {
	c := New(1, "Bear")
	assert.Equal(t, 0, c.SetCounter(0, 2))
	assert.Equal(t, 2, c.SetCounter(0, 2))
	assert.Equal(t, 2, c.Counter(0))
}

func TestResetForZoneChange(t *testing.T) {
	c := New(1, "Bear")
	c.Tapped = true
	c.AttachedTo = uuid.New()
	c.SetCounter(0, 4)
	handle := c.Handle

	c.ResetForZoneChange()

	assert.False(t, c.Tapped)
	assert.False(t, c.IsAttached())
	assert.Zero(t, c.Counter(0))
	assert.Equal(t, handle, c.Handle)
}
