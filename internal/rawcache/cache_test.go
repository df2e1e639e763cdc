package rawcache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monitoring-agents/zbxingest/internal/ir"
	"github.com/monitoring-agents/zbxingest/internal/itemid"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "raw.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func triggerGroup(triggerID uint64, lastChange int32) *ir.Group {
	g := ir.NewGroup()
	g.AddUint64(itemid.ZBX_TRIGGERS_TRIGGERID, triggerID)
	g.AddString(itemid.ZBX_TRIGGERS_DESCRIPTION, "d")
	g.AddInt(itemid.ZBX_TRIGGERS_LASTCHANGE, lastChange)
	g.AddNull(itemid.ZBX_TRIGGERS_HOSTID, ir.CellUint64)
	return g
}

func TestOffsetsNotFoundInitially(t *testing.T) {
	c := openTestCache(t)

	_, err := c.GetTriggerLastChange()
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.GetLastEventID()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutTriggersAdvancesOffsetToMax(t *testing.T) {
	c := openTestCache(t)

	table := ir.NewTable()
	table.Append(triggerGroup(1, 100))
	table.Append(triggerGroup(2, 50))
	require.NoError(t, c.PutTriggers(table))

	lc, err := c.GetTriggerLastChange()
	require.NoError(t, err)
	assert.Equal(t, 100, lc)

	table2 := ir.NewTable()
	table2.Append(triggerGroup(1, 80))
	require.NoError(t, c.PutTriggers(table2))

	lc, err = c.GetTriggerLastChange()
	require.NoError(t, err)
	assert.Equal(t, 100, lc, "offset must never regress")
}

func TestReadTriggersAsNormalizedRoundTrips(t *testing.T) {
	c := openTestCache(t)

	table := ir.NewTable()
	table.Append(triggerGroup(1, 100))
	require.NoError(t, c.PutTriggers(table))

	rows, err := c.ReadTriggersAsNormalized()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 1, rows[0].TriggerID)
	assert.True(t, rows[0].HostIDNull)
}

func TestPutEventsAdvancesOffsetToMax(t *testing.T) {
	c := openTestCache(t)

	table := ir.NewTable()
	for _, id := range []uint64{3, 7, 5} {
		g := ir.NewGroup()
		g.AddUint64(itemid.ZBX_EVENTS_EVENTID, id)
		table.Append(g)
	}
	require.NoError(t, c.PutEvents(table))

	last, err := c.GetLastEventID()
	require.NoError(t, err)
	assert.EqualValues(t, 7, last)
}

func TestTransformEventsToNormalizedIsPure(t *testing.T) {
	table := ir.NewTable()
	g := ir.NewGroup()
	g.AddUint64(itemid.ZBX_EVENTS_EVENTID, 9)
	g.AddInt(itemid.ZBX_EVENTS_CLOCK, 42)
	table.Append(g)

	rows := TransformEventsToNormalized(table, 7)
	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].SourceID)
	assert.EqualValues(t, 9, rows[0].EventID)
	assert.EqualValues(t, 42, rows[0].Clock)
}
