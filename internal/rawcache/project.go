package rawcache

import (
	"github.com/tidwall/buntdb"

	"github.com/monitoring-agents/zbxingest/internal/ir"
	"github.com/monitoring-agents/zbxingest/internal/itemid"
	"github.com/monitoring-agents/zbxingest/internal/normalized"
)

// ReadTriggersAsNormalized reads every cached trigger row back out as a
// normalized.TriggerRow. It is read from the cache rather than from a
// freshly fetched delta so that hosts referenced by older, still-valid
// triggers remain present in the projection.
func (c *Cache) ReadTriggersAsNormalized() ([]normalized.TriggerRow, error) {
	var out []normalized.TriggerRow
	var decodeErr error
	err := c.db.View(func(tx *buntdb.Tx) error {
		if err := tx.AscendKeys("trigger:*", func(key, value string) bool {
			g, err := decodeGroup(value)
			if err != nil {
				decodeErr = err
				return false
			}
			out = append(out, triggerGroupToRow(g))
			return true
		}); err != nil {
			return err
		}
		return decodeErr
	})
	if err != nil {
		return nil, &StoreError{Op: "read_triggers_as_normalized", Err: err}
	}
	return out, nil
}

func triggerGroupToRow(g *ir.Group) normalized.TriggerRow {
	row := normalized.TriggerRow{}
	if c, ok := g.Get(itemid.ZBX_TRIGGERS_TRIGGERID); ok {
		row.TriggerID = c.Uint64
	}
	if c, ok := g.Get(itemid.ZBX_TRIGGERS_DESCRIPTION); ok {
		row.Description = c.Str
	}
	if c, ok := g.Get(itemid.ZBX_TRIGGERS_STATUS); ok {
		row.Status = c.Int32
	}
	if c, ok := g.Get(itemid.ZBX_TRIGGERS_VALUE); ok {
		row.Value = c.Int32
	}
	if c, ok := g.Get(itemid.ZBX_TRIGGERS_PRIORITY); ok {
		row.Priority = c.Int32
	}
	if c, ok := g.Get(itemid.ZBX_TRIGGERS_LASTCHANGE); ok {
		row.LastChange = c.Int32
	}
	if c, ok := g.Get(itemid.ZBX_TRIGGERS_HOSTID); ok {
		row.HostID = c.Uint64
		row.HostIDNull = c.Null
	}
	return row
}

// TransformEventsToNormalized maps a freshly fetched event table into
// normalized rows for sourceID. Pure: it touches neither the raw cache
// nor the normalized store.
func TransformEventsToNormalized(table *ir.Table, sourceID int) []normalized.EventRow {
	out := make([]normalized.EventRow, 0, table.Len())
	for _, g := range table.Groups() {
		row := normalized.EventRow{SourceID: sourceID}
		if c, ok := g.Get(itemid.ZBX_EVENTS_EVENTID); ok {
			row.EventID = c.Uint64
		}
		if c, ok := g.Get(itemid.ZBX_EVENTS_SOURCE); ok {
			row.Source = c.Int32
		}
		if c, ok := g.Get(itemid.ZBX_EVENTS_OBJECT); ok {
			row.Object = c.Int32
		}
		if c, ok := g.Get(itemid.ZBX_EVENTS_OBJECTID); ok {
			row.ObjectID = c.Uint64
		}
		if c, ok := g.Get(itemid.ZBX_EVENTS_CLOCK); ok {
			row.Clock = c.Int32
		}
		if c, ok := g.Get(itemid.ZBX_EVENTS_VALUE); ok {
			row.Value = c.Int32
		}
		if c, ok := g.Get(itemid.ZBX_EVENTS_ACKNOWLEDGED); ok {
			row.Acknowledged = c.Int32
		}
		out = append(out, row)
	}
	return out
}

// TransformItemsToNormalized maps a freshly fetched item table into
// normalized rows for sourceID. Pure.
func TransformItemsToNormalized(table *ir.Table, sourceID int) []normalized.ItemRow {
	out := make([]normalized.ItemRow, 0, table.Len())
	for _, g := range table.Groups() {
		row := normalized.ItemRow{SourceID: sourceID}
		if c, ok := g.Get(itemid.ZBX_ITEMS_ITEMID); ok {
			row.ItemID = c.Uint64
		}
		if c, ok := g.Get(itemid.ZBX_ITEMS_HOSTID); ok {
			row.HostID = c.Uint64
		}
		if c, ok := g.Get(itemid.ZBX_ITEMS_NAME); ok {
			row.Name = c.Str
		}
		if c, ok := g.Get(itemid.ZBX_ITEMS_KEY_); ok {
			row.Key = c.Str
		}
		if c, ok := g.Get(itemid.ZBX_ITEMS_LASTVALUE); ok {
			row.LastValue = c.Str
		}
		if c, ok := g.Get(itemid.ZBX_ITEMS_LASTCLOCK); ok {
			row.LastClock = c.Int32
		}
		if c, ok := g.Get(itemid.ZBX_ITEMS_STATUS); ok {
			row.Status = c.Int32
		}
		if c, ok := g.Get(itemid.ZBX_ITEMS_APPLICATIONID); ok {
			row.ApplicationID = c.Uint64
			row.ApplicationIDNull = c.Null
		}
		out = append(out, row)
	}
	return out
}
