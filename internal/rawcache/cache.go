package rawcache

import (
	"strconv"

	"github.com/tidwall/buntdb"

	"github.com/monitoring-agents/zbxingest/internal/ir"
	"github.com/monitoring-agents/zbxingest/internal/itemid"
)

const (
	keyOffsetTriggerLastChange = "offset:trigger_last_change"
	keyOffsetLastEventID       = "offset:last_event_id"
)

// Cache is one source's raw record store: every row last seen from the
// upstream, plus the two offset values derived from it. One Cache
// instance owns one buntdb file; sources never share a Cache.
type Cache struct {
	db *buntdb.DB
}

// Open opens (creating if absent) the buntdb file at path.
func Open(path string) (*Cache, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying file handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

func entityKey(entity string, pk uint64) string {
	return entity + ":" + strconv.FormatUint(pk, 10)
}

// GetTriggerLastChange returns the maximum trigger lastchange previously
// observed, or ErrNotFound if no trigger has ever been cached.
func (c *Cache) GetTriggerLastChange() (int, error) {
	var value string
	err := c.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(keyOffsetTriggerLastChange)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if err == buntdb.ErrNotFound {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, &StoreError{Op: "get_trigger_last_change", Err: err}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &StoreError{Op: "get_trigger_last_change", Err: err}
	}
	return n, nil
}

// GetLastEventID returns the maximum event id previously observed, or
// ErrNotFound if no event has ever been cached.
func (c *Cache) GetLastEventID() (uint64, error) {
	var value string
	err := c.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(keyOffsetLastEventID)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if err == buntdb.ErrNotFound {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, &StoreError{Op: "get_last_event_id", Err: err}
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, &StoreError{Op: "get_last_event_id", Err: err}
	}
	return n, nil
}

// PutTriggers upserts every row by triggerid and advances the
// trigger-lastchange offset to the batch's maximum, if larger than what
// is already recorded.
func (c *Cache) PutTriggers(table *ir.Table) error {
	return c.db.Update(func(tx *buntdb.Tx) error {
		maxLastChange := -1
		for _, g := range table.Groups() {
			idCell, ok := g.Get(itemid.ZBX_TRIGGERS_TRIGGERID)
			if !ok {
				continue
			}
			value, err := encodeGroup(g)
			if err != nil {
				return err
			}
			if _, _, err := tx.Set(entityKey("trigger", idCell.Uint64), value, nil); err != nil {
				return err
			}
			if lc, ok := g.Get(itemid.ZBX_TRIGGERS_LASTCHANGE); ok && !lc.Null && int(lc.Int32) > maxLastChange {
				maxLastChange = int(lc.Int32)
			}
		}
		if maxLastChange < 0 {
			return nil
		}
		current := -1
		if v, err := tx.Get(keyOffsetTriggerLastChange); err == nil {
			current, _ = strconv.Atoi(v)
		}
		if maxLastChange > current {
			_, _, err := tx.Set(keyOffsetTriggerLastChange, strconv.Itoa(maxLastChange), nil)
			return err
		}
		return nil
	})
}

// PutItems upserts every row by itemid.
func (c *Cache) PutItems(table *ir.Table) error {
	return c.putByPK(table, "item", itemid.ZBX_ITEMS_ITEMID)
}

// PutHosts upserts every row by hostid.
func (c *Cache) PutHosts(table *ir.Table) error {
	return c.putByPK(table, "host", itemid.ZBX_HOSTS_HOSTID)
}

// PutApplications upserts every row by applicationid.
func (c *Cache) PutApplications(table *ir.Table) error {
	return c.putByPK(table, "application", itemid.ZBX_APPLICATIONS_APPLICATIONID)
}

func (c *Cache) putByPK(table *ir.Table, entity string, pkID itemid.ItemId) error {
	return c.db.Update(func(tx *buntdb.Tx) error {
		for _, g := range table.Groups() {
			pk, ok := g.Get(pkID)
			if !ok {
				continue
			}
			value, err := encodeGroup(g)
			if err != nil {
				return err
			}
			if _, _, err := tx.Set(entityKey(entity, pk.Uint64), value, nil); err != nil {
				return err
			}
		}
		return nil
	})
}

// PutEvents upserts every row by eventid and advances the last-event-id
// offset to the batch's maximum, if larger than what is already
// recorded.
func (c *Cache) PutEvents(table *ir.Table) error {
	return c.db.Update(func(tx *buntdb.Tx) error {
		var maxEventID uint64
		haveAny := false
		for _, g := range table.Groups() {
			idCell, ok := g.Get(itemid.ZBX_EVENTS_EVENTID)
			if !ok {
				continue
			}
			value, err := encodeGroup(g)
			if err != nil {
				return err
			}
			if _, _, err := tx.Set(entityKey("event", idCell.Uint64), value, nil); err != nil {
				return err
			}
			if !haveAny || idCell.Uint64 > maxEventID {
				maxEventID = idCell.Uint64
				haveAny = true
			}
		}
		if !haveAny {
			return nil
		}
		var current uint64
		if v, err := tx.Get(keyOffsetLastEventID); err == nil {
			current, _ = strconv.ParseUint(v, 10, 64)
		}
		if maxEventID > current {
			_, _, err := tx.Set(keyOffsetLastEventID, strconv.FormatUint(maxEventID, 10), nil)
			return err
		}
		return nil
	})
}
