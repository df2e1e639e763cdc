package parse

import (
	"github.com/monitoring-agents/zbxingest/internal/ir"
	"github.com/monitoring-agents/zbxingest/internal/itemid"
	"github.com/monitoring-agents/zbxingest/internal/jsonreader"
)

// TriggerHook is called with the triggerid of each parsed row, before the
// row is appended to the table. It exists to preserve the extension seam
// the upstream reserved for a functions-cache pass; there is currently no
// functions-cache implementation, so the poller always passes nil.
type TriggerHook func(triggerID uint64) error

// Trigger parses the index-th element of the current array (expected to
// be the trigger.get "result") into an IR group matching the trigger
// schema (spec §6.2), including the derived hostid taken from the first
// element of the nested "hosts" array.
func Trigger(r *jsonreader.Reader, index int, hook TriggerHook) (*ir.Group, error) {
	if err := r.EnterElement(index); err != nil {
		return nil, err
	}
	defer r.LeaveElement()

	g := ir.NewGroup()

	triggerID, err := pushUint64(r, g, "triggerid", itemid.ZBX_TRIGGERS_TRIGGERID)
	if err != nil {
		return nil, err
	}
	if hook != nil {
		if err := hook(triggerID); err != nil {
			return nil, err
		}
	}

	for _, f := range []struct {
		name string
		id   itemid.ItemId
	}{
		{"expression", itemid.ZBX_TRIGGERS_EXPRESSION},
		{"description", itemid.ZBX_TRIGGERS_DESCRIPTION},
		{"url", itemid.ZBX_TRIGGERS_URL},
	} {
		if err := pushString(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}

	for _, f := range []struct {
		name string
		id   itemid.ItemId
	}{
		{"status", itemid.ZBX_TRIGGERS_STATUS},
		{"value", itemid.ZBX_TRIGGERS_VALUE},
		{"priority", itemid.ZBX_TRIGGERS_PRIORITY},
		{"lastchange", itemid.ZBX_TRIGGERS_LASTCHANGE},
	} {
		if err := pushInt(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}

	if err := pushString(r, g, "comments", itemid.ZBX_TRIGGERS_COMMENTS); err != nil {
		return nil, err
	}
	if err := pushString(r, g, "error", itemid.ZBX_TRIGGERS_ERROR); err != nil {
		return nil, err
	}
	if _, err := pushUint64(r, g, "templateid", itemid.ZBX_TRIGGERS_TEMPLATEID); err != nil {
		return nil, err
	}

	for _, f := range []struct {
		name string
		id   itemid.ItemId
	}{
		{"type", itemid.ZBX_TRIGGERS_TYPE},
		{"value_flags", itemid.ZBX_TRIGGERS_VALUE_FLAGS},
		{"flags", itemid.ZBX_TRIGGERS_FLAGS},
	} {
		if err := pushInt(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}

	hostID, hostIDNull, err := deriveFirstRef(r, "hosts", "hostid")
	if err != nil {
		return nil, err
	}
	if hostIDNull {
		g.AddNull(itemid.ZBX_TRIGGERS_HOSTID, ir.CellUint64)
	} else {
		g.AddUint64(itemid.ZBX_TRIGGERS_HOSTID, hostID)
	}

	return g, nil
}
