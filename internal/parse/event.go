package parse

import (
	"github.com/monitoring-agents/zbxingest/internal/ir"
	"github.com/monitoring-agents/zbxingest/internal/itemid"
	"github.com/monitoring-agents/zbxingest/internal/jsonreader"
)

// Event parses the index-th element of the current array (event.get
// "result") into an IR group matching the event schema. No derived
// columns.
func Event(r *jsonreader.Reader, index int) (*ir.Group, error) {
	if err := r.EnterElement(index); err != nil {
		return nil, err
	}
	defer r.LeaveElement()

	g := ir.NewGroup()

	if _, err := pushUint64(r, g, "eventid", itemid.ZBX_EVENTS_EVENTID); err != nil {
		return nil, err
	}

	for _, f := range []fieldSpec{
		{"source", itemid.ZBX_EVENTS_SOURCE},
		{"object", itemid.ZBX_EVENTS_OBJECT},
	} {
		if err := pushInt(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}

	if _, err := pushUint64(r, g, "objectid", itemid.ZBX_EVENTS_OBJECTID); err != nil {
		return nil, err
	}

	for _, f := range []fieldSpec{
		{"clock", itemid.ZBX_EVENTS_CLOCK},
		{"value", itemid.ZBX_EVENTS_VALUE},
		{"acknowledged", itemid.ZBX_EVENTS_ACKNOWLEDGED},
		{"ns", itemid.ZBX_EVENTS_NS},
		{"value_changed", itemid.ZBX_EVENTS_VALUE_CHANGED},
	} {
		if err := pushInt(r, g, f.name, f.id); err != nil {
			return nil, err
		}
	}

	return g, nil
}
