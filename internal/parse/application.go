package parse

import (
	"github.com/monitoring-agents/zbxingest/internal/ir"
	"github.com/monitoring-agents/zbxingest/internal/itemid"
	"github.com/monitoring-agents/zbxingest/internal/jsonreader"
)

// Application parses the index-th element of the current array
// (application.get "result") into an IR group matching the application
// schema. No derived columns.
func Application(r *jsonreader.Reader, index int) (*ir.Group, error) {
	if err := r.EnterElement(index); err != nil {
		return nil, err
	}
	defer r.LeaveElement()

	g := ir.NewGroup()

	if _, err := pushUint64(r, g, "applicationid", itemid.ZBX_APPLICATIONS_APPLICATIONID); err != nil {
		return nil, err
	}
	if _, err := pushUint64(r, g, "hostid", itemid.ZBX_APPLICATIONS_HOSTID); err != nil {
		return nil, err
	}
	if err := pushString(r, g, "name", itemid.ZBX_APPLICATIONS_NAME); err != nil {
		return nil, err
	}
	if _, err := pushUint64(r, g, "templateid", itemid.ZBX_APPLICATIONS_TEMPLATEID); err != nil {
		return nil, err
	}

	return g, nil
}
