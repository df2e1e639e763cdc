// Package parse maps one upstream JSON entity element into one IR group,
// using the fixed field list for that entity (spec §6.2). Each parser
// assumes the reader's current node is the array holding all elements of
// that entity (i.e. the caller has already entered "result"); the parser
// itself descends into and leaves the single element at index.
package parse

import (
	"math"

	"github.com/monitoring-agents/zbxingest/internal/ir"
	"github.com/monitoring-agents/zbxingest/internal/itemid"
	"github.com/monitoring-agents/zbxingest/internal/jsonreader"
)

// deriveFirstRef reads arrayName, a nested array member, and returns the
// uint64 value of fieldName on its first element, or null when the array
// is empty. Only the first element is consulted; any further elements are
// discarded, matching the upstream's own "we use the first ... id"
// behavior for triggers' hosts and items' applications.
func deriveFirstRef(r *jsonreader.Reader, arrayName, fieldName string) (value uint64, isNull bool, err error) {
	if err := r.EnterObject(arrayName); err != nil {
		return 0, false, err
	}
	defer r.LeaveObject()

	if r.CountElements() == 0 {
		return 0, true, nil
	}

	if err := r.EnterElement(0); err != nil {
		return 0, false, err
	}
	defer r.LeaveElement()

	value, err = r.ReadUint64(fieldName)
	if err != nil {
		return 0, false, err
	}
	return value, false, nil
}

func pushInt(r *jsonreader.Reader, g *ir.Group, name string, id itemid.ItemId) error {
	v, err := r.ReadInt(name)
	if err != nil {
		return err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return &jsonreader.ParseError{Path: name, Reason: "value out of int32 range"}
	}
	g.AddInt(id, int32(v))
	return nil
}

func pushUint64(r *jsonreader.Reader, g *ir.Group, name string, id itemid.ItemId) (uint64, error) {
	v, err := r.ReadUint64(name)
	if err != nil {
		return 0, err
	}
	g.AddUint64(id, v)
	return v, nil
}

func pushString(r *jsonreader.Reader, g *ir.Group, name string, id itemid.ItemId) error {
	v, err := r.ReadString(name)
	if err != nil {
		return err
	}
	g.AddString(id, v)
	return nil
}
