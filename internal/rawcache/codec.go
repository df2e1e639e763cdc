package rawcache

import (
	"encoding/json"
	"strconv"

	"github.com/monitoring-agents/zbxingest/internal/ir"
	"github.com/monitoring-agents/zbxingest/internal/itemid"
)

// cellJSON is the wire shape of one ir.Cell as stored in buntdb; buntdb
// values are strings, so every row is serialized as a flat JSON object
// keyed by the decimal ItemId.
type cellJSON struct {
	Kind   ir.CellKind `json:"k"`
	Int32  int32       `json:"i,omitempty"`
	Uint64 uint64      `json:"u,omitempty"`
	Str    string      `json:"s,omitempty"`
	Null   bool        `json:"n,omitempty"`
}

func encodeGroup(g *ir.Group) (string, error) {
	row := make(map[string]cellJSON, g.Len())
	for _, id := range g.ItemIds() {
		c, _ := g.Get(id)
		row[strconv.Itoa(int(id))] = cellJSON{
			Kind: c.Kind, Int32: c.Int32, Uint64: c.Uint64, Str: c.Str, Null: c.Null,
		}
	}
	b, err := json.Marshal(row)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeGroup(value string) (*ir.Group, error) {
	var row map[string]cellJSON
	if err := json.Unmarshal([]byte(value), &row); err != nil {
		return nil, err
	}
	g := ir.NewGroup()
	for key, c := range row {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, err
		}
		if c.Null {
			g.AddNull(itemid.ItemId(id), c.Kind)
			continue
		}
		switch c.Kind {
		case ir.CellInt32:
			g.AddInt(itemid.ItemId(id), c.Int32)
		case ir.CellUint64:
			g.AddUint64(itemid.ItemId(id), c.Uint64)
		case ir.CellString:
			g.AddString(itemid.ItemId(id), c.Str)
		}
	}
	return g, nil
}
