package ir

import "github.com/monitoring-agents/zbxingest/internal/itemid"

// Group is an ordered sequence of cells identified by ItemId. Within a
// single group, ItemIds are unique; insertion order defines iteration
// order but carries no semantic weight.
type Group struct {
	order []itemid.ItemId
	cells map[itemid.ItemId]Cell
}

// NewGroup returns an empty group ready to be populated by AddInt,
// AddUint64, AddString, or AddNull.
func NewGroup() *Group {
	return &Group{cells: make(map[itemid.ItemId]Cell)}
}

func (g *Group) append(id itemid.ItemId, c Cell) {
	if _, exists := g.cells[id]; !exists {
		g.order = append(g.order, id)
	}
	g.cells[id] = c
}

// AddInt appends a non-null int32 cell.
func (g *Group) AddInt(id itemid.ItemId, v int32) {
	g.append(id, Cell{Kind: CellInt32, Int32: v})
}

// AddUint64 appends a non-null uint64 cell.
func (g *Group) AddUint64(id itemid.ItemId, v uint64) {
	g.append(id, Cell{Kind: CellUint64, Uint64: v})
}

// AddString appends a non-null string cell.
func (g *Group) AddString(id itemid.ItemId, v string) {
	g.append(id, Cell{Kind: CellString, Str: v})
}

// AddNull appends a null cell of the given kind.
func (g *Group) AddNull(id itemid.ItemId, kind CellKind) {
	g.append(id, Cell{Kind: kind, Null: true})
}

// Get looks up a cell by ItemId. ok is false when the group has no cell
// with that id.
func (g *Group) Get(id itemid.ItemId) (Cell, bool) {
	c, ok := g.cells[id]
	return c, ok
}

// ItemIds returns the ids present in this group, in insertion order.
func (g *Group) ItemIds() []itemid.ItemId {
	out := make([]itemid.ItemId, len(g.order))
	copy(out, g.order)
	return out
}

// Len reports the number of cells in the group.
func (g *Group) Len() int {
	return len(g.order)
}
