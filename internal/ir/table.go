package ir

// Table is an ordered sequence of groups. A Table is a value-shaped
// container: it is allocated at the start of a fetch, owned by the
// producing call, and consumed within the same cycle. Callers that need
// to retain a Table beyond the producing call should treat it as
// immutable and take their own reference; concurrent mutation of a single
// Table is not supported.
type Table struct {
	groups []*Group
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Append adds a group to the end of the table.
func (t *Table) Append(g *Group) {
	t.groups = append(t.groups, g)
}

// Len reports the number of groups in the table.
func (t *Table) Len() int {
	return len(t.groups)
}

// Groups returns the groups in insertion order. The returned slice shares
// storage with the table; callers must not mutate it.
func (t *Table) Groups() []*Group {
	return t.groups
}
