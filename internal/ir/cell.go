package ir

// CellKind tags the runtime type carried by a Cell.
type CellKind int

const (
	CellInt32 CellKind = iota
	CellUint64
	CellString
)

// Cell is a single typed, nullable value identified by its ItemId within a
// Group. A null cell carries a type-appropriate zero value; callers must
// check Null before trusting Int32/Uint64/Str.
type Cell struct {
	Kind   CellKind
	Int32  int32
	Uint64 uint64
	Str    string
	Null   bool
}
