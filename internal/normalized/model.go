// Package normalized defines the downstream-facing row shapes projected
// from the raw cache, and the sqlite-backed store they are written to.
package normalized

// TriggerRow is one row of the per-source trigger snapshot.
type TriggerRow struct {
	SourceID    int
	TriggerID   uint64
	Description string
	Status      int32
	Value       int32
	Priority    int32
	LastChange  int32
	HostID      uint64
	HostIDNull  bool
}

// ItemRow is one row of the per-source item projection.
type ItemRow struct {
	SourceID      int
	ItemID        uint64
	HostID        uint64
	Name          string
	Key           string
	LastValue     string
	LastClock     int32
	Status        int32
	ApplicationID uint64
	ApplicationIDNull bool
}

// EventRow is one row of the cross-cycle event log.
type EventRow struct {
	SourceID     int
	EventID      uint64
	Source       int32
	Object       int32
	ObjectID     uint64
	Clock        int32
	Value        int32
	Acknowledged int32
}
