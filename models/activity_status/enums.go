package activity_status

// The fixed status catalog. Seeded by database/seeders; referenced by
// name only when resolving ids, everything else goes through the FK.
const (
	StatusPending    = "pending"
	StatusDone       = "done"
	StatusInProgress = "in_progress"
	StatusOnHold     = "on_hold"
)

// DefaultName is the status an activity reports before its first
// ledger entry.
const DefaultName = StatusPending

// AllNames returns every status name in the catalog, in seed order.
func AllNames() []string {
	return []string{
		StatusPending,
		StatusDone,
		StatusInProgress,
		StatusOnHold,
	}
}

// IsKnown reports whether name belongs to the fixed catalog.
func IsKnown(name string) bool {
	switch name {
	case StatusPending, StatusDone, StatusInProgress, StatusOnHold:
		return true
	default:
		return false
	}
}
