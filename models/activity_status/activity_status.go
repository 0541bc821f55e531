package activity_status

import (
	"strings"
	"time"
)

// ActivityStatus is reference data seeded once at startup. Both the
// activity's current-status pointer and every ledger row point at it.
type ActivityStatus struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(50);not null;unique" json:"name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Label returns the display form of the status name, e.g. "in_progress"
// becomes "IN PROGRESS".
func (s ActivityStatus) Label() string {
	return strings.ToUpper(strings.ReplaceAll(s.Name, "_", " "))
}

// TableName sets the table name for the ActivityStatus model
func (ActivityStatus) TableName() string {
	return "activity_statuses"
}
