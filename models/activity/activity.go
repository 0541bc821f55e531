package activity

import (
	"activity-tracker/models/activity_status"
	"activity-tracker/models/user"
	"time"
)

// Activity represents a trackable unit of work. StatusID is a
// denormalized pointer to the status of the most recent ledger entry
// (or the seeded "pending" status when no entry exists); the ledger in
// activity_updates stays authoritative and the pointer is rebuildable
// from it.
type Activity struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string  `gorm:"type:varchar(255);not null" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Remark      *string `gorm:"type:text" json:"remark,omitempty"`

	// Foreign key for current status relationship
	StatusID uint                           `gorm:"not null;index" json:"status_id"`
	Status   activity_status.ActivityStatus `gorm:"foreignKey:StatusID" json:"status"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	// Foreign key for creator relationship
	CreatedBy uint      `gorm:"not null;index" json:"created_by"`
	Creator   user.User `gorm:"foreignKey:CreatedBy" json:"creator"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
