package activity_update

import (
	"activity-tracker/models/activity"
	"activity-tracker/models/activity_status"
	"activity-tracker/models/user"
	"time"
)

// ActivityUpdate is one append-only ledger entry: a status change plus
// optional remark, authored by a user at a point in time. Rows are
// never edited or deleted once written; deleting an Activity cascades
// to its updates. "Latest" means created_at DESC, ties broken by id
// DESC since ids are assigned monotonically.
type ActivityUpdate struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// DO NOT make this unique here (updates are many per activity)
	ActivityID uint              `gorm:"not null;index" json:"activity_id"`
	Activity   activity.Activity `gorm:"foreignKey:ActivityID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"activity"`

	UserID uint      `gorm:"not null" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	StatusID uint                           `gorm:"not null" json:"status_id"`
	Status   activity_status.ActivityStatus `gorm:"foreignKey:StatusID" json:"status"`

	Remark *string `gorm:"type:text" json:"remark,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the ActivityUpdate model
func (ActivityUpdate) TableName() string {
	return "activity_updates"
}
