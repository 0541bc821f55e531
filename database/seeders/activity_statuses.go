package seeders

import (
	"log"

	"activity-tracker/models/activity_status"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedActivityStatuses inserts the fixed status catalog. Existing rows
// are left untouched so re-running at every startup is safe.
func SeedActivityStatuses(db *gorm.DB) error {
	log.Printf("🔍 Checking activity status catalog...")

	statuses := make([]activity_status.ActivityStatus, 0, len(activity_status.AllNames()))
	for _, name := range activity_status.AllNames() {
		statuses = append(statuses, activity_status.ActivityStatus{Name: name})
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&statuses).Error
	if err != nil {
		return err
	}

	log.Printf("✅ Activity status catalog seeded (%d statuses)", len(statuses))
	return nil
}
