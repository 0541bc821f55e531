package ledger

import (
	"errors"

	activityModel "activity-tracker/models/activity"
	statusModel "activity-tracker/models/activity_status"
	updateModel "activity-tracker/models/activity_update"
	"activity-tracker/services/clock"
	"activity-tracker/types/apperrors"

	"gorm.io/gorm"
)

// TodaySummary is the daily-dashboard read model for one activity: the
// latest update of the current calendar day, or the "pending, nothing
// yet today" sentinel when the day has no entries.
type TodaySummary struct {
	ActivityID  uint                        `json:"activity_id"`
	StatusName  string                      `json:"status_name"`
	StatusLabel string                      `json:"status_label"`
	Update      *updateModel.ActivityUpdate `json:"update,omitempty"`
}

// TodayUpdateSummary returns the most recent update created during the
// clock's current calendar day. The day runs from local midnight to
// the next local midnight, not a rolling 24h window.
func (l *Ledger) TodayUpdateSummary(activityID uint) (*TodaySummary, error) {
	var act activityModel.Activity
	if err := l.DB.First(&act, activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Storage("find activity", err)
	}

	start, end := clock.TodayBounds(l.Clock)

	var upd updateModel.ActivityUpdate
	err := l.DB.Where("activity_id = ? AND created_at BETWEEN ? AND ?", activityID, start, end).
		Order("created_at DESC, id DESC").
		Preload("User").
		Preload("Status").
		First(&upd).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			pending := statusModel.ActivityStatus{Name: statusModel.DefaultName}
			return &TodaySummary{
				ActivityID:  activityID,
				StatusName:  pending.Name,
				StatusLabel: pending.Label(),
			}, nil
		}
		return nil, apperrors.Storage("find today's update", err)
	}

	return &TodaySummary{
		ActivityID:  activityID,
		StatusName:  upd.Status.Name,
		StatusLabel: upd.Status.Label(),
		Update:      &upd,
	}, nil
}
