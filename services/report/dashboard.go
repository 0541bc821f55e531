package report

import (
	activityModel "activity-tracker/models/activity"
	statusModel "activity-tracker/models/activity_status"
	updateModel "activity-tracker/models/activity_update"
	"activity-tracker/services/clock"
	"activity-tracker/types/apperrors"
)

// recentUpdatesLimit is the length of the dashboard's recent feed.
const recentUpdatesLimit = 8

// StatusInfo is a catalog entry with its display label.
type StatusInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Snapshot is the fixed-shape dashboard read model. It is recomputed
// on every request; data volumes are small enough that materialized
// counters are not worth carrying.
type Snapshot struct {
	TotalActivities int64                        `json:"total_activities"`
	TotalUpdates    int64                        `json:"total_updates"`
	UpdatesToday    int64                        `json:"updates_today"`
	CountsByStatus  map[uint]int64               `json:"counts_by_status"`
	Statuses        []StatusInfo                 `json:"statuses"`
	RecentUpdates   []updateModel.ActivityUpdate `json:"recent_updates"`
}

// DashboardSnapshot computes the dashboard counters and the recent
// feed (last 8 updates, newest first).
func (r *Reporter) DashboardSnapshot() (*Snapshot, error) {
	snap := &Snapshot{}

	err := r.DB.Model(&activityModel.Activity{}).Count(&snap.TotalActivities).Error
	if err != nil {
		return nil, apperrors.Storage("count activities", err)
	}

	err = r.DB.Model(&updateModel.ActivityUpdate{}).Count(&snap.TotalUpdates).Error
	if err != nil {
		return nil, apperrors.Storage("count updates", err)
	}

	start, end := clock.TodayBounds(r.Clock)
	err = r.DB.Model(&updateModel.ActivityUpdate{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&snap.UpdatesToday).Error
	if err != nil {
		return nil, apperrors.Storage("count today's updates", err)
	}

	// Activities grouped by their current status pointer.
	type row struct {
		StatusID uint
		Count    int64
	}
	var rows []row
	err = r.DB.Model(&activityModel.Activity{}).
		Select("status_id AS status_id, COUNT(*) AS count").
		Group("status_id").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Storage("count activities by status", err)
	}
	snap.CountsByStatus = make(map[uint]int64, len(rows))
	for _, row := range rows {
		snap.CountsByStatus[row.StatusID] = row.Count
	}

	var statuses []statusModel.ActivityStatus
	if err := r.DB.Order("id").Find(&statuses).Error; err != nil {
		return nil, apperrors.Storage("list statuses", err)
	}
	snap.Statuses = make([]StatusInfo, 0, len(statuses))
	for _, s := range statuses {
		snap.Statuses = append(snap.Statuses, StatusInfo{ID: s.ID, Name: s.Name, Label: s.Label()})
	}

	err = r.DB.Preload("User").
		Preload("Status").
		Preload("Activity").
		Order("created_at DESC, id DESC").
		Limit(recentUpdatesLimit).
		Find(&snap.RecentUpdates).Error
	if err != nil {
		return nil, apperrors.Storage("list recent updates", err)
	}
	if snap.RecentUpdates == nil {
		snap.RecentUpdates = []updateModel.ActivityUpdate{}
	}

	return snap, nil
}
