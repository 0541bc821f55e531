package report

import (
	activityModel "activity-tracker/models/activity"
	statusModel "activity-tracker/models/activity_status"
	updateModel "activity-tracker/models/activity_update"
	userModel "activity-tracker/models/user"
	"activity-tracker/services/query"
	"activity-tracker/types/apperrors"
)

// ReportType selects how Generate groups the filtered update set.
type ReportType string

const (
	ReportActivityHistory ReportType = "activity_history"
	ReportUserActivity    ReportType = "user_activity"
	ReportSummary         ReportType = "summary"
)

func (t ReportType) IsValid() bool {
	switch t {
	case ReportActivityHistory, ReportUserActivity, ReportSummary:
		return true
	default:
		return false
	}
}

// ActivityHistoryEntry groups a report's updates under one activity.
type ActivityHistoryEntry struct {
	Activity     activityModel.Activity       `json:"activity"`
	Updates      []updateModel.ActivityUpdate `json:"updates"`
	DoneCount    int64                        `json:"done_count"`
	PendingCount int64                        `json:"pending_count"`
}

// UserActivityEntry groups a report's updates under one author.
type UserActivityEntry struct {
	User         userModel.User               `json:"user"`
	Updates      []updateModel.ActivityUpdate `json:"updates"`
	TotalUpdates int64                        `json:"total_updates"`
	DoneCount    int64                        `json:"done_count"`
	PendingCount int64                        `json:"pending_count"`
}

// SummaryReport is the roll-up over the whole filtered window.
type SummaryReport struct {
	TotalUpdates      int64        `json:"total_updates"`
	DoneCount         int64        `json:"done_count"`
	PendingCount      int64        `json:"pending_count"`
	ActivitiesUpdated int64        `json:"activities_updated"`
	UsersActive       int64        `json:"users_active"`
	DailyBreakdown    []DailyEntry `json:"daily_breakdown"`
}

// Generate computes one report over the filtered update set. Grouped
// entries keep first-seen order, which is chronological since the
// underlying rows come back created_at ASC.
func (r *Reporter) Generate(f query.UpdateFilter, reportType ReportType) (interface{}, error) {
	if !reportType.IsValid() {
		return nil, apperrors.NewValidation("report_type", "report_type must be one of activity_history, user_activity, summary")
	}

	updates, err := r.Engine.UpdateRows(f)
	if err != nil {
		return nil, err
	}
	ids, err := r.statusIDsByName()
	if err != nil {
		return nil, err
	}

	switch reportType {
	case ReportActivityHistory:
		return buildActivityHistory(updates, ids), nil
	case ReportUserActivity:
		return buildUserActivity(updates, ids), nil
	default:
		return buildSummary(updates, ids), nil
	}
}

func buildActivityHistory(updates []updateModel.ActivityUpdate, ids map[string]uint) []ActivityHistoryEntry {
	byActivity := make(map[uint]*ActivityHistoryEntry)
	var order []uint
	for _, upd := range updates {
		entry, ok := byActivity[upd.ActivityID]
		if !ok {
			entry = &ActivityHistoryEntry{Activity: upd.Activity}
			byActivity[upd.ActivityID] = entry
			order = append(order, upd.ActivityID)
		}
		entry.Updates = append(entry.Updates, upd)
		switch upd.StatusID {
		case ids[statusModel.StatusDone]:
			entry.DoneCount++
		case ids[statusModel.StatusPending]:
			entry.PendingCount++
		}
	}

	entries := make([]ActivityHistoryEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, *byActivity[id])
	}
	return entries
}

func buildUserActivity(updates []updateModel.ActivityUpdate, ids map[string]uint) []UserActivityEntry {
	byUser := make(map[uint]*UserActivityEntry)
	var order []uint
	for _, upd := range updates {
		entry, ok := byUser[upd.UserID]
		if !ok {
			entry = &UserActivityEntry{User: upd.User}
			byUser[upd.UserID] = entry
			order = append(order, upd.UserID)
		}
		entry.Updates = append(entry.Updates, upd)
		entry.TotalUpdates++
		switch upd.StatusID {
		case ids[statusModel.StatusDone]:
			entry.DoneCount++
		case ids[statusModel.StatusPending]:
			entry.PendingCount++
		}
	}

	entries := make([]UserActivityEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, *byUser[id])
	}
	return entries
}

func buildSummary(updates []updateModel.ActivityUpdate, ids map[string]uint) SummaryReport {
	summary := SummaryReport{
		TotalUpdates:   int64(len(updates)),
		DailyBreakdown: buildDailyBreakdown(updates, ids),
	}

	activities := make(map[uint]struct{})
	users := make(map[uint]struct{})
	for _, upd := range updates {
		activities[upd.ActivityID] = struct{}{}
		users[upd.UserID] = struct{}{}
		switch upd.StatusID {
		case ids[statusModel.StatusDone]:
			summary.DoneCount++
		case ids[statusModel.StatusPending]:
			summary.PendingCount++
		}
	}
	summary.ActivitiesUpdated = int64(len(activities))
	summary.UsersActive = int64(len(users))
	return summary
}
