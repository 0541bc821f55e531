package report

import (
	statusModel "activity-tracker/models/activity_status"
	updateModel "activity-tracker/models/activity_update"
	"activity-tracker/services/clock"
	"activity-tracker/services/query"
	"activity-tracker/types/apperrors"

	"gorm.io/gorm"
)

// Reporter computes summaries over filtered update sets. It never
// fails on empty input (zero counts come back); invalid filters fail
// the same way they do in the query engine.
type Reporter struct {
	DB     *gorm.DB
	Clock  clock.Clock
	Engine *query.Engine
}

func New(db *gorm.DB, clk clock.Clock) *Reporter {
	return &Reporter{DB: db, Clock: clk, Engine: query.NewEngine(db, clk)}
}

// CountUpdatesByStatus groups the filtered update set by status id.
func (r *Reporter) CountUpdatesByStatus(f query.UpdateFilter) (map[uint]int64, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	type row struct {
		StatusID uint
		Count    int64
	}
	var rows []row
	err := r.DB.Model(&updateModel.ActivityUpdate{}).
		Scopes(f.Scope(r.Clock)).
		Select("activity_updates.status_id AS status_id, COUNT(*) AS count").
		Group("activity_updates.status_id").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Storage("count updates by status", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.StatusID] = row.Count
	}
	return counts, nil
}

// DailyEntry is one calendar day of the breakdown.
type DailyEntry struct {
	Date    string `json:"date"`
	Total   int64  `json:"total"`
	Done    int64  `json:"done"`
	Pending int64  `json:"pending"`
}

// DailyBreakdown groups the filtered update set by calendar day,
// oldest day first. Done/pending counts resolve through the seeded
// status catalog, not string columns on the rows.
func (r *Reporter) DailyBreakdown(f query.UpdateFilter) ([]DailyEntry, error) {
	updates, err := r.Engine.UpdateRows(f)
	if err != nil {
		return nil, err
	}
	ids, err := r.statusIDsByName()
	if err != nil {
		return nil, err
	}
	return buildDailyBreakdown(updates, ids), nil
}

func buildDailyBreakdown(updates []updateModel.ActivityUpdate, ids map[string]uint) []DailyEntry {
	byDay := make(map[string]*DailyEntry)
	var order []string
	for _, upd := range updates {
		day := clock.DateString(upd.CreatedAt)
		entry, ok := byDay[day]
		if !ok {
			entry = &DailyEntry{Date: day}
			byDay[day] = entry
			order = append(order, day)
		}
		entry.Total++
		switch upd.StatusID {
		case ids[statusModel.StatusDone]:
			entry.Done++
		case ids[statusModel.StatusPending]:
			entry.Pending++
		}
	}

	entries := make([]DailyEntry, 0, len(order))
	for _, day := range order {
		entries = append(entries, *byDay[day])
	}
	return entries
}

func (r *Reporter) statusIDsByName() (map[string]uint, error) {
	var statuses []statusModel.ActivityStatus
	if err := r.DB.Find(&statuses).Error; err != nil {
		return nil, apperrors.Storage("list statuses", err)
	}
	ids := make(map[string]uint, len(statuses))
	for _, s := range statuses {
		ids[s.Name] = s.ID
	}
	return ids, nil
}
