package query

import (
	"strings"
	"time"

	"activity-tracker/services/clock"
	"activity-tracker/types/apperrors"

	"gorm.io/gorm"
)

// UpdateFilter is the bag of optional predicates over activity_updates.
// Every present field narrows the result with AND semantics. When no
// date field is set the window defaults to the clock's current calendar
// day; a start/end pair wins over Date when both are supplied.
type UpdateFilter struct {
	Date       *time.Time
	StartDate  *time.Time
	EndDate    *time.Time
	UserID     *uint
	StatusID   *uint
	ActivityID *uint
}

func (f UpdateFilter) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return apperrors.NewValidation("start_date", "start_date must not be after end_date")
	}
	return nil
}

// Window resolves the effective created_at bounds, inclusive.
func (f UpdateFilter) Window(clk clock.Clock) (time.Time, time.Time) {
	if f.StartDate != nil && f.EndDate != nil {
		start, _ := clock.DayBounds(*f.StartDate)
		_, end := clock.DayBounds(*f.EndDate)
		return start, end
	}
	if f.Date != nil {
		return clock.DayBounds(*f.Date)
	}
	return clock.TodayBounds(clk)
}

// Scope folds the present predicates into a single gorm scope.
func (f UpdateFilter) Scope(clk clock.Clock) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		start, end := f.Window(clk)
		db = db.Where("activity_updates.created_at BETWEEN ? AND ?", start, end)
		if f.UserID != nil {
			db = db.Where("activity_updates.user_id = ?", *f.UserID)
		}
		if f.StatusID != nil {
			db = db.Where("activity_updates.status_id = ?", *f.StatusID)
		}
		if f.ActivityID != nil {
			db = db.Where("activity_updates.activity_id = ?", *f.ActivityID)
		}
		return db
	}
}

// ActivityFilter narrows the activity listing. Search matches title,
// description or the creator's display name, case-insensitively.
type ActivityFilter struct {
	Search          string
	IncludeInactive bool
}

// Scope folds the activity predicates into a single gorm scope.
func (f ActivityFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !f.IncludeInactive {
			db = db.Where("activities.is_active = ?", true)
		}
		if f.Search != "" {
			pattern := "%" + strings.ToLower(f.Search) + "%"
			db = db.Joins("LEFT JOIN users ON users.id = activities.created_by").
				Where(
					"LOWER(activities.title) LIKE ? OR LOWER(COALESCE(activities.description, '')) LIKE ? OR LOWER(users.name) LIKE ?",
					pattern, pattern, pattern,
				)
		}
		return db
	}
}

// Pagination is 1-indexed. Callers pick the per-page size; the activity
// index uses 4, detail views 20 and update feeds 10.
type Pagination struct {
	Page    int
	PerPage int
}

const (
	DefaultPerPage        = 10
	PerPageActivityIndex  = 4
	PerPageActivityDetail = 20
)

func (p Pagination) Validate() error {
	ve := &apperrors.ValidationError{}
	if p.Page <= 0 {
		ve.Add("page", "page must be positive")
	}
	if p.PerPage <= 0 {
		ve.Add("per_page", "per_page must be positive")
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}
