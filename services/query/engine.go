package query

import (
	activityModel "activity-tracker/models/activity"
	updateModel "activity-tracker/models/activity_update"
	"activity-tracker/services/clock"
	"activity-tracker/types"
	"activity-tracker/types/apperrors"

	"gorm.io/gorm"
)

// Engine turns a bag of optional filters into deterministic, paginated
// result sets. Every read endpoint goes through it.
type Engine struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewEngine(db *gorm.DB, clk clock.Clock) *Engine {
	return &Engine{DB: db, Clock: clk}
}

// Updates returns one page of ledger entries matching the filter.
// Chronological (created_at ASC) by default; newestFirst flips the
// order for index-style feeds. Ties always break by id in the same
// direction so paging is stable.
func (e *Engine) Updates(f UpdateFilter, p Pagination, newestFirst bool) (*types.Page[updateModel.ActivityUpdate], error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var total int64
	err := e.DB.Model(&updateModel.ActivityUpdate{}).
		Scopes(f.Scope(e.Clock)).
		Count(&total).Error
	if err != nil {
		return nil, apperrors.Storage("count updates", err)
	}

	order := "activity_updates.created_at ASC, activity_updates.id ASC"
	if newestFirst {
		order = "activity_updates.created_at DESC, activity_updates.id DESC"
	}

	var items []updateModel.ActivityUpdate
	err = e.DB.Scopes(f.Scope(e.Clock)).
		Preload("User").
		Preload("Status").
		Preload("Activity").
		Preload("Activity.Creator").
		Order(order).
		Limit(p.PerPage).
		Offset(p.Offset()).
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Storage("list updates", err)
	}

	return types.NewPage(items, p.Page, p.PerPage, total), nil
}

// UpdateRows returns every ledger entry matching the filter in
// chronological order, for aggregation passes that need the full set.
func (e *Engine) UpdateRows(f UpdateFilter) ([]updateModel.ActivityUpdate, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var items []updateModel.ActivityUpdate
	err := e.DB.Scopes(f.Scope(e.Clock)).
		Preload("User").
		Preload("Status").
		Preload("Activity").
		Order("activity_updates.created_at ASC, activity_updates.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Storage("list updates", err)
	}
	return items, nil
}

// Activities returns one page of the activity directory, newest first.
func (e *Engine) Activities(f ActivityFilter, p Pagination) (*types.Page[activityModel.Activity], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var total int64
	err := e.DB.Model(&activityModel.Activity{}).
		Scopes(f.Scope()).
		Count(&total).Error
	if err != nil {
		return nil, apperrors.Storage("count activities", err)
	}

	var items []activityModel.Activity
	err = e.DB.Model(&activityModel.Activity{}).
		Scopes(f.Scope()).
		Preload("Creator").
		Preload("Status").
		Order("activities.created_at DESC, activities.id DESC").
		Limit(p.PerPage).
		Offset(p.Offset()).
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Storage("list activities", err)
	}

	return types.NewPage(items, p.Page, p.PerPage, total), nil
}
