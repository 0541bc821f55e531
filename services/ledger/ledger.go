package ledger

import (
	"errors"

	activityModel "activity-tracker/models/activity"
	statusModel "activity-tracker/models/activity_status"
	updateModel "activity-tracker/models/activity_update"
	"activity-tracker/services/clock"
	updateTypes "activity-tracker/types/activity_update"
	"activity-tracker/types/apperrors"

	"gorm.io/gorm"
)

// Ledger owns the append-only activity_updates log and keeps the
// parent activity's denormalized status pointer consistent with it.
// The pointer is a cache; the log's latest row stays authoritative and
// ReconcileCurrentStatus can rebuild the pointer from it.
type Ledger struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func New(db *gorm.DB, clk clock.Clock) *Ledger {
	return &Ledger{DB: db, Clock: clk}
}

// RecordUpdate appends one ledger entry and moves the activity's
// current-status pointer, atomically. Any user may update any
// activity; userID comes from the authenticated session and is not
// checked against ownership.
func (l *Ledger) RecordUpdate(activityID, userID, statusID uint, remark *string) (*updateModel.ActivityUpdate, error) {
	if remark != nil && len(*remark) > updateTypes.MaxRemarkLength {
		return nil, apperrors.NewValidation("remark", "remark must not exceed 10000 characters")
	}

	var act activityModel.Activity
	if err := l.DB.First(&act, activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Storage("find activity", err)
	}

	var status statusModel.ActivityStatus
	if err := l.DB.First(&status, statusID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewValidation("status_id", "unknown status id")
		}
		return nil, apperrors.Storage("find status", err)
	}

	now := l.Clock.Now()
	upd := updateModel.ActivityUpdate{
		ActivityID: activityID,
		UserID:     userID,
		StatusID:   statusID,
		Remark:     remark,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Insert and pointer write are all-or-nothing.
	err := l.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&upd).Error; err != nil {
			return err
		}
		return tx.Model(&activityModel.Activity{}).
			Where("id = ?", activityID).
			Updates(map[string]interface{}{
				"status_id":  statusID,
				"updated_at": now,
			}).Error
	})
	if err != nil {
		return nil, apperrors.Storage("record update", err)
	}

	return &upd, nil
}

// LatestUpdate returns the most recent ledger entry for the activity,
// or nil when the log is empty. Ties on created_at break by id DESC.
func (l *Ledger) LatestUpdate(activityID uint) (*updateModel.ActivityUpdate, error) {
	var upd updateModel.ActivityUpdate
	err := l.DB.Where("activity_id = ?", activityID).
		Order("created_at DESC, id DESC").
		Preload("User").
		Preload("Status").
		First(&upd).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Storage("find latest update", err)
	}
	return &upd, nil
}

// DeriveCurrentStatusID recomputes the activity's current status from
// the log alone: the latest entry's status, or the seeded default when
// no entry exists.
func (l *Ledger) DeriveCurrentStatusID(activityID uint) (uint, error) {
	latest, err := l.LatestUpdate(activityID)
	if err != nil {
		return 0, err
	}
	if latest != nil {
		return latest.StatusID, nil
	}
	return l.DefaultStatusID()
}

// DefaultStatusID resolves the seeded "pending" status.
func (l *Ledger) DefaultStatusID() (uint, error) {
	var status statusModel.ActivityStatus
	err := l.DB.Where("name = ?", statusModel.DefaultName).First(&status).Error
	if err != nil {
		return 0, apperrors.Storage("find default status", err)
	}
	return status.ID, nil
}

// ReconcileCurrentStatus repairs the denormalized pointer from the
// log. Returns true when the pointer had drifted. Intended for tests
// and migrations over legacy non-transactional writes.
func (l *Ledger) ReconcileCurrentStatus(activityID uint) (bool, error) {
	var act activityModel.Activity
	if err := l.DB.First(&act, activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.ErrNotFound
		}
		return false, apperrors.Storage("find activity", err)
	}

	want, err := l.DeriveCurrentStatusID(activityID)
	if err != nil {
		return false, err
	}
	if act.StatusID == want {
		return false, nil
	}

	err = l.DB.Model(&act).UpdateColumn("status_id", want).Error
	if err != nil {
		return false, apperrors.Storage("reconcile status", err)
	}
	return true, nil
}
