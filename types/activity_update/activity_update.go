package activity_update

import (
	"activity-tracker/types/apperrors"
)

// MaxRemarkLength caps free-text remarks to guard storage.
const MaxRemarkLength = 10000

type RecordUpdateRequest struct {
	StatusID uint   `json:"status_id" validate:"required"`
	Remark   string `json:"remark" validate:"omitempty,max=10000"`
}

func (r RecordUpdateRequest) Validate() error {
	ve := &apperrors.ValidationError{}
	if r.StatusID == 0 {
		ve.Add("status_id", "status_id is required")
	}
	if len(r.Remark) > MaxRemarkLength {
		ve.Add("remark", "remark must not exceed 10000 characters")
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}
