package activity

import (
	"activity-tracker/types/apperrors"
)

type ActivityCreateRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty"`
	StatusID    uint   `json:"status_id" validate:"required"`
}

// ActivityUpdateRequest is a full replace of the editable fields.
// IsActive stays unchanged when omitted.
type ActivityUpdateRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty"`
	StatusID    uint   `json:"status_id" validate:"required"`
	IsActive    *bool  `json:"is_active" validate:"omitempty"`
}

func (r ActivityCreateRequest) Validate() error {
	return validateActivityFields(r.Title, r.StatusID)
}

func (r ActivityUpdateRequest) Validate() error {
	return validateActivityFields(r.Title, r.StatusID)
}

func validateActivityFields(title string, statusID uint) error {
	ve := &apperrors.ValidationError{}
	if title == "" {
		ve.Add("title", "title is required")
	} else if len(title) > 255 {
		ve.Add("title", "title must not exceed 255 characters")
	}
	if statusID == 0 {
		ve.Add("status_id", "status_id is required")
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}
