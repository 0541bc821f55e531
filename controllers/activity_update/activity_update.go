package activity_update

import (
	"errors"
	"fmt"

	"activity-tracker/logger"
	activityModel "activity-tracker/models/activity"
	statusModel "activity-tracker/models/activity_status"
	updateModel "activity-tracker/models/activity_update"
	userModel "activity-tracker/models/user"
	"activity-tracker/services/clock"
	"activity-tracker/services/ledger"
	"activity-tracker/services/query"
	"activity-tracker/types"
	updateTypes "activity-tracker/types/activity_update"
	"activity-tracker/types/apperrors"
	"activity-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UpdateController handles update-ledger HTTP requests
type UpdateController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
	Engine *query.Engine
	Ledger *ledger.Ledger
}

// NewUpdateController creates a new update controller
func NewUpdateController(db *gorm.DB, asyncLogger *logger.AsyncLogger, clk clock.Clock) *UpdateController {
	return &UpdateController{
		DB:     db,
		Logger: asyncLogger,
		Engine: query.NewEngine(db, clk),
		Ledger: ledger.New(db, clk),
	}
}

// Store appends a status update to the activity's ledger
func (uc *UpdateController) Store(c *fiber.Ctx) error {
	activityID, err := parseActivityIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	var req updateTypes.RecordUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return utils.ErrorResponse(c, err)
	}

	userInfo, err := utils.CurrentUser(c, uc.DB)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
		})
	}

	var remark *string
	if req.Remark != "" {
		remark = &req.Remark
	}

	upd, err := uc.Ledger.RecordUpdate(activityID, userInfo.ID, req.StatusID, remark)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	logger.Success(fmt.Sprintf("Update recorded for activity %d with ID: %d", activityID, upd.ID))

	// Load the complete update data with relationships
	var created updateModel.ActivityUpdate
	err = uc.DB.Preload("User").Preload("Status").Preload("Activity").First(&created, upd.ID).Error
	if err != nil {
		logger.Error("Failed to load created update data", err)
		return utils.ErrorResponse(c, apperrors.Storage("load update", err))
	}

	utils.LogRequest(uc.Logger, c, fiber.StatusCreated, &userInfo.ID)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Status updated successfully",
		Data:    created,
	})
}

// UpdatesJSON returns a filtered page of one activity's updates plus
// the user and status directories for the filter dropdowns.
func (uc *UpdateController) UpdatesJSON(c *fiber.Ctx) error {
	activityID, err := parseActivityIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	var act activityModel.Activity
	if err := uc.DB.First(&act, activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, apperrors.ErrNotFound)
		}
		return utils.ErrorResponse(c, apperrors.Storage("find activity", err))
	}

	filter, err := utils.ParseUpdateFilter(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	filter.ActivityID = &act.ID

	pagination, err := utils.ParsePagination(c, query.DefaultPerPage)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	updates, err := uc.Engine.Updates(filter, pagination, false)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	users, statuses, err := uc.directories()
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Updates retrieved successfully",
		Data: fiber.Map{
			"activity_id": act.ID,
			"updates":     updates,
			"users":       users,
			"statuses":    statuses,
		},
	})
}

// TodaysUpdates returns the cross-activity update feed, defaulting to
// the current calendar day.
func (uc *UpdateController) TodaysUpdates(c *fiber.Ctx) error {
	filter, err := utils.ParseUpdateFilter(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	pagination, err := utils.ParsePagination(c, query.DefaultPerPage)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	updates, err := uc.Engine.Updates(filter, pagination, false)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	users, statuses, err := uc.directories()
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Updates retrieved successfully",
		Data: fiber.Map{
			"updates":  updates,
			"users":    users,
			"statuses": statuses,
			"filters": fiber.Map{
				"user_id":    c.Query("user_id"),
				"status_id":  c.Query("status_id"),
				"start_date": c.Query("start_date"),
				"end_date":   c.Query("end_date"),
			},
		},
	})
}

func (uc *UpdateController) directories() ([]userModel.User, []statusModel.ActivityStatus, error) {
	var users []userModel.User
	err := uc.DB.Select("id", "name", "email").Order("name").Find(&users).Error
	if err != nil {
		return nil, nil, apperrors.Storage("list users", err)
	}

	var statuses []statusModel.ActivityStatus
	if err := uc.DB.Order("id").Find(&statuses).Error; err != nil {
		return nil, nil, apperrors.Storage("list statuses", err)
	}
	return users, statuses, nil
}

func parseActivityIDParam(c *fiber.Ctx) (uint, error) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil || id == 0 {
		return 0, apperrors.NewValidation("id", "id must be a positive integer")
	}
	return id, nil
}
