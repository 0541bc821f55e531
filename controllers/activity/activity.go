package activity

import (
	"errors"
	"fmt"
	"strconv"

	"activity-tracker/logger"
	activityModel "activity-tracker/models/activity"
	statusModel "activity-tracker/models/activity_status"
	updateModel "activity-tracker/models/activity_update"
	"activity-tracker/services/clock"
	"activity-tracker/services/ledger"
	"activity-tracker/services/query"
	"activity-tracker/types"
	activityTypes "activity-tracker/types/activity"
	"activity-tracker/types/apperrors"
	"activity-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ActivityController handles activity-directory HTTP requests
type ActivityController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
	Engine *query.Engine
	Ledger *ledger.Ledger
}

// NewActivityController creates a new activity controller
func NewActivityController(db *gorm.DB, asyncLogger *logger.AsyncLogger, clk clock.Clock) *ActivityController {
	return &ActivityController{
		DB:     db,
		Logger: asyncLogger,
		Engine: query.NewEngine(db, clk),
		Ledger: ledger.New(db, clk),
	}
}

// ActivityListItem is an activity enriched with its most recent ledger
// entry for list previews.
type ActivityListItem struct {
	activityModel.Activity
	LatestUpdate *updateModel.ActivityUpdate `json:"latest_update,omitempty"`
}

// Index lists active activities, newest first, with optional search
// over title, description and creator name.
func (ac *ActivityController) Index(c *fiber.Ctx) error {
	pagination, err := utils.ParsePagination(c, query.PerPageActivityIndex)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	filter := query.ActivityFilter{Search: c.Query("search")}
	page, err := ac.Engine.Activities(filter, pagination)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	items := make([]ActivityListItem, 0, len(page.Items))
	for _, act := range page.Items {
		latest, err := ac.Ledger.LatestUpdate(act.ID)
		if err != nil {
			return utils.ErrorResponse(c, err)
		}
		items = append(items, ActivityListItem{Activity: act, LatestUpdate: latest})
	}

	var statuses []statusModel.ActivityStatus
	if err := ac.DB.Order("id").Find(&statuses).Error; err != nil {
		return utils.ErrorResponse(c, apperrors.Storage("list statuses", err))
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Activities retrieved successfully",
		Data: fiber.Map{
			"activities": types.NewPage(items, page.CurrentPage, page.PerPage, page.Total),
			"statuses":   statuses,
		},
	})
}

// Store creates a new activity
func (ac *ActivityController) Store(c *fiber.Ctx) error {
	var req activityTypes.ActivityCreateRequest
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

	userInfo, err := utils.CurrentUser(c, ac.DB)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
		})
	}

	if err := ac.statusExists(req.StatusID); err != nil {
		return utils.ErrorResponse(c, err)
	}

	act := activityModel.Activity{
		Title:       req.Title,
		Description: optionalText(req.Description),
		StatusID:    req.StatusID,
		IsActive:    true,
		CreatedBy:   userInfo.ID,
	}

	// Use DB.Transaction for automatic rollback on error
	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&act).Error
	})
	if err != nil {
		logger.Error("Failed to create activity", err)
		return utils.ErrorResponse(c, apperrors.Storage("create activity", err))
	}

	logger.Success(fmt.Sprintf("Activity created successfully with ID: %d", act.ID))

	// Load the complete activity data with relationships
	var created activityModel.Activity
	if err := ac.DB.Preload("Creator").Preload("Status").First(&created, act.ID).Error; err != nil {
		logger.Error("Failed to load created activity data", err)
		return utils.ErrorResponse(c, apperrors.Storage("load activity", err))
	}

	utils.LogRequest(ac.Logger, c, fiber.StatusCreated, &userInfo.ID)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Activity created successfully",
		Data:    created,
	})
}

// Show returns one activity with a page of its update history
// (default 20 per page, today's entries unless a date filter says
// otherwise).
func (ac *ActivityController) Show(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	var act activityModel.Activity
	if err := ac.DB.Preload("Creator").Preload("Status").First(&act, id).Error; err != nil {
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

	pagination, err := utils.ParsePagination(c, query.PerPageActivityDetail)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	updates, err := ac.Engine.Updates(filter, pagination, false)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Activity retrieved successfully",
		Data: fiber.Map{
			"activity": act,
			"updates":  updates,
		},
	})
}

// Update replaces the activity's editable fields
func (ac *ActivityController) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	var req activityTypes.ActivityUpdateRequest
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

	var act activityModel.Activity
	if err := ac.DB.First(&act, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, apperrors.ErrNotFound)
		}
		return utils.ErrorResponse(c, apperrors.Storage("find activity", err))
	}

	if err := ac.statusExists(req.StatusID); err != nil {
		return utils.ErrorResponse(c, err)
	}

	act.Title = req.Title
	act.Description = optionalText(req.Description)
	act.StatusID = req.StatusID
	if req.IsActive != nil {
		act.IsActive = *req.IsActive
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&act).Error
	})
	if err != nil {
		logger.Error("Failed to update activity", err)
		return utils.ErrorResponse(c, apperrors.Storage("update activity", err))
	}

	var updated activityModel.Activity
	if err := ac.DB.Preload("Creator").Preload("Status").First(&updated, act.ID).Error; err != nil {
		return utils.ErrorResponse(c, apperrors.Storage("load activity", err))
	}

	if userInfo, err := utils.CurrentUser(c, ac.DB); err == nil {
		utils.LogRequest(ac.Logger, c, fiber.StatusOK, &userInfo.ID)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Activity updated successfully",
		Data:    updated,
	})
}

// Destroy hard-deletes an activity together with its ledger entries.
// The updates go first so referential integrity holds even where the
// cascade constraint is missing.
func (ac *ActivityController) Destroy(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	var act activityModel.Activity
	if err := ac.DB.First(&act, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, apperrors.ErrNotFound)
		}
		return utils.ErrorResponse(c, apperrors.Storage("find activity", err))
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activity_id = ?", act.ID).Delete(&updateModel.ActivityUpdate{}).Error; err != nil {
			return err
		}
		return tx.Delete(&act).Error
	})
	if err != nil {
		logger.Error("Failed to delete activity", err)
		return utils.ErrorResponse(c, apperrors.Storage("delete activity", err))
	}

	logger.Success(fmt.Sprintf("Activity %d deleted", act.ID))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Activity deleted successfully",
	})
}

// TodaySummary returns the activity's latest update of the current
// calendar day, or the pending default when nothing happened yet.
func (ac *ActivityController) TodaySummary(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	summary, err := ac.Ledger.TodayUpdateSummary(id)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Today's summary retrieved successfully",
		Data:    summary,
	})
}

func (ac *ActivityController) statusExists(statusID uint) error {
	var status statusModel.ActivityStatus
	if err := ac.DB.First(&status, statusID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewValidation("status_id", "unknown status id")
		}
		return apperrors.Storage("find status", err)
	}
	return nil
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, apperrors.NewValidation("id", "id must be a positive integer")
	}
	return uint(parsed), nil
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
