package report

import (
	"activity-tracker/logger"
	"activity-tracker/services/clock"
	reportService "activity-tracker/services/report"
	"activity-tracker/types"
	"activity-tracker/types/apperrors"
	"activity-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReportController handles report HTTP requests
type ReportController struct {
	DB       *gorm.DB
	Logger   *logger.AsyncLogger
	Reporter *reportService.Reporter
}

// NewReportController creates a new report controller
func NewReportController(db *gorm.DB, asyncLogger *logger.AsyncLogger, clk clock.Clock) *ReportController {
	return &ReportController{
		DB:       db,
		Logger:   asyncLogger,
		Reporter: reportService.New(db, clk),
	}
}

// Generate builds one report over an explicit date range. start_date,
// end_date and report_type are required; activity, user and status
// filters are optional.
func (rc *ReportController) Generate(c *fiber.Ctx) error {
	filter, err := utils.ParseUpdateFilter(c)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	if filter.StartDate == nil || filter.EndDate == nil {
		ve := &apperrors.ValidationError{}
		if filter.StartDate == nil {
			ve.Add("start_date", "start_date is required")
		}
		if filter.EndDate == nil {
			ve.Add("end_date", "end_date is required")
		}
		return utils.ErrorResponse(c, ve)
	}

	activityID, err := utils.ParseUintQuery(c, "activity_id")
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	filter.ActivityID = activityID

	reportType := reportService.ReportType(c.Query("report_type"))

	data, err := rc.Reporter.Generate(filter, reportType)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Report generated successfully",
		Data: fiber.Map{
			"report_type": reportType,
			"filters": fiber.Map{
				"start_date":  c.Query("start_date"),
				"end_date":    c.Query("end_date"),
				"activity_id": c.Query("activity_id"),
				"user_id":     c.Query("user_id"),
				"status_id":   c.Query("status_id"),
			},
			"report": data,
		},
	})
}
