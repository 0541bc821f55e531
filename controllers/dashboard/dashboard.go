package dashboard

import (
	"activity-tracker/logger"
	"activity-tracker/services/clock"
	"activity-tracker/services/report"
	"activity-tracker/types"
	"activity-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DashboardController handles dashboard HTTP requests
type DashboardController struct {
	DB       *gorm.DB
	Logger   *logger.AsyncLogger
	Reporter *report.Reporter
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(db *gorm.DB, asyncLogger *logger.AsyncLogger, clk clock.Clock) *DashboardController {
	return &DashboardController{
		DB:       db,
		Logger:   asyncLogger,
		Reporter: report.New(db, clk),
	}
}

// Stats returns the dashboard snapshot, recomputed on every request.
func (dc *DashboardController) Stats(c *fiber.Ctx) error {
	snapshot, err := dc.Reporter.DashboardSnapshot()
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard stats retrieved successfully",
		Data:    snapshot,
	})
}
