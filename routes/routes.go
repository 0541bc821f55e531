package routes

import (
	activityController "activity-tracker/controllers/activity"
	updateController "activity-tracker/controllers/activity_update"
	"activity-tracker/controllers/dashboard"
	"activity-tracker/controllers/report"
	"activity-tracker/logger"
	"activity-tracker/middleware"
	"activity-tracker/services/clock"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	clk := clock.System{}
	asyncLogger := logger.NewAsyncLogger(db)
	activities := activityController.NewActivityController(db, asyncLogger, clk)
	updates := updateController.NewUpdateController(db, asyncLogger, clk)
	dashboardController := dashboard.NewDashboardController(db, asyncLogger, clk)
	reportController := report.NewReportController(db, asyncLogger, clk)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Health check route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	api := app.Group("/api").Use(middleware.RequireAuthentication())

	/*=============================================================================
	| Activity Routes
	===============================================================================*/
	activityGroup := api.Group("/activities")
	activityGroup.Get("/", activities.Index)
	activityGroup.Post("/", activities.Store)
	activityGroup.Get("/:id", activities.Show)
	activityGroup.Put("/:id", activities.Update)
	activityGroup.Delete("/:id", activities.Destroy)
	activityGroup.Get("/:id/summary/today", activities.TodaySummary)

	/*=============================================================================
	| Update Ledger Routes
	===============================================================================*/
	activityGroup.Post("/:id/updates", updates.Store)
	activityGroup.Get("/:id/updates", updates.UpdatesJSON)
	api.Get("/updates/today", updates.TodaysUpdates)

	/*=============================================================================
	| Dashboard & Report Routes
	===============================================================================*/
	api.Get("/dashboard/stats", dashboardController.Stats)
	api.Get("/reports/generate", reportController.Generate)
}
