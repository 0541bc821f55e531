package database

import (
	"fmt"
	"os"

	"activity-tracker/database/seeders"
	"activity-tracker/logger"
	"activity-tracker/models/activity"
	"activity-tracker/models/activity_status"
	"activity-tracker/models/activity_update"
	"activity-tracker/models/log"
	"activity-tracker/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with migration, constraints and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, username, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := Migrate(DB); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Handle foreign key constraints after migrations
	if err := createForeignKeyConstraints(DB); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	// Create indexes for better performance
	if err := createIndexes(DB); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	// Seed the fixed status catalog
	if err := seeders.SeedActivityStatuses(DB); err != nil {
		logger.Error("Failed to seed activity statuses", err)
		return nil, err
	}

	return DB, nil
}

// Migrate runs auto migration for all models in dependency order.
func Migrate(db *gorm.DB) error {
	// Stage 1: reference data and identity, no dependencies
	stage1Models := []interface{}{
		&user.User{},
		&activity_status.ActivityStatus{},
	}

	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: activities depend on users and statuses
	stage2Models := []interface{}{
		&activity.Activity{},
	}

	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: the ledger and remaining models
	remainingModels := []interface{}{
		&activity_update.ActivityUpdate{},
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes(db *gorm.DB) error {
	// Composite index backing the filter engine's range scans
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_activity_updates_activity_user_created ON activity_updates(activity_id, user_id, created_at)").Error; err != nil {
		return fmt.Errorf("failed to create activity_updates composite index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_activity_updates_created_at ON activity_updates(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create activity_updates created_at index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_activity_updates_status_id ON activity_updates(status_id)").Error; err != nil {
		return fmt.Errorf("failed to create activity_updates status_id index: %w", err)
	}

	// Activity indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_activities_is_active ON activities(is_active)").Error; err != nil {
		return fmt.Errorf("failed to create activities is_active index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_activities_created_at ON activities(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create activities created_at index: %w", err)
	}

	// Log indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints(db *gorm.DB) error {
	// Define constraints with their names for checking existence
	constraints := []struct {
		name string
		sql  string
	}{
		{
			// Purging an activity purges its ledger rows
			name: "fk_activity_updates_activity",
			sql: `ALTER TABLE activity_updates ADD CONSTRAINT fk_activity_updates_activity
				  FOREIGN KEY (activity_id) REFERENCES activities(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_activity_updates_status",
			sql: `ALTER TABLE activity_updates ADD CONSTRAINT fk_activity_updates_status
				  FOREIGN KEY (status_id) REFERENCES activity_statuses(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_activity_updates_user",
			sql: `ALTER TABLE activity_updates ADD CONSTRAINT fk_activity_updates_user
				  FOREIGN KEY (user_id) REFERENCES users(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_activities_status",
			sql: `ALTER TABLE activities ADD CONSTRAINT fk_activities_status
				  FOREIGN KEY (status_id) REFERENCES activity_statuses(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
	}

	for _, constraint := range constraints {
		// Check if constraint already exists
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := db.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := db.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
