package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"smarthr_backend/internal/config"
	"smarthr_backend/internal/models"
)

// Connect opens a GORM connection using the configured DSN.
func Connect() (*gorm.DB, error) {
	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates the schema for every model. Safe to
// run on every startup.
func AutoMigrate(db *gorm.DB) error {
	// BaseModel IDs default to uuid_generate_v4()
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.PhoneVerification{},

		&models.Profile{},
		&models.CV{},
		&models.Certificate{},

		&models.Job{},
		&models.JobView{},

		&models.Application{},
		&models.ApplicationNote{},
		&models.ApplicationStatusHistory{},

		&models.Interview{},
		&models.InterviewQuestion{},
		&models.InterviewFeedback{},

		&models.RegionStatistics{},
		&models.IndustryStatistics{},
		&models.SkillDemand{},
		&models.Forecast{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
