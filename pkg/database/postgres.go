package database

import (
	"fmt"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDatabase(databaseURL string, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Vendor{},
		&models.TravelPackage{},
		&models.ItineraryDay{},
		&models.PackageImage{},
		&models.Booking{},
		&models.Review{},
	)
}

// HealthCheck runs a trivial query against the pool.
func HealthCheck(db *gorm.DB) error {
	return db.Exec("SELECT 1").Error
}
