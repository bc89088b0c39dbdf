package database

import (
	"fmt"

	"homepro_backend/internal/config"
	"homepro_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// Connect opens the GORM connection using the configured DSN. TranslateError
// is on so unique index violations surface as gorm.ErrDuplicatedKey, which the
// repositories rely on.
func Connect() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Job{},
		&models.Quote{},
		&models.PaymentProfile{},
		&models.PaymentTransaction{},
		&models.Notification{},
	)
}
