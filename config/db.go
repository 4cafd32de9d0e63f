package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/gtwndtl/travelbook-backend/entity"
)

// newGormLogger keeps gorm quiet: warnings only, record-not-found suppressed
// (not-found is an expected outcome for most lookups here).
func newGormLogger() gormLogger.Interface {
	return gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// ConnectDB opens the configured database: PostgreSQL when DATABASE_URL is
// set, a local sqlite file otherwise.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	lg := newGormLogger()

	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{Logger: lg})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return db, nil
	}

	db, err := gorm.Open(sqlite.Open(cfg.SQLitePath+"?cache=shared"), &gorm.Config{Logger: lg})
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	return db, nil
}

// SetupDatabase migrates every table the API serves.
func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Location{},
		&entity.Place{},
		&entity.Trip{},
		&entity.Booking{},
		&entity.Review{},
		&entity.PrivacyPolicy{},
		&entity.TermsOfService{},
	)
}

// CloseDB releases the underlying connection pool.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
