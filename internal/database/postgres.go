package database

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/theroslabs/vitals-tracker/internal/config"
	"github.com/theroslabs/vitals-tracker/internal/database/migrations"
	"github.com/theroslabs/vitals-tracker/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Measurement is the persisted vitals row. The table is append-only:
// rows are never updated or deleted, so there is no UpdatedAt or soft
// delete column. Nil numeric fields persist as NULL.
type Measurement struct {
	ID              uint      `gorm:"primaryKey"`
	MeasuredAt      time.Time `gorm:"not null;index"`
	RestingHR       *int
	HRV             *float64
	RespiratoryRate *float64
	BodyTemp        *float64
	SpO2            *float64
	Notes           string
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Locate the SQL migrations shipped next to this file.
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("failed to get current file path")
	}
	migrationsDir := filepath.Join(filepath.Dir(filename), "migrations")

	if err := migrations.LoadSQLMigrations(db, migrationsDir); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	if err := db.AutoMigrate(&Measurement{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database connection established and migrations completed")
	return db, nil
}
