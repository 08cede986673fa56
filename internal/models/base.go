package models

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// BaseModel contains common columns for all tables
type BaseModel struct {
	ID        uint `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver string
	DSN    string
	Debug  bool
}

// Dialector picks the gorm driver for the configured database.
func Dialector(config DatabaseConfig) (gorm.Dialector, error) {
	switch config.Driver {
	case "", "mysql":
		return mysql.Open(config.DSN), nil
	case "postgres":
		return postgres.Open(config.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}
}

// GormConfig is shared by the server and the tests so both see
// translated constraint errors.
func GormConfig(debug bool) *gorm.Config {
	level := logger.Silent
	if debug {
		level = logger.Info
	}
	return &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(level),
	}
}

// InitDB opens the database connection.
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	dialector, err := Dialector(config)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, GormConfig(config.Debug))
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", config.Driver, err)
	}
	return db, nil
}

// Migrate creates or updates the tables for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Practitioner{}, &Patient{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
