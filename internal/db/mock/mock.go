package mock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"recipebox/internal/db"
	applog "recipebox/internal/log"
)

// New returns an in-memory sqlite database seeded with the demo account and recipe.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := NewEmpty(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := db.Seed(ctx, database); err != nil {
		return nil, fmt.Errorf("seed mock database: %w", err)
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

// NewEmpty returns a migrated in-memory sqlite database without seed data.
// Every call yields an isolated database.
func NewEmpty(ctx context.Context) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:recipebox-%s?mode=memory&cache=shared", uuid.NewString())

	database, err := gorm.Open(sqlite.Open(dsn), db.GormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	// A single connection keeps the in-memory database alive and avoids
	// shared-cache table locks between concurrent requests.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database migrated", "dsn", dsn)
	return database, nil
}
