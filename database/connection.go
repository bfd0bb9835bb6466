package database

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/serigraph/quotebot/internal/config"
	"github.com/serigraph/quotebot/internal/models"
)

// For Cloud Run with Cloud SQL
const socketDir = "/cloudsql"

// DSN builds the Postgres connection string. Cloud SQL instances are reached
// over the unix socket, everything else over TCP.
func DSN(cfg config.DatabaseConfig) string {
	if cfg.InstanceConnectionName != "" {
		return fmt.Sprintf("host=%s/%s user=%s password=%s dbname=%s sslmode=disable",
			socketDir, cfg.InstanceConnectionName, cfg.User, cfg.Password, cfg.Name)
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
}

// Connect opens the Postgres connection.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.InstanceConnectionName != "" {
		slog.Info("connecting to Cloud SQL via socket", slog.String("instance", cfg.InstanceConnectionName))
	} else {
		slog.Info("connecting to PostgreSQL", slog.String("host", cfg.Host), slog.Int("port", cfg.Port))
	}

	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	slog.Info("✅ Database connected successfully!")
	return db, nil
}

// Migrate creates or updates the catalog and quote ledger tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Dimension{},
		&models.Material{},
		&models.ChargeDefinition{},
		&models.QuoteRecord{},
	); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
