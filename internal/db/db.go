package db

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"api_dealership/internal/apperr"
	"api_dealership/internal/clients"
	"api_dealership/internal/config"
	"api_dealership/internal/inventory"
	"api_dealership/internal/sales"
)

// Open connects to the store selected by DB_DRIVER: "sqlite" (default, file
// from DB_PATH) or "postgres" (DSN assembled from the POSTGRES_* variables).
func Open(logger *zap.Logger) (*gorm.DB, error) {
	driver := config.GetEnv("DB_DRIVER", "sqlite")
	switch driver {
	case "sqlite":
		path := config.GetEnv("DB_PATH", "dealership.db")
		logger.Info("connecting to sqlite", zap.String("path", path))
		gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
		}
		return gdb, nil
	case "postgres":
		host := config.GetEnv("POSTGRES_HOST", "localhost")
		port := config.GetEnv("POSTGRES_PORT", "5432")
		user := config.GetEnv("POSTGRES_USER", "postgres")
		password := config.GetEnv("POSTGRES_PASSWORD", "")
		name := config.GetEnv("POSTGRES_NAME", "dealership")
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		logger.Info("connecting to postgres", zap.String("host", host), zap.String("database", name))
		gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return gdb, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}

// AutoMigrateAll creates or updates the three dealership tables.
func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&inventory.Vehicle{},
		&clients.Client{},
		&sales.Sale{},
	)
}

// Stats is a point-in-time snapshot of store health and size.
type Stats struct {
	Status            string   `json:"status"`
	Database          string   `json:"database"`
	TotalVehicles     int64    `json:"total_vehicles"`
	TotalClients      int64    `json:"total_clients"`
	TotalSales        int64    `json:"total_sales"`
	DatabaseSizeBytes int64    `json:"database_size_bytes"`
	SchemaTables      []string `json:"schema_tables"`
}

// CollectStats counts the rows in each table, lists the schema tables and
// measures the database size (file size for sqlite, pg_database_size for
// postgres).
func CollectStats(ctx context.Context, gdb *gorm.DB) (*Stats, error) {
	stats := &Stats{Status: "operational"}

	if err := gdb.WithContext(ctx).Model(&inventory.Vehicle{}).Count(&stats.TotalVehicles).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to count vehicles", err)
	}
	if err := gdb.WithContext(ctx).Model(&clients.Client{}).Count(&stats.TotalClients).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to count clients", err)
	}
	if err := gdb.WithContext(ctx).Model(&sales.Sale{}).Count(&stats.TotalSales).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to count sales", err)
	}

	tables, err := gdb.Migrator().GetTables()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to list tables", err)
	}
	stats.SchemaTables = tables

	switch gdb.Dialector.Name() {
	case "sqlite":
		stats.Database = "SQLite"
		path := config.GetEnv("DB_PATH", "dealership.db")
		if info, err := os.Stat(path); err == nil {
			stats.DatabaseSizeBytes = info.Size()
		}
	case "postgres":
		stats.Database = "PostgreSQL"
		var size int64
		if err := gdb.WithContext(ctx).Raw("SELECT pg_database_size(current_database())").Scan(&size).Error; err != nil {
			return nil, apperr.Wrap(apperr.KindStorage, "failed to measure database size", err)
		}
		stats.DatabaseSizeBytes = size
	default:
		stats.Database = gdb.Dialector.Name()
	}

	return stats, nil
}
