package db

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the diagnostics database (submission log and analytics events)
var DB *gorm.DB

// Initialize sets up the database connection with WAL mode for concurrency
func Initialize(dbPath string, environment string) error {
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	conn, err := open(dbPath+"?_journal_mode=WAL", logLevel)
	if err != nil {
		return err
	}
	DB = conn

	log.Println("Database connection established (WAL mode enabled)")
	return nil
}

// OpenMemory opens an isolated in-memory database. Each call gets its own
// shared-cache name so goroutines writing asynchronously see the same data.
func OpenMemory() (*gorm.DB, error) {
	name := "mem_" + uuid.New().String()
	return open("file:"+name+"?mode=memory&cache=shared&_busy_timeout=5000", logger.Silent)
}

func open(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
