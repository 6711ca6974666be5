package config

import (
	"fmt"
	"log"
	"os"

	"task-management-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB connects to Postgres using environment configuration and migrates
// the schema. TranslateError is enabled so unique-constraint violations
// surface as gorm.ErrDuplicatedKey (the tag get-or-create path relies on it).
func InitDB() *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "taskdb"),
		getEnv("DB_SSL_MODE", "disable"),
	)

	logLevel := logger.Silent
	if getEnv("ENVIRONMENT", "development") == "development" {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := MigrateSchema(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	return db
}

// MigrateSchema registers the explicit join model for task_tags and runs
// auto migration. Shared with the test suites so they build the same schema
// on SQLite.
func MigrateSchema(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Task{}, "Tags", &models.TaskTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(&models.Tag{}, &models.Task{})
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
