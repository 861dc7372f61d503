package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/recipeai/backend/config"
	"github.com/recipeai/backend/internal/model"
)

// New opens a gorm connection to PostgreSQL and migrates the schema
func New(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	log.Printf("Connecting to database at %s:%s as user %s", cfg.DBHost, cfg.DBPort, cfg.DBUser)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Printf("Successfully connected to database")
	return db, nil
}

// Migrate creates or updates the ingredients and recipes tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Ingredient{}, &model.Recipe{}); err != nil {
		return fmt.Errorf("error migrating schema: %w", err)
	}
	return nil
}
