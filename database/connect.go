package database

import (
	"fmt"
	"log"

	"bipang_apung/config"
	"bipang_apung/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens postgres, migrates the schema and seeds the admin
// credential. The returned handle is passed down explicitly; there is no
// package-level DB.
func Connect() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.ConfigOr("DB_HOST", "localhost"),
		config.ConfigOr("DB_PORT", "5432"),
		config.Config("DB_USER"),
		config.Config("DB_PASSWORD"),
		config.Config("DB_NAME"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Println("Connection Opened to Database")

	if err := db.AutoMigrate(
		&model.Order{},
		&model.OrderItem{},
		&model.AdminAccount{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Println("Database Migrated")

	if err := SeedAdmin(db); err != nil {
		return nil, err
	}
	return db, nil
}
