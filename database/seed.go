package database

import (
	"errors"
	"fmt"
	"log"

	"bipang_apung/config"
	"bipang_apung/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the single admin credential row on first boot. The
// password comes from ADMIN_PASSWORD; an existing hash is never overwritten
// (rotate by updating the row directly).
func SeedAdmin(db *gorm.DB) error {
	var admin model.AdminAccount
	err := db.First(&admin, "name = ?", "login").Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := config.Config("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, admin login disabled until seeded")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if err := db.Create(&model.AdminAccount{Name: "login", PasswordHash: string(hash)}).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Println("Admin credential seeded")
	return nil
}
