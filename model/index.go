package model

import "time"

// AdminAccount holds the single shared admin credential. The dashboard
// authenticates with a password only, compared against PasswordHash.
type AdminAccount struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"unique;size:32" json:"name"` // always "login"
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
