package domain

import "time"

// User represents a user in the system
type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Name         string `gorm:"size:255;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	Password     string `gorm:"-"` // input only, not stored in db
	PasswordHash string `gorm:"not null"`
	TokenVersion uint64 `gorm:"not null;default:0"`
	IsActive     bool   `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Signatures   []SignatureDocument `gorm:"constraint:OnDelete:CASCADE"`
}

// SafeUser represents a user without sensitive information
type SafeUser struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// ToSafeUser converts a User to a SafeUser
func (u *User) ToSafeUser() SafeUser {
	return SafeUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		IsActive:  u.IsActive,
	}
}
