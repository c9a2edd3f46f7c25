package domain

import (
	"encoding/json"
	"time"
)

// SignatureDocument is a saved signature owned by one user. Data holds the
// persisted editor snapshot ({rows, globalStyles, selection}).
type SignatureDocument struct {
	ID          uint64          `gorm:"primaryKey" json:"id"`
	UserID      uint64          `gorm:"not null;uniqueIndex:idx_signature_owner_name" json:"user_id"`
	Name        string          `gorm:"size:255;not null;uniqueIndex:idx_signature_owner_name" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Data        json.RawMessage `gorm:"type:jsonb" json:"data,omitempty"`
	IsFavorite  bool            `gorm:"not null;default:false" json:"is_favorite"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
