package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries the UUID primary key and timestamps shared by every
// table. Timestamps are serialised in camelCase to match the public API.
type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a fresh UUID unless one was set by the caller.
func (m *BaseModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ValidID reports whether id is a well-formed primary key. Route parameters
// that fail this check can be answered as not found without a query.
func ValidID(id string) bool {
	return uuid.Validate(strings.TrimSpace(id)) == nil
}
