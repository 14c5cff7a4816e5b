package models

import "time"

// CacheEntry is a row of the database-backed cache. It holds the cached
// sport listing and the login rate-limit counters when Redis is not
// configured. A zero ExpiresAt never expires.
type CacheEntry struct {
	Key       string    `gorm:"primaryKey;size:256"`
	Value     []byte    `gorm:"type:blob"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Live reports whether the entry is still valid at now.
func (e CacheEntry) Live(now time.Time) bool {
	return e.ExpiresAt.IsZero() || e.ExpiresAt.After(now)
}
