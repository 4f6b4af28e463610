package models

import "time"

// RefreshToken is one login session for the listing API. Only the SHA-256
// hex of the raw token is stored; rotation revokes the old row and inserts a
// new one.
type RefreshToken struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint      `gorm:"index;not null"`
	TokenHash string    `gorm:"size:64;not null;uniqueIndex"` // hex sha256
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"default:false"`
}
