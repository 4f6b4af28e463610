package models

import "time"

// Role is a user's access level. Two rows are seeded at migrate time:
// "administrator" (sees every lead and the contact inbox) and "user"
// (owner-scoped access only).
type Role struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string `gorm:"size:50;uniqueIndex;not null"`
	Description string `gorm:"size:200"`
}
