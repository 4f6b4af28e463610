package models

import (
	"time"
)

// User model. Email doubles as the login name.
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time `gorm:"index"`
	Email          string     `gorm:"size:255;not null;unique"`
	HashedPassword []byte     `gorm:"not null"`
	Properties     []Property `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Profile        *Profile   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	RoleID         *uint      `gorm:"index"`
	Role           Role       `gorm:"foreignKey:RoleID;references:ID"`
}
