package models

import "time"

// Profile represents a user's contact profile (one-to-one with User).
// It is created inside the registration transaction, never on its own.
type Profile struct {
	ID              uint `gorm:"primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	UserID          uint   `gorm:"uniqueIndex;not null"` // one-to-one relation
	User            User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FullName        string `gorm:"size:200;not null"`
	Phone           string `gorm:"size:20"`
	City            string `gorm:"size:100;default:'Sangrur'"`
	Address         string `gorm:"size:512"`
	IsPhoneVerified bool   `gorm:"default:false;not null"`
}
