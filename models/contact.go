package models

import "time"

// Contact is a standalone contact-form message. No relations.
type Contact struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"size:200;not null"`
	Email     string `gorm:"size:255;not null"`
	Subject   string `gorm:"size:200;not null"`
	Message   string `gorm:"type:text;not null"`
}
