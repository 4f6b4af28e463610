package models

import "time"

// Property is a listing owned by exactly one user. Price and Area are
// free-text labels ("1.5 Cr", "250 sq yd"); nothing computes on them.
type Property struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	OwnerID     uint            `gorm:"index;not null"`
	Owner       User            `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Title       string          `gorm:"size:200;not null"`
	Price       string          `gorm:"size:100"`
	Location    string          `gorm:"size:200"`
	Colony      string          `gorm:"size:200"`
	Type        string          `gorm:"size:50;default:'House'"`
	Area        string          `gorm:"size:100"`
	Beds        int             `gorm:"default:0;not null"`
	Baths       int             `gorm:"default:0;not null"`
	Status      string          `gorm:"size:50;default:'Available'"`
	Description string          `gorm:"type:text"`
	Images      []PropertyImage `gorm:"foreignKey:PropertyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Leads       []Lead          `gorm:"foreignKey:PropertyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
