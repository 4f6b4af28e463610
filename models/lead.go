package models

import "time"

// Lead is a buyer's expression of interest in a property. SellerID is a
// snapshot of the property owner taken when the lead is created; BuyerID is
// nil for anonymous submissions. Leads are cascade-deleted with their
// property.
type Lead struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	PropertyID uint     `gorm:"index;not null"`
	Property   Property `gorm:"foreignKey:PropertyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	BuyerID    *uint    `gorm:"index"`
	Buyer      *User    `gorm:"foreignKey:BuyerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	SellerID   uint     `gorm:"index;not null"`
	BuyerName  string   `gorm:"size:200;not null"`
	BuyerPhone string   `gorm:"size:20;not null"`
	Status     string   `gorm:"size:50;default:'New'"`
}
