package models

import "time"

// PropertyImage is one stored photo of a property. Position preserves the
// multipart submission order.
type PropertyImage struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PropertyID  uint   `gorm:"index;not null"`
	FileName    string `gorm:"size:255;not null"`
	StorePath   string `gorm:"column:store_path;size:512"` // path on disk relative to the upload base
	URL         string `gorm:"size:512"`                   // public relative path (e.g. public/property_images/3/house.jpg)
	ContentType string `gorm:"size:128"`
	Position    int    `gorm:"default:0;not null"`
}
