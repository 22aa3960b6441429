package models

import (
	"time"

	"gorm.io/gorm"
)

// FixtureType is catalog reference data describing a light product.
// Description is free text; for legacy catalog rows it may carry the
// auxiliary ballast draw as a bare number (e.g. "10"), which the savings
// engine adds when a retrofit bypasses the ballast.
type FixtureType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `json:"name"`
	Wattage     float64 `json:"wattage"`
	Description string  `json:"description" gorm:"type:text"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
