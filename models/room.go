package models

import (
	"time"
)

// Room is one surveyed space in a site visit. Wattage totals are always
// derived from the light assignments, never stored on the row.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	VisitID uint `gorm:"index;column:visit_id" json:"visitId"`

	// Optional free-text location ("2nd floor, Rm 214") and/or a shared tag.
	Location string `json:"location"`
	TagID    *uint  `gorm:"column:tag_id" json:"tagId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Tag             *RoomTag                   `gorm:"foreignKey:TagID" json:"tag,omitempty"`
	ExistingLights  []ExistingLightAssignment  `gorm:"foreignKey:RoomID" json:"existingLights"`
	SuggestedLights []SuggestedLightAssignment `gorm:"foreignKey:RoomID" json:"suggestedLights"`
	Photos          []RoomPhoto                `gorm:"foreignKey:RoomID" json:"photos"`
}
