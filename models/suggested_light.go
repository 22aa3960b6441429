package models

// SuggestedLightAssignment is the proposed replacement fixture and count
// for a room.
type SuggestedLightAssignment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID        uint  `gorm:"index;column:room_id" json:"roomId"`
	FixtureTypeID *uint `gorm:"column:fixture_type_id" json:"fixtureTypeId,omitempty"`

	Quantity int `gorm:"default:1" json:"quantity"`

	FixtureType *FixtureType `gorm:"foreignKey:FixtureTypeID" json:"fixtureType,omitempty"`
}
