package models

// ExistingLightAssignment records fixtures physically present in a room.
// ProductID is nullable so rows survive catalog cleanups; an unresolved
// product contributes zero wattage in the savings engine.
type ExistingLightAssignment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID    uint  `gorm:"index;column:room_id" json:"roomId"`
	ProductID *uint `gorm:"column:product_id" json:"productId,omitempty"`

	Quantity      int  `gorm:"default:1" json:"quantity"`
	BypassBallast bool `gorm:"column:bypass_ballast;default:false" json:"bypassBallast"`

	Product *FixtureType `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
