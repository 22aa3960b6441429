package models

import "time"

type RoomPhoto struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID  uint   `gorm:"index;column:room_id" json:"roomId"`
	URL     string `gorm:"size:500" json:"url"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"createdAt"`
}
