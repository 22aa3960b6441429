package models

import "time"

type Session struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Token     string     `gorm:"uniqueIndex;size:128" json:"-"`
	UserID    uint       `gorm:"index" json:"userId"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
