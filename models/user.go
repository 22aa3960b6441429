package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	FullName string `json:"fullName"`
	Email    string `json:"email" gorm:"uniqueIndex;size:150"`
	Password string `json:"-"`

	// "ADMIN" sees every case, "USER" only their own.
	Role string `json:"role" gorm:"size:20;default:USER"`
}
