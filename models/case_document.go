package models

import (
	"time"

	"gorm.io/gorm"
)

type CaseDocument struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CaseID   uint   `gorm:"index;column:case_id" json:"caseId"`
	FileName string `gorm:"size:255" json:"fileName"`
	URL      string `gorm:"size:500" json:"url"`

	UploadedByID *uint `gorm:"column:uploaded_by_id" json:"uploadedById,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
