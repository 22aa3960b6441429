package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Case struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`
	SchoolName    string `json:"schoolName"`
	ContactName   string `json:"contactName"`
	Email         string `gorm:"size:150" json:"email"`
	Phone         string `gorm:"size:50" json:"phone"`
	Address       string `gorm:"type:text" json:"address"`
	Status        string `gorm:"size:64;default:NEW" json:"status"`

	// Operational parameters for the simple (non-tiered) cost model.
	OperationHoursPerDay float64 `gorm:"column:operation_hours_per_day" json:"operationHoursPerDay"`
	OperationDaysPerYear int     `gorm:"column:operation_days_per_year" json:"operationDaysPerYear"`

	ExtraDetails datatypes.JSON `gorm:"column:extra_details" json:"extraDetails,omitempty"`

	CreatedByID *uint `gorm:"index;column:created_by_id" json:"createdById,omitempty"`
	CreatedBy   User  `gorm:"foreignKey:CreatedByID" json:"-"`

	Visit     *OnSiteVisit   `gorm:"foreignKey:CaseID" json:"visit,omitempty"`
	Documents []CaseDocument `gorm:"foreignKey:CaseID" json:"documents,omitempty"`
}
