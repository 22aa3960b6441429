package models

import (
	"time"

	"gorm.io/datatypes"
)

// SavingsReport is a persisted snapshot of a computed savings payload, so
// a report emailed to a customer can be reproduced later even after the
// case data changes.
type SavingsReport struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CaseID   uint   `gorm:"index;column:case_id" json:"caseId"`
	ReportID string `gorm:"size:64;uniqueIndex;column:report_id" json:"reportId"`

	// "simple" or "tiered"
	CostModel string `gorm:"size:16;column:cost_model" json:"costModel"`

	Payload datatypes.JSON `json:"payload"`

	EmailedTo string     `gorm:"size:150;column:emailed_to" json:"emailedTo,omitempty"`
	EmailedAt *time.Time `gorm:"column:emailed_at" json:"emailedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
