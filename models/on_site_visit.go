package models

import "time"

// OnSiteVisit holds the site survey for one case. A case has at most one.
type OnSiteVisit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CaseID    uint       `gorm:"uniqueIndex;column:case_id" json:"caseId"`
	VisitDate *time.Time `json:"visitDate,omitempty"`
	Notes     string     `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Rooms []Room `gorm:"foreignKey:VisitID" json:"rooms"`
}
