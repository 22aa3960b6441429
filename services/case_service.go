package services

import (
	"errors"
	"fmt"
	"strings"

	"case-management-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseService wraps *gorm.DB for case lifecycle logic.
type CaseService struct {
	DB *gorm.DB
}

func NewCaseService(db *gorm.DB) *CaseService {
	return &CaseService{DB: db}
}

func (s *CaseService) Create(kase models.Case, createdBy uint) (models.Case, error) {
	kase.SchoolName = strings.TrimSpace(kase.SchoolName)
	if kase.SchoolName == "" {
		return models.Case{}, errors.New("school_name_required")
	}
	if kase.OperationHoursPerDay < 0 || kase.OperationHoursPerDay > 24 {
		return models.Case{}, errors.New("invalid_operation_hours")
	}
	if kase.OperationDaysPerYear < 0 || kase.OperationDaysPerYear > 365 {
		return models.Case{}, errors.New("invalid_operation_days")
	}

	kase.ReferenceCode = uuid.NewString()
	kase.CreatedByID = &createdBy
	if kase.Status == "" {
		kase.Status = "NEW"
	}

	if err := s.DB.Create(&kase).Error; err != nil {
		return models.Case{}, fmt.Errorf("failed to create case: %w", err)
	}
	return kase, nil
}

func (s *CaseService) List(scope Scope) ([]models.Case, error) {
	var cases []models.Case
	q := s.DB.Order("id DESC")
	if !scope.Admin {
		q = q.Where("created_by_id = ?", scope.UserID)
	}
	err := q.Find(&cases).Error
	return cases, err
}

func (s *CaseService) GetByID(id uint, scope Scope) (models.Case, error) {
	var kase models.Case
	q := s.DB.
		Preload("Visit.Rooms.Tag").
		Preload("Visit.Rooms.ExistingLights.Product").
		Preload("Visit.Rooms.SuggestedLights.FixtureType").
		Preload("Visit.Rooms.Photos").
		Preload("Documents")
	if !scope.Admin {
		q = q.Where("created_by_id = ?", scope.UserID)
	}
	if err := q.First(&kase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Case{}, errors.New("case_not_found")
		}
		return models.Case{}, err
	}
	return kase, nil
}

// caseColumns maps the JSON field names clients send to writable columns;
// anything not listed (identity, audit fields) is dropped from updates.
var caseColumns = map[string]string{
	"schoolName":           "school_name",
	"contactName":          "contact_name",
	"email":                "email",
	"phone":                "phone",
	"address":              "address",
	"status":               "status",
	"operationHoursPerDay": "operation_hours_per_day",
	"operationDaysPerYear": "operation_days_per_year",
	"extraDetails":         "extra_details",
}

// Update applies a partial update; identity and audit fields are stripped
// before the write.
func (s *CaseService) Update(id uint, scope Scope, updates map[string]interface{}) error {
	cleaned := map[string]interface{}{}
	for key, value := range updates {
		if col, ok := caseColumns[key]; ok {
			cleaned[col] = value
		}
	}
	updates = cleaned

	if v, ok := updates["operation_hours_per_day"]; ok {
		if f, ok2 := v.(float64); !ok2 || f < 0 || f > 24 {
			return errors.New("invalid_operation_hours")
		}
	}
	if v, ok := updates["operation_days_per_year"]; ok {
		f, ok2 := v.(float64)
		if !ok2 || f < 0 || f > 365 {
			return errors.New("invalid_operation_days")
		}
	}
	if len(updates) == 0 {
		return errors.New("invalid_update_payload")
	}

	q := scopedCases(s.DB, scope).Where("id = ?", id)
	res := q.Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("case_not_found")
	}
	return nil
}

// Delete soft-deletes the case; the visit graph stays reachable through
// Unscoped queries if it ever has to be restored.
func (s *CaseService) Delete(id uint, scope Scope) error {
	q := s.DB.Where("id = ?", id)
	if !scope.Admin {
		q = q.Where("created_by_id = ?", scope.UserID)
	}
	res := q.Delete(&models.Case{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("case_not_found")
	}
	return nil
}

// EnsureVisit returns the case's visit, creating an empty one if the case
// has none yet.
func (s *CaseService) EnsureVisit(caseID uint, scope Scope) (models.OnSiteVisit, error) {
	var count int64
	if err := scopedCases(s.DB, scope).Where("id = ?", caseID).Count(&count).Error; err != nil {
		return models.OnSiteVisit{}, err
	}
	if count == 0 {
		return models.OnSiteVisit{}, errors.New("case_not_found")
	}

	var visit models.OnSiteVisit
	err := s.DB.Where("case_id = ?", caseID).First(&visit).Error
	if err == nil {
		return visit, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.OnSiteVisit{}, err
	}

	visit = models.OnSiteVisit{CaseID: caseID}
	if err := s.DB.Create(&visit).Error; err != nil {
		return models.OnSiteVisit{}, fmt.Errorf("failed to create visit: %w", err)
	}
	return visit, nil
}
