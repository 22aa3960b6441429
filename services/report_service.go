package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"case-management-backend/models"
	"case-management-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportService persists savings snapshots and hands them to the email
// collaborator.
type ReportService struct {
	DB      *gorm.DB
	Savings *SavingsService
}

func NewReportService(db *gorm.DB, savings *SavingsService) *ReportService {
	return &ReportService{DB: db, Savings: savings}
}

// CreateReport computes the savings for a case, stores the payload
// snapshot, and optionally emails a summary attachment. Email failure
// does not lose the report; the snapshot is already persisted.
func (s *ReportService) CreateReport(caseID uint, scope Scope, model CostModel, emailTo string) (models.SavingsReport, error) {
	result, err := s.Savings.ComputeCaseSavings(caseID, scope, model)
	if err != nil {
		return models.SavingsReport{}, err
	}

	var kase models.Case
	if err := s.DB.First(&kase, caseID).Error; err != nil {
		return models.SavingsReport{}, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return models.SavingsReport{}, fmt.Errorf("failed to marshal savings payload: %w", err)
	}

	report := models.SavingsReport{
		CaseID:    caseID,
		ReportID:  uuid.NewString(),
		CostModel: string(model),
		Payload:   payload,
	}
	if err := s.DB.Create(&report).Error; err != nil {
		return models.SavingsReport{}, fmt.Errorf("failed to store report: %w", err)
	}

	emailTo = strings.TrimSpace(emailTo)
	if emailTo != "" {
		filename := fmt.Sprintf("savings-report-%s.json", report.ReportID)
		if err := utils.SendReportEmail(emailTo, kase.SchoolName, filename, payload); err != nil {
			log.Printf("warning: report %s stored but email to %s failed: %v", report.ReportID, emailTo, err)
		} else {
			now := time.Now()
			report.EmailedTo = emailTo
			report.EmailedAt = &now
			if err := s.DB.Model(&report).Updates(models.SavingsReport{EmailedTo: emailTo, EmailedAt: &now}).Error; err != nil {
				log.Printf("warning: failed to record email delivery for report %s: %v", report.ReportID, err)
			}
		}
	}

	return report, nil
}

func (s *ReportService) ListByCase(caseID uint, scope Scope) ([]models.SavingsReport, error) {
	var count int64
	if err := scopedCases(s.DB, scope).Where("id = ?", caseID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.New("case_not_found")
	}

	var reports []models.SavingsReport
	err := s.DB.Where("case_id = ?", caseID).Order("id DESC").Find(&reports).Error
	return reports, err
}
