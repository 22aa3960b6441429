package controllers

import (
	"log"
	"net/http"

	"case-management-backend/services"

	"github.com/gin-gonic/gin"
)

type SavingsController struct {
	Savings *services.SavingsService
	Reports *services.ReportService
}

func NewSavingsController(savings *services.SavingsService, reports *services.ReportService) *SavingsController {
	return &SavingsController{Savings: savings, Reports: reports}
}

func costModelFromQuery(c *gin.Context) (services.CostModel, bool) {
	switch c.DefaultQuery("model", string(services.ModelTiered)) {
	case string(services.ModelSimple):
		return services.ModelSimple, true
	case string(services.ModelTiered):
		return services.ModelTiered, true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "model must be 'simple' or 'tiered'"})
		return "", false
	}
}

// GetCaseSavings computes the best-effort estimate for a case. Missing
// catalog data degrades to zero contributions; only a missing case/visit
// is an error.
func (ctl *SavingsController) GetCaseSavings(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	model, ok := costModelFromQuery(c)
	if !ok {
		return
	}

	result, err := ctl.Savings.ComputeCaseSavings(id, currentScope(c), model)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("❌ savings computation for case %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute savings"})
		return
	}
	c.JSON(http.StatusOK, result)
}

type reportPayload struct {
	Model   string `json:"model"`
	EmailTo string `json:"emailTo"`
}

func (ctl *SavingsController) CreateReport(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload reportPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	model := services.CostModel(payload.Model)
	if model == "" {
		model = services.ModelTiered
	}
	if model != services.ModelSimple && model != services.ModelTiered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "model must be 'simple' or 'tiered'"})
		return
	}

	report, err := ctl.Reports.CreateReport(id, currentScope(c), model, payload.EmailTo)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("❌ report creation for case %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create report"})
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (ctl *SavingsController) GetCaseReports(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	reports, err := ctl.Reports.ListByCase(id, currentScope(c))
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}
