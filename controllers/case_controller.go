package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"case-management-backend/models"
	"case-management-backend/services"

	"github.com/gin-gonic/gin"
)

type CaseController struct {
	Cases *services.CaseService
}

func NewCaseController(cases *services.CaseService) *CaseController {
	return &CaseController{Cases: cases}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func isNotFound(err error) bool {
	return strings.HasSuffix(err.Error(), "_not_found")
}

func isClientError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "invalid_") || strings.HasSuffix(msg, "_required")
}

func (ctl *CaseController) GetCases(c *gin.Context) {
	cases, err := ctl.Cases.List(currentScope(c))
	if err != nil {
		log.Printf("❌ failed to list cases: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list cases"})
		return
	}
	c.JSON(http.StatusOK, cases)
}

func (ctl *CaseController) CreateCase(c *gin.Context) {
	var kase models.Case
	if err := c.ShouldBindJSON(&kase); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	created, err := ctl.Cases.Create(kase, currentUser(c).ID)
	if err != nil {
		if isClientError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("❌ failed to create case: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create case"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ctl *CaseController) GetCaseByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	kase, err := ctl.Cases.GetByID(id, currentScope(c))
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}
		log.Printf("❌ failed to load case %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load case"})
		return
	}
	c.JSON(http.StatusOK, kase)
}

func (ctl *CaseController) UpdateCase(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := ctl.Cases.Update(id, currentScope(c), updates); err != nil {
		switch {
		case isNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
		case isClientError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("❌ failed to update case %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Case updated successfully"})
}

func (ctl *CaseController) DeleteCase(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := ctl.Cases.Delete(id, currentScope(c)); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}
		log.Printf("❌ failed to delete case %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete case"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Case deleted successfully"})
}
