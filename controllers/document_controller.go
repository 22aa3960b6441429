package controllers

import (
	"log"
	"net/http"
	"strings"

	"case-management-backend/config"
	"case-management-backend/models"
	"case-management-backend/services"
	"case-management-backend/utils"

	"github.com/gin-gonic/gin"
)

type documentPayload struct {
	FileName string `json:"fileName"`
	Data     string `json:"data"` // base64
}

func GetCaseDocuments(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var docs []models.CaseDocument
	if err := config.DB.Where("case_id = ?", id).Order("id DESC").Find(&docs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list documents"})
		return
	}
	c.JSON(http.StatusOK, docs)
}

func UploadCaseDocument(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var kase models.Case
	if err := config.DB.First(&kase, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
		return
	}

	var payload documentPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Data == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document payload required"})
		return
	}

	ext := ""
	if i := strings.LastIndex(payload.FileName, "."); i >= 0 {
		ext = payload.FileName[i+1:]
	}
	path, err := services.SaveBase64File(payload.Data, "documents", ext)
	if err != nil {
		log.Printf("❌ document upload for case %d failed: %v", id, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document data"})
		return
	}

	user := currentUser(c)
	doc := models.CaseDocument{
		CaseID:       kase.ID,
		FileName:     payload.FileName,
		URL:          path,
		UploadedByID: &user.ID,
	}
	if err := config.DB.Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save document"})
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, doc)
}

func DeleteDocument(c *gin.Context) {
	id := c.Param("id")
	res := config.DB.Delete(&models.CaseDocument{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete document"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Document deleted"})
}
