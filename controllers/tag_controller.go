package controllers

import (
	"net/http"
	"strings"

	"case-management-backend/config"
	"case-management-backend/models"

	"github.com/gin-gonic/gin"
)

func GetTags(c *gin.Context) {
	var tags []models.RoomTag
	config.DB.Order("name").Find(&tags)
	c.JSON(http.StatusOK, tags)
}

func CreateTag(c *gin.Context) {
	var tag models.RoomTag
	if err := c.ShouldBindJSON(&tag); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	if err := config.DB.Create(&tag).Error; err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			c.JSON(http.StatusConflict, gin.H{"error": "tag already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tag"})
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func DeleteTag(c *gin.Context) {
	id := c.Param("id")
	res := config.DB.Delete(&models.RoomTag{}, id)
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted"})
}
