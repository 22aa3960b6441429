package controllers

import (
	"net/http"

	"case-management-backend/config"
	"case-management-backend/models"

	"github.com/gin-gonic/gin"
)

func GetFixtureTypes(c *gin.Context) {
	var types []models.FixtureType
	config.DB.Order("name").Find(&types)
	c.JSON(http.StatusOK, types)
}

func CreateFixtureType(c *gin.Context) {
	var ft models.FixtureType
	if err := c.ShouldBindJSON(&ft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if ft.Wattage < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wattage must be >= 0"})
		return
	}

	if err := config.DB.Create(&ft).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create fixture type"})
		return
	}
	c.JSON(http.StatusCreated, ft)
}

func DeleteFixtureType(c *gin.Context) {
	id := c.Param("id")
	res := config.DB.Delete(&models.FixtureType{}, id)
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "fixture type not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fixture type deleted"})
}
