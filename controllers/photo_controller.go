package controllers

import (
	"log"
	"net/http"

	"case-management-backend/config"
	"case-management-backend/models"
	"case-management-backend/services"
	"case-management-backend/utils"

	"github.com/gin-gonic/gin"
)

type photoPayload struct {
	Image   string `json:"image"` // base64, optionally a data URL
	Comment string `json:"comment"`
}

func AddRoomPhoto(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var room models.Room
	if err := config.DB.First(&room, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	var payload photoPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image payload required"})
		return
	}

	path, err := services.SaveBase64File(payload.Image, "photos", "")
	if err != nil {
		log.Printf("❌ photo upload for room %d failed: %v", id, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image data"})
		return
	}

	photo := models.RoomPhoto{
		RoomID:  room.ID,
		URL:     path,
		Comment: payload.Comment,
	}
	if err := config.DB.Create(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save photo"})
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, photo)
}

func DeletePhoto(c *gin.Context) {
	id := c.Param("id")
	res := config.DB.Delete(&models.RoomPhoto{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete photo"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Photo deleted"})
}
