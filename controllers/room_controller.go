package controllers

import (
	"log"
	"net/http"

	"case-management-backend/models"
	"case-management-backend/services"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms *services.RoomService
	Cases *services.CaseService
}

func NewRoomController(rooms *services.RoomService, cases *services.CaseService) *RoomController {
	return &RoomController{Rooms: rooms, Cases: cases}
}

type roomPayload struct {
	Location string `json:"location"`
	TagID    *uint  `json:"tagId"`
}

// CreateVisit ensures the case has an on-site visit record.
func (ctl *RoomController) CreateVisit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	visit, err := ctl.Cases.EnsureVisit(id, currentScope(c))
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}
		log.Printf("❌ failed to ensure visit for case %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create visit"})
		return
	}
	c.JSON(http.StatusOK, visit)
}

// AddRoom appends a room to the case's visit, creating the visit on first
// use.
func (ctl *RoomController) AddRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	visit, err := ctl.Cases.EnsureVisit(id, currentScope(c))
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve visit"})
		return
	}

	room, err := ctl.Rooms.Add(models.Room{
		VisitID:  visit.ID,
		Location: payload.Location,
		TagID:    payload.TagID,
	})
	if err != nil {
		log.Printf("❌ failed to add room to visit %d: %v", visit.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add room"})
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (ctl *RoomController) GetRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	room, err := ctl.Rooms.GetByID(id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load room"})
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := ctl.Rooms.Update(id, updates); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		if isClientError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("❌ failed to update room %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Room updated successfully"})
}

func (ctl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := ctl.Rooms.Delete(id); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		log.Printf("❌ failed to delete room %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Room deleted successfully"})
}

type lightsPayload struct {
	Existing  []models.ExistingLightAssignment  `json:"existing"`
	Suggested []models.SuggestedLightAssignment `json:"suggested"`
}

// ReplaceLights swaps the full fixture survey of a room in one shot; the
// UI edits the whole form and saves it at once.
func (ctl *RoomController) ReplaceLights(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload lightsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := ctl.Rooms.ReplaceLights(id, payload.Existing, payload.Suggested); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		log.Printf("❌ failed to replace lights for room %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save light assignments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Light assignments saved"})
}
