package controllers

import (
	"log"
	"net/http"

	"case-management-backend/services"

	"github.com/gin-gonic/gin"
)

type DeliveryController struct {
	Planner *services.DeliveryPlanner
}

func NewDeliveryController(planner *services.DeliveryPlanner) *DeliveryController {
	return &DeliveryController{Planner: planner}
}

type optimizePayload struct {
	WarehouseOrigin string              `json:"warehouseOrigin"`
	Deliveries      []services.Delivery `json:"deliveries"`
	MaxSkids        int                 `json:"maxSkids"`
	MaxDistanceKM   float64             `json:"maxDistanceKm"`
	TopN            int                 `json:"topN"`
}

// OptimizeDeliveries filters candidates by distance from the warehouse,
// enumerates feasible batches, and returns the best-ranked routes.
func (ctl *DeliveryController) OptimizeDeliveries(c *gin.Context) {
	var payload optimizePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}
	if payload.WarehouseOrigin == "" || len(payload.Deliveries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "warehouseOrigin and deliveries are required"})
		return
	}
	if payload.MaxSkids <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "maxSkids must be positive"})
		return
	}
	for _, d := range payload.Deliveries {
		if d.Address == "" || d.Skids <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "each delivery needs an address and a positive skid count"})
			return
		}
	}

	ctx := c.Request.Context()

	candidates := payload.Deliveries
	if payload.MaxDistanceKM > 0 {
		filtered, err := ctl.Planner.FilterByDistance(ctx, payload.WarehouseOrigin, candidates, payload.MaxDistanceKM)
		if err != nil {
			log.Printf("❌ delivery pre-filter aborted: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "route planning aborted"})
			return
		}
		candidates = filtered
	}

	routes, err := ctl.Planner.RankRoutes(ctx, payload.WarehouseOrigin, candidates, payload.MaxSkids, payload.TopN)
	if err != nil {
		log.Printf("❌ route ranking aborted: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "route planning aborted"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidateCount": len(candidates),
		"routes":         routes,
	})
}
