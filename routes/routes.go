package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"case-management-backend/controllers"
	"case-management-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	cc *controllers.CaseController,
	rc *controllers.RoomController,
	sc *controllers.SavingsController,
	dc *controllers.DeliveryController,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
			auth.POST("/logout", middleware.RequireAuth(), controllers.Logout)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth())
		{
			fixtureTypes := protected.Group("/fixture-types")
			{
				fixtureTypes.GET("", controllers.GetFixtureTypes)
				fixtureTypes.POST("", middleware.RequireAdmin(), controllers.CreateFixtureType)
				fixtureTypes.DELETE("/:id", middleware.RequireAdmin(), controllers.DeleteFixtureType)
			}

			tags := protected.Group("/tags")
			{
				tags.GET("", controllers.GetTags)
				tags.POST("", controllers.CreateTag)
				tags.DELETE("/:id", middleware.RequireAdmin(), controllers.DeleteTag)
			}

			cases := protected.Group("/cases")
			{
				cases.GET("", cc.GetCases)
				cases.POST("", cc.CreateCase)
				cases.GET("/:id", cc.GetCaseByID)
				cases.PATCH("/:id", cc.UpdateCase)
				cases.DELETE("/:id", cc.DeleteCase)

				cases.POST("/:id/visit", rc.CreateVisit)
				cases.POST("/:id/rooms", rc.AddRoom)

				cases.GET("/:id/savings", sc.GetCaseSavings)
				cases.POST("/:id/reports", sc.CreateReport)
				cases.GET("/:id/reports", sc.GetCaseReports)

				cases.GET("/:id/documents", controllers.GetCaseDocuments)
				cases.POST("/:id/documents", controllers.UploadCaseDocument)
			}

			rooms := protected.Group("/rooms")
			{
				rooms.GET("/:id", rc.GetRoom)
				rooms.PATCH("/:id", rc.UpdateRoom)
				rooms.DELETE("/:id", rc.DeleteRoom)
				rooms.PUT("/:id/lights", rc.ReplaceLights)
				rooms.POST("/:id/photos", controllers.AddRoomPhoto)
			}

			protected.DELETE("/photos/:id", controllers.DeletePhoto)
			protected.DELETE("/documents/:id", controllers.DeleteDocument)

			protected.POST("/deliveries/optimize", dc.OptimizeDeliveries)
		}
	}

	return r
}
