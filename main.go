package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"case-management-backend/config"
	"case-management-backend/controllers"
	"case-management-backend/routes"
	"case-management-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	if os.Getenv("ROUTING_API_KEY") == "" {
		log.Println("⚠️  ROUTING_API_KEY is not set; delivery route optimization will fail until it is configured")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	caseService := services.NewCaseService(db)
	roomService := services.NewRoomService(db)
	savingsService := services.NewSavingsService(db)
	reportService := services.NewReportService(db, savingsService)

	callsPerSec := 1.0
	if raw := os.Getenv("ROUTING_CALLS_PER_SEC"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			callsPerSec = v
		} else {
			log.Printf("⚠️  invalid ROUTING_CALLS_PER_SEC %q, using %.0f", raw, callsPerSec)
		}
	}
	planner := services.NewDeliveryPlanner(services.NewRoutingClient(), callsPerSec)

	// Initialize controllers
	caseController := controllers.NewCaseController(caseService)
	roomController := controllers.NewRoomController(roomService, caseService)
	savingsController := controllers.NewSavingsController(savingsService, reportService)
	deliveryController := controllers.NewDeliveryController(planner)

	// Build router
	router := routes.SetupRouter(caseController, roomController, savingsController, deliveryController)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
