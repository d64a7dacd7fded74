package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/database"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/handlers"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/session"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	h := &handlers.Handler{DB: db, Sessions: session.NewStore()}

	r := gin.Default()

	// Operator page - serve static files from embedded FS
	r.StaticFS("/static", h.GetStaticFS())
	r.GET("/", h.OperatorInterface)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Shift Stats Reconciliation API",
			"version": "1.0.0",
		})
	})

	// Reconciliation Endpoints
	api := r.Group("/api")
	api.Use(h.SessionMiddleware())
	{
		api.POST("/upload/schedule", h.UploadSchedule)
		api.POST("/upload/mappings", h.UploadMappings)
		api.POST("/upload/activity", h.UploadActivity)
		api.GET("/dates", h.Dates)
		api.POST("/stats", h.Stats)
		api.GET("/orphans", h.Orphans)
		api.POST("/reassign", h.Reassign)
		api.GET("/logs", h.Logs)
		api.GET("/export", h.Export)
		api.GET("/status", h.GetStatus)
		api.GET("/validate", h.ValidateState)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
