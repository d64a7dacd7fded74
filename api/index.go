package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/database"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/handlers"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/session"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	// Initialize DB
	db := database.InitDB()
	h := &handlers.Handler{DB: db, Sessions: session.NewStore()}

	// Initialize Gin
	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Static files served from embedded FS
	r.StaticFS("/static", h.GetStaticFS())
	r.GET("/", h.OperatorInterface)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Shift Stats Reconciliation API (Vercel)",
			"version": "1.0.0",
		})
	})

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
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, r_req *http.Request) {
	r.ServeHTTP(w, r_req)
}
