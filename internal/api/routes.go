package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bookingsaver/internal/database"
)

// SetupRoutes registers the read-only API endpoints.
func SetupRoutes(router *gin.Engine, db *database.Database, logger *logrus.Logger) {
	handler := NewHandler(db, logger)

	api := router.Group("/api")
	{
		api.GET("/listings", handler.GetAllListings)
		api.GET("/stats", handler.GetStats)
	}
}
