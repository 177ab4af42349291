package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"student_attendance/middleware"
)

type HealthHandler struct {
	revoker middleware.Revoker
}

func NewHealthHandler(revoker middleware.Revoker) *HealthHandler {
	return &HealthHandler{revoker: revoker}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	// Check session store connection
	if err := h.revoker.Ping(c.Request.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "Session store connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}
