package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves liveness probes.
type SystemHandler struct{}

// NewSystemHandler creates a SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// Ping godoc
// GET /api/ping
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "pong"})
}

// Health godoc
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
