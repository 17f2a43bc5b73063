package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sportfit/internal/app/models/dto"
)

// Pinger checks that a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports process and database health
type HealthController struct {
	db Pinger
}

// NewHealthController creates a new HealthController
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health reports whether the database answers
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Failure 503 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	health := dto.HealthResponse{Status: "ok", Database: "ok"}
	status := http.StatusOK

	if c.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.db.Ping(pingCtx); err != nil {
			health = dto.HealthResponse{Status: "degraded", Database: "unreachable"}
			status = http.StatusServiceUnavailable
		}
	}

	ctx.JSON(status, dto.APIResponse{
		Success:   status == http.StatusOK,
		Data:      health,
		Timestamp: time.Now(),
	})
}
