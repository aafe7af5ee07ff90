package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-board-api/internal/dto"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	database   Pinger
	sessions   Pinger
	storeName  string
	mirrorName string
	logger     *zap.Logger
}

func NewHealthHandler(database, sessions Pinger, storeName, mirrorName string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		database:   database,
		sessions:   sessions,
		storeName:  storeName,
		mirrorName: mirrorName,
		logger:     logger,
	}
}

// Health godoc
// @Summary      Liveness check
// @Description  Reports database connectivity, mirror configuration and the session store in use.
// @Description  Responds 503 when the database or session store is unreachable.
// @Tags         health
// @Produce      json
// @Success      200 {object} dto.HealthResponse
// @Failure      503 {object} dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{
		Status:   "ok",
		Database: "connected",
		GDrive:   "not configured",
		Mirror:   h.mirrorName,
		Sessions: h.storeName,
	}
	if h.mirrorName == "gdrive" {
		resp.GDrive = "configured"
	}

	status := http.StatusOK
	if err := ping(ctx, h.database); err != nil {
		h.logger.Warn("Database health check failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Database = "disconnected"
		status = http.StatusServiceUnavailable
	}
	if err := ping(ctx, h.sessions); err != nil {
		h.logger.Warn("Session store health check failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Sessions = h.storeName + " (unreachable)"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, resp)
}

func ping(ctx context.Context, p Pinger) error {
	if p == nil {
		return nil
	}
	return p(ctx)
}
