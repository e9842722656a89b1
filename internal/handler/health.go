package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EmilioNacato/DashboardProcesador/internal/client"
)

type HealthHandler struct {
	pool      *pgxpool.Pool
	processor *client.Processor
}

func NewHealthHandler(pool *pgxpool.Pool, processor *client.Processor) *HealthHandler {
	return &HealthHandler{pool: pool, processor: processor}
}

// Health reports the state of both dependencies. The service is degraded,
// not down, when only the processor is unreachable: cached views and saved
// filters still work.
func (h *HealthHandler) Health(c *gin.Context) {
	dbStatus := "connected"
	if err := h.pool.Ping(c.Request.Context()); err != nil {
		dbStatus = "disconnected"
	}

	processorStatus := "reachable"
	if err := h.processor.Ping(c.Request.Context()); err != nil {
		processorStatus = "unreachable"
	}

	status := "healthy"
	code := http.StatusOK
	switch {
	case dbStatus == "disconnected":
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	case processorStatus == "unreachable":
		status = "degraded"
	}

	c.JSON(code, gin.H{
		"status":    status,
		"database":  dbStatus,
		"processor": processorStatus,
	})
}
