package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stratum/internal/archive"
	"stratum/internal/infrastructure/storage/postgres"
)

// HealthHandler serves the liveness/readiness probes.
type HealthHandler struct {
	pool     *postgres.Pool
	registry *archive.Registry
}

func NewHealthHandler(pool *postgres.Pool, registry *archive.Registry) *HealthHandler {
	return &HealthHandler{pool: pool, registry: registry}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles GET /health/ready. Ready means the database answers a ping.
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.pool.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{"database": "unhealthy: " + err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{"database": "healthy"},
	})
}

// Info handles GET /health/info: pool statistics and the set of entity
// types participating in archive cascades.
func (h *HealthHandler) Info(c *gin.Context) {
	stat := h.pool.Stat()

	entities := make([]string, 0)
	for _, def := range h.registry.List() {
		entities = append(entities, def.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"app":      "stratum",
		"version":  "0.1.0",
		"entities": entities,
		"database": map[string]any{
			"total_conns":    stat.TotalConns(),
			"acquired_conns": stat.AcquiredConns(),
			"idle_conns":     stat.IdleConns(),
			"max_conns":      stat.MaxConns(),
		},
	})
}
