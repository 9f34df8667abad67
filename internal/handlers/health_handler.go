package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by database.DB
type Pinger interface {
	Ping() error
}

// CacheReporter exposes graph cache counters
type CacheReporter interface {
	CacheStats() map[string]interface{}
}

// HealthHandler reports liveness plus the state of the network source
type HealthHandler struct {
	source string
	db     Pinger
	cache  CacheReporter
}

// NewHealthHandler creates a health handler. db may be nil when the network
// does not come from Postgres.
func NewHealthHandler(source string, db Pinger, cache CacheReporter) *HealthHandler {
	return &HealthHandler{source: source, db: db, cache: cache}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{
		"status":         "healthy",
		"network_source": h.source,
	}
	if h.cache != nil {
		body["graph_cache"] = h.cache.CacheStats()
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			body["status"] = "unhealthy"
			body["database"] = "unhealthy"
			body["error"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["database"] = "healthy"
	}

	c.JSON(http.StatusOK, body)
}
