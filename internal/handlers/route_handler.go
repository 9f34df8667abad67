package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/transit-router/internal/middleware"
	"github.com/smarttransit/transit-router/internal/models"
	"github.com/smarttransit/transit-router/internal/routing"
)

// RouteFinder is the query surface the handler serves
type RouteFinder interface {
	FindRoute(req *models.RouteRequest) (*models.RouteResponse, error)
	Autocomplete(term string, limit int) []models.StationSuggestion
	Network() models.NetworkSummary
}

// RouteHandler handles HTTP requests for route queries
type RouteHandler struct {
	service RouteFinder
	logger  *logrus.Logger
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(service RouteFinder, logger *logrus.Logger) *RouteHandler {
	return &RouteHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes mounts the route endpoints on an /api/v1 group
func (h *RouteHandler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.POST("/routes", h.FindRoute)
	v1.GET("/stations/autocomplete", h.GetStationAutocomplete)
	v1.GET("/network", h.GetNetwork)
}

// FindRoute handles POST /api/v1/routes
// @Summary Find the fastest route
// @Description Fastest route between two stations under optional closures
// @Tags Routes
// @Accept json
// @Produce json
// @Param route body models.RouteRequest true "Route query"
// @Success 200 {object} models.RouteResponse
// @Failure 400 {object} map[string]interface{} "Invalid request or unknown station"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/routes [post]
func (h *RouteHandler) FindRoute(c *gin.Context) {
	var req models.RouteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Warn("Invalid route request - JSON parsing failed")
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  models.StatusError,
			"message": "Invalid request format",
			"error":   err.Error(),
		})
		return
	}

	response, err := h.service.FindRoute(&req)
	if err != nil {
		var validationErr *models.ValidationError
		var inputErr *routing.InputError
		switch {
		case errors.As(err, &validationErr):
			h.logger.WithError(err).Warn("Validation error in route request")
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  models.StatusError,
				"message": err.Error(),
			})
		case errors.As(err, &inputErr):
			h.logger.WithFields(logrus.Fields{
				"role":       inputErr.Role,
				"name":       inputErr.Name,
				"request_id": middleware.GetRequestID(c),
			}).Info("Unknown station in route request")
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  models.StatusError,
				"message": err.Error(),
				"field":   inputErr.Role,
			})
		default:
			h.logger.WithError(err).Error("Route search failed")
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  models.StatusError,
				"message": "Failed to search for a route. Please try again later.",
			})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetStationAutocomplete handles GET /api/v1/stations/autocomplete
// @Summary Get station autocomplete suggestions
// @Tags Routes
// @Produce json
// @Param q query string true "Search term"
// @Param limit query int false "Maximum number of suggestions" default(10)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/v1/stations/autocomplete [get]
func (h *RouteHandler) GetStationAutocomplete(c *gin.Context) {
	searchTerm := c.Query("q")
	if searchTerm == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  models.StatusError,
			"message": "Search term 'q' is required",
		})
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	suggestions := h.service.Autocomplete(searchTerm, limit)

	c.JSON(http.StatusOK, gin.H{
		"status":      models.StatusSuccess,
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

// GetNetwork handles GET /api/v1/network
func (h *RouteHandler) GetNetwork(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  models.StatusSuccess,
		"network": h.service.Network(),
	})
}
