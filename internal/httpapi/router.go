// Package httpapi serves the weather tools over HTTP: the MCP streamable
// endpoint plus plain-text REST routes for the same operations.
package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Operations is the weather behaviour the REST routes expose
type Operations interface {
	GetAlerts(ctx context.Context, state string) string
	GetForecast(ctx context.Context, latitude, longitude float64) string
}

// Handler holds the dependencies of the REST routes
type Handler struct {
	ops Operations
}

// NewHandler creates a Handler for ops
func NewHandler(ops Operations) *Handler {
	return &Handler{ops: ops}
}

// SetMode sets gin's mode, defaulting to release. Call it before NewRouter
// so debug route logging follows the chosen mode.
func SetMode(mode string) {
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

// NewRouter builds the gin engine. mcpHandler is mounted at /mcp; a nil
// handler leaves the route out.
func NewRouter(ops Operations, mcpHandler http.Handler) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	h := NewHandler(ops)
	engine.GET("/health", h.Health)

	if mcpHandler != nil {
		engine.Any("/mcp", gin.WrapH(mcpHandler))
	}

	v1 := engine.Group("/api/v1")
	{
		v1.GET("/alerts/:state", h.Alerts)
		v1.GET("/forecast", h.Forecast)
	}

	return engine
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Alerts returns the active alerts text for the :state path parameter
func (h *Handler) Alerts(c *gin.Context) {
	c.String(http.StatusOK, h.ops.GetAlerts(c.Request.Context(), c.Param("state")))
}

// Forecast returns the forecast text for the latitude and longitude query
// parameters, or 400 when either does not parse
func (h *Handler) Forecast(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid latitude: %q", c.Query("latitude"))
		return
	}
	lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid longitude: %q", c.Query("longitude"))
		return
	}

	c.String(http.StatusOK, h.ops.GetForecast(c.Request.Context(), lat, lon))
}

// requestLogger logs each request through logrus
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request handled")
	}
}
