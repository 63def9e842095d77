package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/crypto_pulse/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RouteOptions carries the non-service pieces the routes need.
type RouteOptions struct {
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// APIMiddleware is applied to the /api/v1 group (rate limiting).
	APIMiddleware []gin.HandlerFunc
	// AllowedOrigins restricts websocket upgrades; empty means same-origin only.
	AllowedOrigins []string
	// StreamPingInterval defaults to 30s.
	StreamPingInterval time.Duration
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	setupAPIV1Routes(r, services, opts)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	v1 := r.Group("/api/v1", opts.APIMiddleware...)

	registerCurrencyRoutes(v1, services.Chart)
	registerChartRoutes(v1, services.Chart, newStreamHandler(services.Chart, opts.AllowedOrigins, opts.StreamPingInterval))
	registerMapRoutes(v1, services.Map)
}
