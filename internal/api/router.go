// Package api is the HTTP surface of portbounced.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitalvas/portbounce/pkg/log"
	"github.com/vitalvas/portbounce/pkg/metrics"
)

// RouterOptions selects the API version and the metrics endpoint
type RouterOptions struct {
	APIVersion string
	// MetricsPath is left unrouted when empty or when Gatherer is nil
	MetricsPath string
	Gatherer    prometheus.Gatherer
}

// NewEngine creates a gin engine with the portbounced middleware chain
func NewEngine(logger log.Logger, m *metrics.HTTPMetrics) *gin.Engine {
	engine := gin.New()
	engine.Use(
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		MetricsMiddleware(m),
		RecoveryMiddleware(logger),
	)
	return engine
}

// SetupRouter registers the routes
func SetupRouter(engine *gin.Engine, h *CoAHandler, opts RouterOptions) {
	engine.GET("/health", h.HandleHealth)

	v := engine.Group("/api/" + opts.APIVersion)
	{
		v.POST("/coa", h.HandleCoA)
	}

	if opts.MetricsPath != "" && opts.Gatherer != nil {
		engine.GET(opts.MetricsPath, gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse("Not found"))
	})
}
