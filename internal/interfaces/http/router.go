package http

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/bgc-scaffold/internal/config"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/bgc-scaffold/internal/interfaces/http/handlers"
	"github.com/turtacn/bgc-scaffold/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and middleware settings of the route
// tree.  Nil handlers leave their routes unmounted.
type RouterConfig struct {
	AnalysisHandler *handlers.AnalysisHandler
	HealthHandler   *handlers.HealthHandler

	Logging     middleware.LoggingConfig
	MaxBodySize int64

	// MetricsCollector, when set, is served on MetricsPath.
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string
	Metrics          *prometheus.PipelineMetrics

	Logger logging.Logger
}

// NewRouter builds the gin engine: global middleware, the probes, metrics
// and the v1 API group.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogging(cfg.Logger, cfg.Logging, cfg.Metrics))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}

	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = config.DefaultMetricsPath
		}
		r.GET(path, gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	api := r.Group("/api/v1")
	registerAnalysisRoutes(api, cfg.AnalysisHandler, cfg.MaxBodySize)
	return r
}

func registerAnalysisRoutes(r *gin.RouterGroup, h *handlers.AnalysisHandler, maxBody int64) {
	if h == nil {
		return
	}
	r.POST("/analyses", middleware.BodyLimit(maxBody), h.Analyze)
	r.GET("/registry", h.Registry)
	r.GET("/substrates", h.Substrates)
	r.GET("/limits", h.Limits)
}

//Personal.AI order the ending
