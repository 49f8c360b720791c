// API server entry point for bgc-scaffold.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/bgc-scaffold/internal/application/analysis"
	"github.com/turtacn/bgc-scaffold/internal/config"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/bgc-scaffold/internal/interfaces/http"
	"github.com/turtacn/bgc-scaffold/internal/interfaces/http/handlers"
	"github.com/turtacn/bgc-scaffold/internal/interfaces/http/middleware"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file (empty uses defaults and BGCS_* env)")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	if err := run(*configPath, *port); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, port int) error {
	opts := []config.LoadOption{config.WithDotEnv()}
	if configPath != "" {
		opts = append(opts, config.WithConfigPath(configPath))
	}
	if port > 0 {
		opts = append(opts, config.WithOverrides(map[string]interface{}{"server.port": port}))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: cfg.Log.OutputPaths,
	})
	if err != nil {
		return err
	}
	logging.SetDefault(logger)
	logger.Info("starting bgc-scaffold API server",
		logging.String("version", version),
		logging.String("host", cfg.Server.Host),
		logging.Int("port", cfg.Server.Port))

	var (
		collector prometheus.MetricsCollector
		metrics   *prometheus.PipelineMetrics
	)
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: cfg.Metrics.Namespace}, logger)
		if err != nil {
			return err
		}
		metrics = prometheus.NewPipelineMetrics(collector)
	}

	svc, err := analysis.Build(cfg, metrics, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil {
			logger.Warn("analysis service close failed", logging.Err(cerr))
		}
	}()

	if configPath != "" {
		err := config.Watch(configPath, func(c *config.Config) {
			svc.SetLimits(analysis.LimitsFromConfig(c.Limits))
			logger.Info("limits reloaded",
				logging.Int("max_plans", c.Limits.MaxPlans),
				logging.Int("max_scaffolds", c.Limits.MaxScaffolds))
		}, func(err error) {
			logger.Warn("config reload rejected", logging.Err(err))
		})
		if err != nil {
			logger.Warn("config watch disabled", logging.Err(err))
		}
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := httpserver.NewRouter(httpserver.RouterConfig{
		AnalysisHandler:  handlers.NewAnalysisHandler(svc, logger),
		HealthHandler:    handlers.NewHealthHandler(version, handlers.CheckerFunc{ComponentName: "engine", Fn: svc.Ready}),
		Logging:          middleware.DefaultLoggingConfig(),
		MaxBodySize:      cfg.Server.MaxBodySize,
		MetricsCollector: collector,
		MetricsPath:      cfg.Metrics.Path,
		Metrics:          metrics,
		Logger:           logger,
	})
	srv := httpserver.NewServer(cfg.Server, router, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("signal received, draining", logging.Duration("timeout", cfg.Server.ShutdownTimeout))
	return srv.Stop(context.Background())
}

//Personal.AI order the ending
