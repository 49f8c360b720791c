package analysis

import (
	"github.com/turtacn/bgc-scaffold/internal/config"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/cache/redis"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/prometheus"
)

// Build wires a Service from configuration.  The Redis cache and the Kafka
// publisher are connected only when enabled; metrics may be nil.
func Build(cfg *config.Config, metrics *prometheus.PipelineMetrics, log logging.Logger) (Service, error) {
	log = logging.OrNop(log)

	cache, err := redis.New(cfg.Cache, log)
	if err != nil {
		return nil, err
	}
	publisher, err := kafka.NewPublisher(cfg.Events, log)
	if err != nil {
		_ = cache.Close()
		return nil, err
	}

	opts := OptionsFromConfig(cfg)
	opts.Cache = cache
	opts.Publisher = publisher
	opts.Metrics = metrics
	opts.Logger = log

	svc, err := NewService(opts)
	if err != nil {
		_ = cache.Close()
		_ = publisher.Close()
		return nil, err
	}
	return svc, nil
}

//Personal.AI order the ending
