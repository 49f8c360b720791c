package kafka

import (
	"context"

	"github.com/turtacn/bgc-scaffold/internal/config"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/pkg/types/analysis"
)

// Publisher announces finished analyses.
type Publisher interface {
	PublishCompleted(ctx context.Context, r *analysis.Result) error
	Close() error
}

type eventPublisher struct {
	producer *Producer
	topic    string
	logger   logging.Logger
}

// NewPublisher builds the publisher described by cfg.  A disabled config
// yields a publisher that drops every event.
func NewPublisher(cfg config.EventsConfig, logger logging.Logger) (Publisher, error) {
	if !cfg.Enabled {
		return NewNoopPublisher(), nil
	}
	p, err := NewProducer(cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewEventPublisher(p, cfg.Topic, logger), nil
}

// NewEventPublisher publishes through an existing producer.
func NewEventPublisher(p *Producer, topic string, logger logging.Logger) Publisher {
	return &eventPublisher{producer: p, topic: topic, logger: logging.OrNop(logger)}
}

// PublishCompleted sends the completion event of r, keyed by its run ID so
// that every event of one run lands on one partition.
func (e *eventPublisher) PublishCompleted(ctx context.Context, r *analysis.Result) error {
	ev := analysis.NewCompletedEvent(r)
	env, err := NewEventEnvelope(ev.Type, ev)
	if err != nil {
		return err
	}
	msg, err := env.ToMessage(e.topic, r.RunID)
	if err != nil {
		return err
	}
	if err := e.producer.Publish(ctx, msg); err != nil {
		return err
	}
	e.logger.Debug("Completion event published", logging.RunID(r.RunID), logging.String("event_id", env.EventID))
	return nil
}

func (e *eventPublisher) Close() error {
	return e.producer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher drops every event.
func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) PublishCompleted(context.Context, *analysis.Result) error { return nil }
func (noopPublisher) Close() error                                             { return nil }

//Personal.AI order the ending
