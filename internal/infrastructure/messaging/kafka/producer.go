// Package kafka publishes analysis events to Kafka.
package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/bgc-scaffold/internal/config"
	"github.com/turtacn/bgc-scaffold/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
)

var (
	ErrProducerClosed = errors.New(errors.ErrCodeMessagingError, "producer closed")
)

const (
	defaultMaxAttempts     = 3
	defaultWriteTimeout    = 10 * time.Second
	defaultMaxMessageBytes = 1024 * 1024
)

// Message is one record to publish.
type Message struct {
	Topic     string
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// ProducerMetrics holds producer counters.
type ProducerMetrics struct {
	MessagesSent   atomic.Int64
	MessagesFailed atomic.Int64
	BytesSent      atomic.Int64
}

// WriterInterface abstracts kafka.Writer for testing.
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes messages through a kafka.Writer.
type Producer struct {
	writer          WriterInterface
	logger          logging.Logger
	maxMessageBytes int
	closed          atomic.Bool
	metrics         *ProducerMetrics
}

// NewProducer builds a producer for the configured brokers.  Messages are
// routed by a hash of their key.
func NewProducer(cfg config.EventsConfig, logger logging.Logger) (*Producer, error) {
	if err := ValidateProducerConfig(cfg); err != nil {
		return nil, err
	}
	compression, err := compressionCodec(cfg.Compression)
	if err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		MaxAttempts:  defaultMaxAttempts,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: defaultWriteTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		Compression:  compression,
	}
	return newProducer(writer, logger), nil
}

func newProducer(w WriterInterface, logger logging.Logger) *Producer {
	return &Producer{
		writer:          w,
		logger:          logging.OrNop(logger).Named("kafka"),
		maxMessageBytes: defaultMaxMessageBytes,
		metrics:         &ProducerMetrics{},
	}
}

// Publish writes one message synchronously.
func (p *Producer) Publish(ctx context.Context, msg *Message) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}
	if msg.Topic == "" {
		return errors.New(errors.ErrCodeValidation, "topic required")
	}
	if len(msg.Value) == 0 {
		return errors.New(errors.ErrCodeValidation, "value required")
	}
	if len(msg.Value) > p.maxMessageBytes {
		return errors.Newf(errors.ErrCodeValidation, "message of %d bytes exceeds %d", len(msg.Value), p.maxMessageBytes)
	}

	start := time.Now()
	if err := p.writer.WriteMessages(ctx, toKafkaMessage(msg)); err != nil {
		p.metrics.MessagesFailed.Add(1)
		return errors.Wrap(err, errors.ErrCodeMessagingError, "publish failed").WithDetail(msg.Topic)
	}
	p.metrics.MessagesSent.Add(1)
	p.metrics.BytesSent.Add(int64(len(msg.Value)))

	p.logger.Debug("Message published",
		logging.String("topic", msg.Topic),
		logging.Duration("latency", time.Since(start)))
	return nil
}

// Sent is the number of messages written so far.
func (p *Producer) Sent() int64 { return p.metrics.MessagesSent.Load() }

// Failed is the number of rejected writes so far.
func (p *Producer) Failed() int64 { return p.metrics.MessagesFailed.Load() }

// Close flushes and closes the writer.  A second call is a no-op.
func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := p.writer.Close()
	p.logger.Info("Kafka producer closed", logging.Int64("sent", p.metrics.MessagesSent.Load()))
	return err
}

func toKafkaMessage(msg *Message) kafka.Message {
	headers := make([]kafka.Header, 0, len(msg.Headers))
	for k, v := range msg.Headers {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return kafka.Message{
		Topic:   msg.Topic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
		Time:    ts,
	}
}

func compressionCodec(name string) (kafka.Compression, error) {
	switch name {
	case "", "none":
		return kafka.Compression(0), nil
	case "gzip":
		return kafka.Gzip, nil
	case "snappy":
		return kafka.Snappy, nil
	case "lz4":
		return kafka.Lz4, nil
	case "zstd":
		return kafka.Zstd, nil
	default:
		return 0, errors.Newf(errors.ErrCodeConfigInvalid, "unknown compression codec %q", name)
	}
}

func ValidateProducerConfig(cfg config.EventsConfig) error {
	if len(cfg.Brokers) == 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "brokers required")
	}
	if cfg.RequiredAcks < -1 || cfg.RequiredAcks > 1 {
		return errors.Newf(errors.ErrCodeConfigInvalid, "required_acks must be -1, 0 or 1, got %d", cfg.RequiredAcks)
	}
	return nil
}

//Personal.AI order the ending
