// Package common holds the envelope, health and event types shared by the
// HTTP API, the CLI and the event stream.
package common

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Timestamp is a UTC instant that serializes as RFC 3339 with nanoseconds.
type Timestamp time.Time

// Now is the current instant.
func Now() Timestamp { return Timestamp(time.Now().UTC()) }

// Time converts back to time.Time.
func (t Timestamp) Time() time.Time { return time.Time(t) }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts RFC 3339 with or without fractional seconds.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed.UTC())
	return nil
}

// ─────────────────────────────────────────────────────────────
// API envelope
// ─────────────────────────────────────────────────────────────

// ErrorDetail is the error member of a failed response.  Code is a
// pkg/errors code such as LEDGER_003.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// APIResponse wraps every HTTP response body.
type APIResponse[T any] struct {
	Success   bool         `json:"success"`
	Data      T            `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	RequestID string       `json:"request_id"`
	Timestamp Timestamp    `json:"timestamp"`
}

// NewSuccessResponse wraps data.
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{Success: true, Data: data, Timestamp: Now()}
}

// NewErrorResponse wraps a failure.
func NewErrorResponse(detail *ErrorDetail) APIResponse[any] {
	return APIResponse[any]{Error: detail, Timestamp: Now()}
}

// ─────────────────────────────────────────────────────────────
// health
// ─────────────────────────────────────────────────────────────

type HealthStatus string

const (
	HealthUp   HealthStatus = "up"
	HealthDown HealthStatus = "down"
)

// ComponentHealth is the probe result of one dependency.
type ComponentHealth struct {
	Name    string        `json:"name"`
	Status  HealthStatus  `json:"status"`
	Latency time.Duration `json:"latency"`
	Message string        `json:"message,omitempty"`
}

// ─────────────────────────────────────────────────────────────
// events
// ─────────────────────────────────────────────────────────────

// BaseEvent carries the identity of one published event.  Subject is the
// run the event is about.
type BaseEvent struct {
	EventID    string    `json:"event_id"`
	OccurredAt Timestamp `json:"occurred_at"`
	Subject    string    `json:"subject"`
}

// NewBaseEvent stamps a fresh event about subject.
func NewBaseEvent(subject string) BaseEvent {
	return BaseEvent{EventID: uuid.NewString(), OccurredAt: Now(), Subject: subject}
}

// ContextKey keys request-scoped values.
type ContextKey string

const ContextKeyRequestID ContextKey = "request_id"

//Personal.AI order the ending
