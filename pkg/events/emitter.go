// Package events handles event emission for resolution outcomes
package events

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// ResolutionEvent is published after every resolution attempt so downstream
// consumers can audit which specs resolve, how long they take and why they
// fail.
type ResolutionEvent struct {
	EventType     string              `json:"event_type"` // resolution.succeeded | resolution.failed
	SchemaVersion string              `json:"schema_version"`
	RequestID     string              `json:"request_id,omitempty"`
	ResolverType  models.ResolverType `json:"resolver_type"`
	DependsOn     []string            `json:"depends_on,omitempty"`
	DurationMs    int64               `json:"duration_ms"`
	Cached        bool                `json:"cached"`
	Error         string              `json:"error,omitempty"`
	Timestamp     time.Time           `json:"timestamp"`
}

// Emitter publishes resolution events. A nil *Emitter is a no-op so callers
// don't have to branch on whether events are enabled.
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitResolved emits a resolution.succeeded event
func (e *Emitter) EmitResolved(ctx context.Context, requestID string, spec *models.ResolverSpec, duration time.Duration, cached bool) {
	if e == nil {
		return
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitResolved")
	defer span.End()

	e.publish(ctx, ResolutionEvent{
		EventType:     "resolution.succeeded",
		SchemaVersion: SchemaVersion,
		RequestID:     requestID,
		ResolverType:  spec.Type,
		DependsOn:     spec.DependsOn,
		DurationMs:    duration.Milliseconds(),
		Cached:        cached,
		Timestamp:     time.Now().UTC(),
	})
}

// EmitFailed emits a resolution.failed event
func (e *Emitter) EmitFailed(ctx context.Context, requestID string, spec *models.ResolverSpec, duration time.Duration, resolveErr error) {
	if e == nil {
		return
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitFailed")
	defer span.End()

	e.publish(ctx, ResolutionEvent{
		EventType:     "resolution.failed",
		SchemaVersion: SchemaVersion,
		RequestID:     requestID,
		ResolverType:  spec.Type,
		DependsOn:     spec.DependsOn,
		DurationMs:    duration.Milliseconds(),
		Error:         resolveErr.Error(),
		Timestamp:     time.Now().UTC(),
	})
}

// publish is fire-and-forget: a broker outage must not fail resolutions.
func (e *Emitter) publish(ctx context.Context, event ResolutionEvent) {
	if err := e.producer.Publish(ctx, event.RequestID, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Errorf("Failed to emit %s event", event.EventType)
	}
}
