package events

import (
	"context"

	"github.com/rs/zerolog"
)

// Publisher delivers events to the external event bus. Implementations must
// not block the calling service on consumer failures.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// LogPublisher writes events to the structured log. It stands in for the real
// bus in development and keeps the emission path exercised.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a publisher backed by the given logger
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event
func (p *LogPublisher) Publish(_ context.Context, event Event) {
	p.logger.Info().
		Str("eventId", event.ID).
		Str("eventType", event.Type).
		Str("tenantId", event.TenantID).
		Interface("data", event.Data).
		Msg("Domain event published")
}

// NoopPublisher discards events
type NoopPublisher struct{}

// Publish does nothing
func (NoopPublisher) Publish(context.Context, Event) {}
