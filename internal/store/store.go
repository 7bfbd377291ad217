package store

import (
	"context"

	"simtrack-svr/internal/pipeline"
)

// EventStore is the persistence collaborator for tracking events. Writes are
// awaited: a nil error from Save means the event is durably stored.
type EventStore interface {
	Save(ctx context.Context, ev pipeline.TrackingEvent) error
	// BySimID returns all events for the SIM, newest first. An unknown
	// simID is not an error and yields an empty result.
	BySimID(ctx context.Context, simID string) ([]pipeline.TrackingEvent, error)
}
