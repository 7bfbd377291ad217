// Package dispatcher orchestrates the ingestion pipeline: decode the raw
// command, assemble the tracking event, persist it, then fan out to the
// latest-position cache and the live feed.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"simtrack-svr/internal/link"
	"simtrack-svr/internal/observability"
	"simtrack-svr/internal/pipeline"
	"simtrack-svr/internal/store"
	"simtrack-svr/internal/utilities"
)

type Service struct {
	store  store.EventStore
	cache  *store.Cache
	asm    *pipeline.Assembler
	logger *slog.Logger
}

func New(st store.EventStore, cache *store.Cache, asm *pipeline.Assembler, lg *slog.Logger) *Service {
	return &Service{store: st, cache: cache, asm: asm, logger: lg}
}

// Ingest runs one raw command through decode -> assemble -> store. The store
// write is awaited, so a nil error means the event is durable. No write is
// issued when decode or assembly fails.
func (s *Service) Ingest(ctx context.Context, simID, command string) (pipeline.TrackingEvent, error) {
	observability.IngestRequests.Inc()
	start := time.Now()

	utilities.CreateLog("RAWCOMMANDS", simID+" "+command)

	reading, err := pipeline.DecodeCommand(command)
	if err != nil {
		observability.DecodeErrors.Inc()
		return pipeline.TrackingEvent{}, err
	}

	ev, err := s.asm.Assemble(reading, simID)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidGeo) {
			observability.GeoErrors.Inc()
		}
		return pipeline.TrackingEvent{}, err
	}

	if err := s.store.Save(ctx, ev); err != nil {
		observability.StoreErrors.Inc()
		return pipeline.TrackingEvent{}, fmt.Errorf("save event: %w", err)
	}
	observability.EventsStored.Inc()
	observability.ObserveIngestLatency(start)

	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, ev); err != nil {
			s.logger.Warn("latest cache update failed", "sim_id", simID, "err", err)
		}
	}
	link.SendEvent(&ev)

	s.logger.Info("event stored", "sim_id", simID, "event_id", ev.EventID,
		"lat", ev.Latitude, "lon", ev.Longitude)
	return ev, nil
}

// History returns all events for the SIM, newest first. Unknown SIMs yield
// an empty list.
func (s *Service) History(ctx context.Context, simID string) ([]pipeline.TrackingEvent, error) {
	events, err := s.store.BySimID(ctx, simID)
	if err != nil {
		observability.QueryErrors.Inc()
		return nil, fmt.Errorf("query events: %w", err)
	}
	return events, nil
}

// Latest returns the most recent event for the SIM, trying the redis cache
// first and falling back to the head of the stored history.
func (s *Service) Latest(ctx context.Context, simID string) (pipeline.TrackingEvent, bool, error) {
	if s.cache != nil {
		ev, ok, err := s.cache.Latest(ctx, simID)
		if err != nil {
			s.logger.Warn("latest cache lookup failed", "sim_id", simID, "err", err)
		} else if ok {
			observability.CacheHits.Inc()
			return ev, true, nil
		}
	}
	observability.CacheMisses.Inc()

	events, err := s.History(ctx, simID)
	if err != nil {
		return pipeline.TrackingEvent{}, false, err
	}
	if len(events) == 0 {
		return pipeline.TrackingEvent{}, false, nil
	}
	return events[0], true, nil
}
