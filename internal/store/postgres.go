package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"simtrack-svr/internal/pipeline"
)

const schema = `
CREATE TABLE IF NOT EXISTS tracking_events (
	event_id    TEXT PRIMARY KEY,
	event_time  TIMESTAMPTZ NOT NULL,
	sim_id      TEXT NOT NULL,
	temperature DOUBLE PRECISION NOT NULL,
	humidity    DOUBLE PRECISION NOT NULL,
	latitude    DOUBLE PRECISION NOT NULL,
	longitude   DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS tracking_events_sim_time_idx
	ON tracking_events (sim_id, event_time DESC);`

// Postgres stores tracking events in a postgres table.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ EventStore = (*Postgres)(nil)

func NewPostgres(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Save(ctx context.Context, ev pipeline.TrackingEvent) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO tracking_events
			(event_id, event_time, sim_id, temperature, humidity, latitude, longitude)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ev.EventID, ev.EventTime, ev.SimID,
		ev.Temperature, ev.Humidity, ev.Latitude, ev.Longitude)
	if err != nil {
		return fmt.Errorf("insert tracking event: %w", err)
	}
	return nil
}

func (p *Postgres) BySimID(ctx context.Context, simID string) ([]pipeline.TrackingEvent, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT event_id, event_time, sim_id, temperature, humidity, latitude, longitude
		 FROM tracking_events
		 WHERE sim_id = $1
		 ORDER BY event_time DESC, event_id DESC`, simID)
	if err != nil {
		return nil, fmt.Errorf("query tracking events: %w", err)
	}
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (pipeline.TrackingEvent, error) {
		var ev pipeline.TrackingEvent
		err := row.Scan(&ev.EventID, &ev.EventTime, &ev.SimID,
			&ev.Temperature, &ev.Humidity, &ev.Latitude, &ev.Longitude)
		return ev, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan tracking events: %w", err)
	}
	return events, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}
