package pipeline

import (
	"fmt"
	"time"
)

// IDProvider generates event identities. Implementations must be unique and
// time-ordered across concurrent requests without coordination.
type IDProvider interface {
	ID() (string, error)
}

// Assembler builds TrackingEvents from decoded readings. Stateless apart
// from identity and clock access; safe for concurrent use.
type Assembler struct {
	ids IDProvider
	now func() time.Time
}

func NewAssembler(ids IDProvider) *Assembler {
	return &Assembler{ids: ids, now: time.Now}
}

// Assemble normalizes both geo axes, stamps identity and server time, and
// copies the sensor values through verbatim. The reading's n_s flag drives
// the latitude axis and e_w the longitude axis, never the other way around.
func (a *Assembler) Assemble(r SensorReading, simID string) (TrackingEvent, error) {
	if r.NS != North && r.NS != South {
		return TrackingEvent{}, fmt.Errorf("%w: latitude hemisphere %q", ErrInvalidGeo, r.NS)
	}
	if r.EW != East && r.EW != West {
		return TrackingEvent{}, fmt.Errorf("%w: longitude hemisphere %q", ErrInvalidGeo, r.EW)
	}

	lat, err := ToDecimalDegrees(r.DegLat, r.MinLat, r.NS)
	if err != nil {
		return TrackingEvent{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := ToDecimalDegrees(r.DegLong, r.MinLong, r.EW)
	if err != nil {
		return TrackingEvent{}, fmt.Errorf("longitude: %w", err)
	}

	id, err := a.ids.ID()
	if err != nil {
		return TrackingEvent{}, fmt.Errorf("generate event id: %w", err)
	}

	return TrackingEvent{
		EventID:     id,
		EventTime:   a.now().UTC(),
		SimID:       simID,
		Temperature: r.Temp,
		Humidity:    r.Hum,
		Latitude:    lat,
		Longitude:   lon,
	}, nil
}
