package pipeline

import "time"

// TrackingEvent is the persisted, query-ready record. Immutable once built;
// coordinates are signed decimal degrees, hemisphere folded into the sign.
type TrackingEvent struct {
	EventID     string    `json:"event_id"`
	EventTime   time.Time `json:"event_time"`
	SimID       string    `json:"sim_id"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
}
