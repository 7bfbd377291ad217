package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrDecode marks payloads that cannot be turned into a SensorReading.
var ErrDecode = errors.New("bad device payload")

// SensorReading is the parsed device command, before geo normalization.
type SensorReading struct {
	Temp    float64
	Hum     float64
	DegLat  float64
	MinLat  float64
	DegLong float64
	MinLong float64
	NS      Hemisphere
	EW      Hemisphere
}

// rawReading mirrors the wire field names burned into the device firmware.
// Pointers distinguish a missing field from a zero value.
type rawReading struct {
	Temp    *float64 `json:"temp"`
	Hum     *float64 `json:"hum"`
	DegLat  *float64 `json:"deglat"`
	MinLat  *float64 `json:"minlat"`
	DegLong *float64 `json:"deglong"`
	MinLong *float64 `json:"minlong"`
	NS      *string  `json:"n_s"`
	EW      *string  `json:"e_w"`
}

var quoteRewriter = strings.NewReplacer(">", `"`, "<", `"`)

// DecodeCommand parses a raw device command into a SensorReading.
//
// The SIM transport cannot carry literal quote characters, so the firmware
// sends '>' or '<' in their place. The rewrite is unconditional and
// character-level: a legitimate '>' inside a value is indistinguishable from
// a delimiter. Known protocol limitation, kept for device compatibility.
func DecodeCommand(raw string) (SensorReading, error) {
	s := strings.TrimSpace(quoteRewriter.Replace(raw))
	if !strings.HasPrefix(s, "{") {
		// Firmware sends the field list without enclosing braces.
		s = "{" + s + "}"
	}

	var rr rawReading
	if err := json.Unmarshal([]byte(s), &rr); err != nil {
		return SensorReading{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	for name, p := range map[string]*float64{
		"temp":    rr.Temp,
		"hum":     rr.Hum,
		"deglat":  rr.DegLat,
		"minlat":  rr.MinLat,
		"deglong": rr.DegLong,
		"minlong": rr.MinLong,
	} {
		if p == nil {
			return SensorReading{}, fmt.Errorf("%w: missing field %q", ErrDecode, name)
		}
	}
	if rr.NS == nil {
		return SensorReading{}, fmt.Errorf("%w: missing field %q", ErrDecode, "n_s")
	}
	if rr.EW == nil {
		return SensorReading{}, fmt.Errorf("%w: missing field %q", ErrDecode, "e_w")
	}

	ns := Hemisphere(*rr.NS)
	if ns != North && ns != South {
		return SensorReading{}, fmt.Errorf("%w: n_s must be N or S, got %q", ErrDecode, *rr.NS)
	}
	ew := Hemisphere(*rr.EW)
	if ew != East && ew != West {
		return SensorReading{}, fmt.Errorf("%w: e_w must be E or W, got %q", ErrDecode, *rr.EW)
	}

	return SensorReading{
		Temp:    *rr.Temp,
		Hum:     *rr.Hum,
		DegLat:  *rr.DegLat,
		MinLat:  *rr.MinLat,
		DegLong: *rr.DegLong,
		MinLong: *rr.MinLong,
		NS:      ns,
		EW:      ew,
	}, nil
}
