package pipeline

import (
	"errors"
	"fmt"
)

// ErrInvalidGeo marks degree/minute values outside physically valid ranges.
var ErrInvalidGeo = errors.New("invalid geo input")

// Hemisphere is the device-reported N/S (latitude) or E/W (longitude) flag.
type Hemisphere string

const (
	North Hemisphere = "N"
	South Hemisphere = "S"
	East  Hemisphere = "E"
	West  Hemisphere = "W"
)

// ToDecimalDegrees converts a sextant-style deg+min pair into signed decimal
// degrees: deg + min/60, negative for the southern and western hemispheres.
// deg must be non-negative and min must lie in [0, 60).
func ToDecimalDegrees(deg, min float64, h Hemisphere) (float64, error) {
	if deg < 0 {
		return 0, fmt.Errorf("%w: negative degrees %v", ErrInvalidGeo, deg)
	}
	if min < 0 || min >= 60 {
		return 0, fmt.Errorf("%w: minutes %v outside [0,60)", ErrInvalidGeo, min)
	}

	dd := deg + min/60
	switch h {
	case North, East:
		return dd, nil
	case South, West:
		return -dd, nil
	}
	return 0, fmt.Errorf("%w: unknown hemisphere %q", ErrInvalidGeo, h)
}
