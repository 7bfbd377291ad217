// Package identity provides the event ID generator.
package identity

import (
	"io"
	"time"

	"github.com/oklog/ulid/v2"
)

// Provider hands out globally unique, time-ordered identifiers.
type Provider interface {
	ID() (string, error)
}

type ulidProvider struct {
	entropy io.Reader
}

// NewULID returns a ULID provider. The monotonic entropy source keeps IDs
// strictly increasing even within the same millisecond, and is safe for
// concurrent use.
func NewULID() Provider {
	return &ulidProvider{entropy: ulid.DefaultEntropy()}
}

func (p *ulidProvider) ID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), p.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
