package geocode

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the provider cannot resolve an address,
// whether because of a timeout, a transport failure, or an empty result.
// Callers treat it as a soft failure and continue without an address.
var ErrUnavailable = errors.New("reverse geocoding unavailable")

// Resolver converts coordinates into a human-readable address.
type Resolver interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// NopResolver always reports ErrUnavailable. Used when no provider is
// configured.
type NopResolver struct{}

func (NopResolver) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	return "", ErrUnavailable
}
