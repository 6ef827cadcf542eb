package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrAddressNotFound is returned by Geocoder implementations when the
// provider produced no coordinates for the address.
var ErrAddressNotFound = errors.New("address could not be geocoded")

// Geocoder resolves a free-form delivery address into coordinates.
type Geocoder interface {
	// Geocode returns the coordinates for an address.
	// Returns ErrAddressNotFound when the provider has no match; the
	// caller decides whether to skip the order or fall back to a default
	// location.
	Geocode(ctx context.Context, address string) (kernel.GeoPoint, error)
}
