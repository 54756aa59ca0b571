package zmanchart

import (
	"context"
	"log/slog"
)

// Geocoder resolves a free-text place query to coordinates and a canonical
// display name. Implementations return ErrPlaceNotFound or *TransientError.
type Geocoder interface {
	Search(ctx context.Context, query string) (Place, error)
}

// TimezoneFinder maps coordinates to an IANA timezone identifier, or empty
// when none applies.
type TimezoneFinder interface {
	TimezoneID(lat, lng float64) string
}

// Resolver turns a raw place query into a timezone-aware location record.
// It performs exactly one geocoder call per invocation and does not retry;
// the caller decides what a failure means. Queries are expected to arrive
// pre-trimmed.
type Resolver struct {
	geocoder Geocoder
	tzFinder TimezoneFinder
	logger   *slog.Logger
}

// NewResolver wires the resolver with its collaborators.
func NewResolver(geocoder Geocoder, tzFinder TimezoneFinder, logger *slog.Logger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		tzFinder: tzFinder,
		logger:   logger.With("component", "zmanchart.resolver"),
	}
}

// Resolve geocodes the query and attaches a timezone. A missing timezone is
// not an error: the record comes back with an empty TimezoneID and the
// caller skips zmanim computation for it.
func (r *Resolver) Resolve(ctx context.Context, query string) (ResolvedLocation, error) {
	place, err := r.geocoder.Search(ctx, query)
	if err != nil {
		return ResolvedLocation{}, err
	}

	tzID := r.tzFinder.TimezoneID(place.Latitude, place.Longitude)
	if tzID == "" {
		r.logger.Warn("no timezone for coordinates", "query", query, "lat", place.Latitude, "lng", place.Longitude)
	}

	return ResolvedLocation{
		Latitude:    place.Latitude,
		Longitude:   place.Longitude,
		DisplayName: place.DisplayName,
		TimezoneID:  tzID,
	}, nil
}
