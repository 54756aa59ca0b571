package tz

import (
	"fmt"

	"github.com/ringsaturn/tzf"
)

// Finder maps coordinates to IANA timezone identifiers using tzf's embedded
// timezone boundary data. Lookups are pure in-memory polygon queries and
// safe for concurrent use.
type Finder struct {
	inner tzf.F
}

// NewFinder loads the embedded timezone data. Construction is expensive;
// build one per process.
func NewFinder() (*Finder, error) {
	inner, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("load timezone data: %w", err)
	}
	return &Finder{inner: inner}, nil
}

// TimezoneID returns the IANA identifier covering the coordinates, or empty
// when none does (open ocean).
func (f *Finder) TimezoneID(lat, lng float64) string {
	return f.inner.GetTimezoneName(lng, lat)
}
