package zmanchart

import (
	"errors"
	"time"
)

// Place is a single geocoding hit for a free-text query.
type Place struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// ErrPlaceNotFound signals that the geocoder matched nothing for the query.
var ErrPlaceNotFound = errors.New("no place matched the query")

// TransientError marks geocoder failures that may succeed on a later
// request (timeouts, rate limiting, upstream 5xx). The builder treats it
// exactly like not-found; the distinction exists for logs and tests.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient geocoder failure: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// ResolvedLocation is a geocoded, timezone-aware place. TimezoneID may be
// empty when the coordinates fall outside any known zone (open ocean); the
// record is still valid, but zmanim cannot be computed for it.
type ResolvedLocation struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
	TimezoneID  string
}

// Request captures the payload accepted by the comparison service.
type Request struct {
	Locations string   `json:"locations"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Zmanim    []string `json:"zmanim"`
}

// Response is serialized back to API consumers. ChartHTML is omitted on the
// data-only endpoint.
type Response struct {
	ChartHTML string            `json:"chartHtml,omitempty"`
	Chart     ChartSpec         `json:"chart"`
	Skipped   []SkippedLocation `json:"skipped,omitempty"`
}

// SkippedLocation reports a query that contributed no data and why. Skips
// never fail the request.
type SkippedLocation struct {
	Query  string `json:"query"`
	Reason string `json:"reason"`
}

// Skip reasons surfaced in the diagnostic report.
const (
	SkipEmptyQuery       = "empty_query"
	SkipNotFound         = "not_found"
	SkipTransientFailure = "transient_geocode_failure"
	SkipNoTimezone       = "timezone_unresolved"
)

// NumericSeriesPoint is one charted value. Y is nil when the zman is
// undefined for that date; a Y of exactly zero is legitimate midnight, so
// presence is tracked by the pointer, never by truthiness.
type NumericSeriesPoint struct {
	X         string   `json:"x"`
	Y         *float64 `json:"y"`
	HoverText string   `json:"hoverText"`
}

// ChartSeries is one line on the chart: a single zman at a single location.
type ChartSeries struct {
	Label  string               `json:"label"`
	Points []NumericSeriesPoint `json:"points"`
}

// AxisTick labels one y-axis position.
type AxisTick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// ChartSpec is the renderer-agnostic chart artifact.
type ChartSpec struct {
	Series     []ChartSeries `json:"series"`
	YAxisTicks []AxisTick    `json:"yAxisTicks"`
}

// Dates returns the union of x values across all series in first-seen
// order. Renderers with a shared category axis use this.
func (s ChartSpec) Dates() []string {
	var dates []string
	seen := make(map[string]struct{})
	for _, series := range s.Series {
		for _, pt := range series.Points {
			if _, ok := seen[pt.X]; ok {
				continue
			}
			seen[pt.X] = struct{}{}
			dates = append(dates, pt.X)
		}
	}
	return dates
}

// SeriesStore accumulates computed zmanim keyed by canonical display name,
// then date string, then zman id. Both outer levels preserve insertion
// order, which drives chart ordering. A nil value records a zman that is
// undefined for that date (polar seasons); an absent key records a date the
// location never resolved for.
type SeriesStore struct {
	order      []string
	byLocation map[string]*locationSeries
}

type locationSeries struct {
	dates  []string
	byDate map[string]map[string]*time.Time
}

// NewSeriesStore returns an empty store.
func NewSeriesStore() *SeriesStore {
	return &SeriesStore{byLocation: make(map[string]*locationSeries)}
}

// Put records a value. Two raw queries geocoding to the same display name
// merge into one location entry.
func (s *SeriesStore) Put(displayName, date, zmanID string, value *time.Time) {
	loc, ok := s.byLocation[displayName]
	if !ok {
		loc = &locationSeries{byDate: make(map[string]map[string]*time.Time)}
		s.byLocation[displayName] = loc
		s.order = append(s.order, displayName)
	}
	day, ok := loc.byDate[date]
	if !ok {
		day = make(map[string]*time.Time)
		loc.byDate[date] = day
		loc.dates = append(loc.dates, date)
	}
	day[zmanID] = value
}

// Locations lists display names in insertion order.
func (s *SeriesStore) Locations() []string {
	return s.order
}

// Dates lists the date strings recorded for a location in insertion order.
func (s *SeriesStore) Dates(displayName string) []string {
	if loc, ok := s.byLocation[displayName]; ok {
		return loc.dates
	}
	return nil
}

// Value fetches a recorded zman. The second return is false when the
// (location, date, zman) cell was never written.
func (s *SeriesStore) Value(displayName, date, zmanID string) (*time.Time, bool) {
	loc, ok := s.byLocation[displayName]
	if !ok {
		return nil, false
	}
	day, ok := loc.byDate[date]
	if !ok {
		return nil, false
	}
	value, ok := day[zmanID]
	return value, ok
}
