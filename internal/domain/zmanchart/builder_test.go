package zmanchart

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	mu     sync.Mutex
	places map[string]Place
	errs   map[string]error
	calls  map[string]int
}

func (s *stubGeocoder) Search(ctx context.Context, query string) (Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[query]++
	if err, ok := s.errs[query]; ok {
		return Place{}, err
	}
	if place, ok := s.places[query]; ok {
		return place, nil
	}
	return Place{}, ErrPlaceNotFound
}

type stubTZFinder struct {
	fn func(lat, lng float64) string
}

func (s *stubTZFinder) TimezoneID(lat, lng float64) string {
	if s.fn == nil {
		return "UTC"
	}
	return s.fn(lat, lng)
}

type stubCalculator struct {
	fn func(lat, lng float64, tzID string, date time.Time, zmanID string) (time.Time, bool)
}

func (s *stubCalculator) Calculate(lat, lng float64, tzID string, date time.Time, zmanID string) (time.Time, bool) {
	if s.fn == nil {
		return date.Add(6 * time.Hour), true
	}
	return s.fn(lat, lng, tzID, date, zmanID)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBuilder(geo *stubGeocoder, tzFn func(lat, lng float64) string, calc *stubCalculator) *Builder {
	logger := newTestLogger()
	resolver := NewResolver(geo, &stubTZFinder{fn: tzFn}, logger)
	return NewBuilder(resolver, calc, 2, logger)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildPopulatesStoreInInputOrder(t *testing.T) {
	geo := &stubGeocoder{places: map[string]Place{
		"Jerusalem": {Latitude: 31.77, Longitude: 35.21, DisplayName: "Jerusalem, Israel"},
		"London":    {Latitude: 51.5, Longitude: -0.12, DisplayName: "London, England"},
	}}
	builder := newTestBuilder(geo, nil, &stubCalculator{})

	store, skipped, err := builder.Build(context.Background(),
		[]string{" Jerusalem", "London "}, date(2024, 6, 1), date(2024, 6, 2), []string{ZmanSunrise})
	require.NoError(t, err)
	require.Empty(t, skipped)

	require.Equal(t, []string{"Jerusalem, Israel", "London, England"}, store.Locations())
	require.Equal(t, []string{"2024-06-01", "2024-06-02"}, store.Dates("Jerusalem, Israel"))
	require.Equal(t, []string{"2024-06-01", "2024-06-02"}, store.Dates("London, England"))

	value, ok := store.Value("Jerusalem, Israel", "2024-06-01", ZmanSunrise)
	require.True(t, ok)
	require.NotNil(t, value)
}

func TestBuildResolvesEachLocationOnce(t *testing.T) {
	geo := &stubGeocoder{places: map[string]Place{
		"Jerusalem": {Latitude: 31.77, Longitude: 35.21, DisplayName: "Jerusalem, Israel"},
	}}
	builder := newTestBuilder(geo, nil, &stubCalculator{})

	_, _, err := builder.Build(context.Background(),
		[]string{"Jerusalem"}, date(2024, 6, 1), date(2024, 6, 30), []string{ZmanSunrise})
	require.NoError(t, err)

	// Thirty days, one geocoder call.
	require.Equal(t, 1, geo.calls["Jerusalem"])
}

func TestBuildSkipsFailedLocationsSilently(t *testing.T) {
	geo := &stubGeocoder{
		places: map[string]Place{
			"Jerusalem": {Latitude: 31.77, Longitude: 35.21, DisplayName: "Jerusalem, Israel"},
		},
		errs: map[string]error{
			"Qx7!!invalid": ErrPlaceNotFound,
			"Flakyville":   &TransientError{Err: context.DeadlineExceeded},
		},
	}
	builder := newTestBuilder(geo, nil, &stubCalculator{})

	store, skipped, err := builder.Build(context.Background(),
		[]string{"Jerusalem", "Qx7!!invalid", "Flakyville"},
		date(2024, 6, 1), date(2024, 6, 2), []string{ZmanSunrise})
	require.NoError(t, err)

	require.Equal(t, []string{"Jerusalem, Israel"}, store.Locations())
	require.Len(t, store.Dates("Jerusalem, Israel"), 2)

	require.Len(t, skipped, 2)
	require.Equal(t, SkippedLocation{Query: "Qx7!!invalid", Reason: SkipNotFound}, skipped[0])
	require.Equal(t, SkippedLocation{Query: "Flakyville", Reason: SkipTransientFailure}, skipped[1])
}

func TestBuildSkipsLocationWithoutTimezone(t *testing.T) {
	geo := &stubGeocoder{places: map[string]Place{
		"Point Nemo": {Latitude: -48.87, Longitude: -123.39, DisplayName: "Point Nemo"},
	}}
	builder := newTestBuilder(geo, func(lat, lng float64) string { return "" }, &stubCalculator{})

	store, skipped, err := builder.Build(context.Background(),
		[]string{"Point Nemo"}, date(2024, 6, 1), date(2024, 6, 1), []string{ZmanSunrise})
	require.NoError(t, err)

	require.Empty(t, store.Locations())
	require.Equal(t, []SkippedLocation{{Query: "Point Nemo", Reason: SkipNoTimezone}}, skipped)
}

func TestBuildMergesQueriesWithSameDisplayName(t *testing.T) {
	place := Place{Latitude: 31.77, Longitude: 35.21, DisplayName: "Jerusalem, Israel"}
	geo := &stubGeocoder{places: map[string]Place{
		"Jerusalem":    place,
		"jerusalem il": place,
	}}
	builder := newTestBuilder(geo, nil, &stubCalculator{})

	store, _, err := builder.Build(context.Background(),
		[]string{"Jerusalem", "jerusalem il"}, date(2024, 6, 1), date(2024, 6, 2), []string{ZmanSunrise})
	require.NoError(t, err)

	require.Equal(t, []string{"Jerusalem, Israel"}, store.Locations())
	require.Equal(t, []string{"2024-06-01", "2024-06-02"}, store.Dates("Jerusalem, Israel"))
}

func TestBuildRecordsUndefinedZmanAsNil(t *testing.T) {
	geo := &stubGeocoder{places: map[string]Place{
		"Longyearbyen": {Latitude: 78.22, Longitude: 15.64, DisplayName: "Longyearbyen, Svalbard"},
	}}
	calc := &stubCalculator{fn: func(lat, lng float64, tzID string, d time.Time, zmanID string) (time.Time, bool) {
		return time.Time{}, false
	}}
	builder := newTestBuilder(geo, nil, calc)

	store, _, err := builder.Build(context.Background(),
		[]string{"Longyearbyen"}, date(2024, 6, 21), date(2024, 6, 21), []string{ZmanAlos})
	require.NoError(t, err)

	value, ok := store.Value("Longyearbyen, Svalbard", "2024-06-21", ZmanAlos)
	require.True(t, ok)
	require.Nil(t, value)
}

func TestBuildSingleDayRange(t *testing.T) {
	geo := &stubGeocoder{places: map[string]Place{
		"Jerusalem": {Latitude: 31.77, Longitude: 35.21, DisplayName: "Jerusalem, Israel"},
	}}
	builder := newTestBuilder(geo, nil, &stubCalculator{})

	store, _, err := builder.Build(context.Background(),
		[]string{"Jerusalem"}, date(2024, 6, 1), date(2024, 6, 1), []string{ZmanSunrise})
	require.NoError(t, err)
	require.Equal(t, []string{"2024-06-01"}, store.Dates("Jerusalem, Israel"))
}

func TestBuildReversedRangeYieldsEmptyStore(t *testing.T) {
	geo := &stubGeocoder{places: map[string]Place{
		"Jerusalem": {Latitude: 31.77, Longitude: 35.21, DisplayName: "Jerusalem, Israel"},
	}}
	builder := newTestBuilder(geo, nil, &stubCalculator{})

	store, skipped, err := builder.Build(context.Background(),
		[]string{"Jerusalem"}, date(2024, 6, 2), date(2024, 6, 1), []string{ZmanSunrise})
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Empty(t, store.Locations())
}

func TestBuildSkipsEmptyQueries(t *testing.T) {
	geo := &stubGeocoder{places: map[string]Place{}}
	builder := newTestBuilder(geo, nil, &stubCalculator{})

	store, skipped, err := builder.Build(context.Background(),
		[]string{"  ", ""}, date(2024, 6, 1), date(2024, 6, 1), []string{ZmanSunrise})
	require.NoError(t, err)
	require.Empty(t, store.Locations())
	require.Len(t, skipped, 2)
	require.Equal(t, SkipEmptyQuery, skipped[0].Reason)
	require.Empty(t, geo.calls)
}
