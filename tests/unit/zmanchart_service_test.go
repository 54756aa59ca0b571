package unit

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zmanhub/zmanim-chart/internal/domain/zmanchart"
	"github.com/zmanhub/zmanim-chart/internal/infra/chartrender"
)

type fakeGeocoder struct {
	mu     sync.Mutex
	places map[string]zmanchart.Place
	calls  int
}

func (f *fakeGeocoder) Search(ctx context.Context, query string) (zmanchart.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if place, ok := f.places[query]; ok {
		return place, nil
	}
	return zmanchart.Place{}, zmanchart.ErrPlaceNotFound
}

type fakeTZFinder struct{}

func (fakeTZFinder) TimezoneID(lat, lng float64) string {
	if lat > 40 {
		return "Europe/London"
	}
	return "Asia/Jerusalem"
}

type fakeCalculator struct{}

func (fakeCalculator) Calculate(lat, lng float64, tzID string, date time.Time, zmanID string) (time.Time, bool) {
	if zmanID != zmanchart.ZmanSunrise {
		return time.Time{}, false
	}
	// Deterministic stand-in: later longitude, later local sunrise.
	offset := time.Duration(lng*10) * time.Second
	return date.Add(5*time.Hour + offset), true
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCompareEndToEndWithRealRenderer(t *testing.T) {
	geocoder := &fakeGeocoder{places: map[string]zmanchart.Place{
		"Jerusalem": {Latitude: 31.77, Longitude: 35.21, DisplayName: "Jerusalem, Israel"},
		"London":    {Latitude: 51.5, Longitude: -0.12, DisplayName: "London, England"},
	}}
	logger := newTestLogger()
	resolver := zmanchart.NewResolver(geocoder, fakeTZFinder{}, logger)
	builder := zmanchart.NewBuilder(resolver, fakeCalculator{}, 2, logger)
	renderer := chartrender.NewRenderer(chartrender.Config{Title: "Zmanim Comparison"})
	svc := zmanchart.NewService(builder, renderer, logger)

	resp, err := svc.Compare(context.Background(), zmanchart.Request{
		Locations: "Jerusalem, London, Qx7!!invalid",
		StartDate: "2024-06-01",
		EndDate:   "2024-06-03",
		Zmanim:    []string{zmanchart.ZmanSunrise},
	})
	require.NoError(t, err)

	require.Len(t, resp.Chart.Series, 2)
	for _, series := range resp.Chart.Series {
		require.Len(t, series.Points, 3)
		for _, point := range series.Points {
			require.NotNil(t, point.Y)
			require.NotEqual(t, "N/A", point.HoverText)
		}
	}
	require.Len(t, resp.Chart.YAxisTicks, 25)

	require.Len(t, resp.Skipped, 1)
	require.Equal(t, "Qx7!!invalid", resp.Skipped[0].Query)

	require.Contains(t, resp.ChartHTML, "sunrise in Jerusalem, Israel")
	require.Contains(t, resp.ChartHTML, "sunrise in London, England")

	// One geocoder call per unique query, not per (date, location) pair.
	require.Equal(t, 3, geocoder.calls)
}
