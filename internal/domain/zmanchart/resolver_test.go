package zmanchart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveAttachesTimezone(t *testing.T) {
	geo := &stubGeocoder{places: map[string]Place{
		"Jerusalem": {Latitude: 31.77, Longitude: 35.21, DisplayName: "Jerusalem, Israel"},
	}}
	resolver := NewResolver(geo, &stubTZFinder{fn: func(lat, lng float64) string {
		require.Equal(t, 31.77, lat)
		require.Equal(t, 35.21, lng)
		return "Asia/Jerusalem"
	}}, newTestLogger())

	loc, err := resolver.Resolve(context.Background(), "Jerusalem")
	require.NoError(t, err)
	require.Equal(t, "Jerusalem, Israel", loc.DisplayName)
	require.Equal(t, "Asia/Jerusalem", loc.TimezoneID)
}

func TestResolveMissingTimezoneIsNotAnError(t *testing.T) {
	geo := &stubGeocoder{places: map[string]Place{
		"Point Nemo": {Latitude: -48.87, Longitude: -123.39, DisplayName: "Point Nemo"},
	}}
	resolver := NewResolver(geo, &stubTZFinder{fn: func(lat, lng float64) string { return "" }}, newTestLogger())

	loc, err := resolver.Resolve(context.Background(), "Point Nemo")
	require.NoError(t, err)
	require.Empty(t, loc.TimezoneID)
	require.Equal(t, "Point Nemo", loc.DisplayName)
}

func TestResolvePropagatesGeocoderErrors(t *testing.T) {
	transient := &TransientError{Err: context.DeadlineExceeded}
	geo := &stubGeocoder{errs: map[string]error{
		"Nowhere":    ErrPlaceNotFound,
		"Flakyville": transient,
	}}
	resolver := NewResolver(geo, &stubTZFinder{}, newTestLogger())

	_, err := resolver.Resolve(context.Background(), "Nowhere")
	require.ErrorIs(t, err, ErrPlaceNotFound)

	_, err = resolver.Resolve(context.Background(), "Flakyville")
	var gotTransient *TransientError
	require.True(t, errors.As(err, &gotTransient))
}

func TestResolveCallsGeocoderOnce(t *testing.T) {
	geo := &stubGeocoder{places: map[string]Place{
		"Jerusalem": {Latitude: 31.77, Longitude: 35.21, DisplayName: "Jerusalem, Israel"},
	}}
	resolver := NewResolver(geo, &stubTZFinder{}, newTestLogger())

	_, err := resolver.Resolve(context.Background(), "Jerusalem")
	require.NoError(t, err)
	require.Equal(t, 1, geo.calls["Jerusalem"])
}
