package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zmanhub/zmanim-chart/internal/domain/zmanchart"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Client geocodes free-text place queries against a Nominatim endpoint.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient builds a geocoder client. Nominatim's usage policy requires an
// identifying User-Agent on every request.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(base, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search resolves a query to its best match. It returns
// zmanchart.ErrPlaceNotFound for empty results and *zmanchart.TransientError
// for timeouts, rate limiting, and upstream failures.
func (c *Client) Search(ctx context.Context, query string) (zmanchart.Place, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=jsonv2&limit=1", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return zmanchart.Place{}, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zmanchart.Place{}, &zmanchart.TransientError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode >= http.StatusInternalServerError:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return zmanchart.Place{}, &zmanchart.TransientError{
			Err: fmt.Errorf("geocode request error: status=%d body=%s", resp.StatusCode, string(payload)),
		}
	case resp.StatusCode >= 300:
		return zmanchart.Place{}, fmt.Errorf("geocode request error: status=%d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zmanchart.Place{}, &zmanchart.TransientError{Err: fmt.Errorf("read geocode response: %w", err)}
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return zmanchart.Place{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return zmanchart.Place{}, zmanchart.ErrPlaceNotFound
	}

	return results[0].toPlace()
}

// searchResult mirrors the fields of interest in Nominatim's /search
// response. Coordinates arrive as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (r searchResult) toPlace() (zmanchart.Place, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return zmanchart.Place{}, fmt.Errorf("parse latitude %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return zmanchart.Place{}, fmt.Errorf("parse longitude %q: %w", r.Lon, err)
	}
	return zmanchart.Place{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: r.DisplayName,
	}, nil
}
