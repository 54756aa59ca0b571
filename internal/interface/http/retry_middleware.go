package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"log/slog"

	"github.com/zmanhub/zmanim-chart/internal/infra/config"
)

// replayBodyLimit caps how much of a request body is buffered for replay.
// Comparison requests are a few hundred bytes of place names and dates, so
// anything near the cap is not a request worth retrying.
const replayBodyLimit = 1 << 20

var errBodyTooLarge = errors.New("request body exceeds replay limit")

// withRetry re-runs POST requests whose handler pass ended in a 5xx. The
// zmanim endpoints fail transiently when the upstream geocoder hiccups, and
// a short in-process replay often saves the request without the client
// noticing. Each attempt writes to a buffer; only the attempt that sticks
// reaches the real connection.
func withRetry(handler http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return handler
	}
	excluded := make(map[string]struct{}, len(cfg.Exclude))
	for _, path := range cfg.Exclude {
		excluded[path] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := excluded[r.URL.Path]; skip || r.Method != http.MethodPost {
			handler.ServeHTTP(w, r)
			return
		}
		body, err := bufferRequestBody(r)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, errBodyTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			http.Error(w, err.Error(), status)
			return
		}

		for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
			if attempt > 1 {
				time.Sleep(replayBackoff(cfg.BaseBackoff, attempt))
			}

			buffered := newBufferedResponse(w)
			replay := r.Clone(r.Context())
			replay.Body = io.NopCloser(bytes.NewReader(body))
			replay.ContentLength = int64(len(body))

			handler.ServeHTTP(buffered, replay)
			if !buffered.serverError() || attempt == cfg.MaxAttempts {
				buffered.commit()
				return
			}

			logger.Warn("replaying request after server error", "path", r.URL.Path, "status", buffered.status, "attempt", attempt)
		}
	})
}

// replayBackoff doubles the base delay per extra attempt.
func replayBackoff(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(1<<(attempt-2))
}

func bufferRequestBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, replayBodyLimit+1))
	if err != nil {
		return nil, err
	}
	if len(data) > replayBodyLimit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// bufferedResponse holds a whole handler response so a failed attempt can be
// discarded instead of reaching the wire.
type bufferedResponse struct {
	dst    http.ResponseWriter
	header http.Header
	body   bytes.Buffer
	status int
	wrote  bool
}

func newBufferedResponse(dst http.ResponseWriter) *bufferedResponse {
	return &bufferedResponse{
		dst:    dst,
		header: make(http.Header),
		status: http.StatusOK,
	}
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.wrote {
		return
	}
	b.status = status
	b.wrote = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	return b.body.Write(p)
}

// commit copies the buffered status, headers, and body to the underlying
// writer. Headers set by an earlier discarded attempt are cleared first.
func (b *bufferedResponse) commit() {
	dst := b.dst.Header()
	for k := range dst {
		dst.Del(k)
	}
	for k, values := range b.header {
		copied := make([]string, len(values))
		copy(copied, values)
		dst[k] = copied
	}
	b.dst.WriteHeader(b.status)
	if b.body.Len() > 0 {
		_, _ = b.dst.Write(b.body.Bytes())
	}
}

func (b *bufferedResponse) serverError() bool {
	return b.status >= http.StatusInternalServerError
}

func (b *bufferedResponse) Flush() {}
