package zmanchart

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zmanhub/zmanim-chart/pkg/util"
)

// Calculator computes a single zman for a location and calendar date. The
// boolean is false when the time-point is undefined there (polar seasons,
// unknown timezone) rather than failed.
type Calculator interface {
	Calculate(lat, lng float64, tzID string, date time.Time, zmanID string) (time.Time, bool)
}

// Builder runs the orchestration loop: resolve every requested location,
// then walk the date range computing each requested zman.
type Builder struct {
	resolver    *Resolver
	calc        Calculator
	logger      *slog.Logger
	concurrency int
}

// NewBuilder wires the series builder. concurrency bounds the parallel
// geocoding fan-out; values below one fall back to sequential resolution.
func NewBuilder(resolver *Resolver, calc Calculator, concurrency int, logger *slog.Logger) *Builder {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Builder{
		resolver:    resolver,
		calc:        calc,
		logger:      logger.With("component", "zmanchart.builder"),
		concurrency: concurrency,
	}
}

type resolution struct {
	query    string
	location ResolvedLocation
	skip     string
}

// Build computes the full series store for the inclusive date range. A
// location that cannot be geocoded or has no timezone contributes nothing
// and is reported in the skip list; it never aborts the range. A reversed
// range yields an empty store. Chart ordering follows input order: the
// geocoding fan-out is concurrent, but results land by input index.
func (b *Builder) Build(ctx context.Context, locations []string, start, end time.Time, zmanIDs []string) (*SeriesStore, []SkippedLocation, error) {
	resolved, skipped, err := b.resolveAll(ctx, locations)
	if err != nil {
		return nil, nil, err
	}

	store := NewSeriesStore()
	for _, day := range util.DatesBetween(start, end) {
		dateStr := day.Format(util.ISODate)
		for _, loc := range resolved {
			for _, zmanID := range zmanIDs {
				var value *time.Time
				if t, ok := b.calc.Calculate(loc.Latitude, loc.Longitude, loc.TimezoneID, day, zmanID); ok {
					value = &t
				}
				store.Put(loc.DisplayName, dateStr, zmanID, value)
			}
		}
	}
	return store, skipped, nil
}

// resolveAll geocodes each unique trimmed query exactly once. The geocoding
// result is date-invariant, so hoisting it out of the date loop preserves
// output while cutting the call count from days*locations to locations.
func (b *Builder) resolveAll(ctx context.Context, locations []string) ([]ResolvedLocation, []SkippedLocation, error) {
	slots := make([]resolution, len(locations))
	cache := make(map[string]int, len(locations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, raw := range locations {
		query := strings.TrimSpace(raw)
		slots[i].query = query
		if query == "" {
			slots[i].skip = SkipEmptyQuery
			continue
		}
		if _, dup := cache[query]; dup {
			continue
		}
		cache[query] = i

		i := i
		g.Go(func() error {
			loc, err := b.resolver.Resolve(gctx, query)
			switch {
			case err == nil && loc.TimezoneID == "":
				slots[i].skip = SkipNoTimezone
			case err == nil:
				slots[i].location = loc
			case errors.Is(err, ErrPlaceNotFound):
				slots[i].skip = SkipNotFound
			default:
				var transient *TransientError
				if errors.As(err, &transient) {
					slots[i].skip = SkipTransientFailure
				} else {
					slots[i].skip = SkipTransientFailure
					b.logger.Warn("unclassified geocoder error", "query", query, "error", err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	// Duplicate queries share the first occurrence's outcome.
	for i := range slots {
		if slots[i].query == "" {
			continue
		}
		if first, ok := cache[slots[i].query]; ok && first != i {
			slots[i].location = slots[first].location
			slots[i].skip = slots[first].skip
		}
	}

	var (
		resolved []ResolvedLocation
		skipped  []SkippedLocation
	)
	for _, slot := range slots {
		if slot.skip != "" {
			b.logger.Info("location skipped", "query", slot.query, "reason", slot.skip)
			skipped = append(skipped, SkippedLocation{Query: slot.query, Reason: slot.skip})
			continue
		}
		resolved = append(resolved, slot.location)
	}
	return resolved, skipped, nil
}
