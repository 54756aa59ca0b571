package zmanchart

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/zmanhub/zmanim-chart/pkg/errors"
	"github.com/zmanhub/zmanim-chart/pkg/util"
)

// ChartRenderer turns the assembled chart data into a renderable HTML
// fragment.
type ChartRenderer interface {
	Render(spec ChartSpec) (string, error)
}

// Service exposes the zmanim comparison pipeline.
type Service interface {
	Compare(ctx context.Context, req Request) (Response, error)
	Options() []ZmanOption
}

type service struct {
	builder  *Builder
	renderer ChartRenderer
	logger   *slog.Logger
}

// NewService wires up the comparison domain.
func NewService(builder *Builder, renderer ChartRenderer, logger *slog.Logger) Service {
	return &service{
		builder:  builder,
		renderer: renderer,
		logger:   logger.With("component", "zmanchart.service"),
	}
}

// Compare runs the full pipeline: parse the boundary fields, build the
// series store, assemble the chart data, and render it. A malformed date or
// unknown zman id fails the whole request; ungeocodable locations degrade
// to skip-report entries instead.
func (s *service) Compare(ctx context.Context, req Request) (Response, error) {
	start, err := util.ParseISODate(strings.TrimSpace(req.StartDate))
	if err != nil {
		return Response{}, apperrors.Wrap("invalid_input", "startDate must be formatted as YYYY-MM-DD", err)
	}
	end, err := util.ParseISODate(strings.TrimSpace(req.EndDate))
	if err != nil {
		return Response{}, apperrors.Wrap("invalid_input", "endDate must be formatted as YYYY-MM-DD", err)
	}
	for _, id := range req.Zmanim {
		if !KnownZman(id) {
			return Response{}, apperrors.Wrap("invalid_input", "unknown zman id: "+id, nil)
		}
	}

	locations := strings.Split(req.Locations, ",")
	store, skipped, err := s.builder.Build(ctx, locations, start, end, req.Zmanim)
	if err != nil {
		return Response{}, apperrors.Wrap("build_failed", "failed to build zmanim series", err)
	}

	spec := Assemble(store, req.Zmanim)
	html, err := s.renderer.Render(spec)
	if err != nil {
		return Response{}, apperrors.Wrap("chart_render_error", "failed to render chart", err)
	}

	s.logger.Info("comparison chart built",
		"locations", len(locations), "series", len(spec.Series), "skipped", len(skipped))

	return Response{ChartHTML: html, Chart: spec, Skipped: skipped}, nil
}

// Options lists the selectable zmanim for request forms.
func (s *service) Options() []ZmanOption {
	return ZmanCatalog()
}
