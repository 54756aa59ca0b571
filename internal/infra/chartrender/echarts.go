package chartrender

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/zmanhub/zmanim-chart/internal/domain/zmanchart"
)

// Config controls the rendered chart's cosmetics.
type Config struct {
	Title  string
	Width  string
	Height string
}

// Renderer produces an interactive HTML line chart from assembled chart
// data using go-echarts.
type Renderer struct {
	cfg Config
}

// NewRenderer builds a chart renderer.
func NewRenderer(cfg Config) *Renderer {
	if cfg.Title == "" {
		cfg.Title = "Zmanim Comparison"
	}
	if cfg.Width == "" {
		cfg.Width = "700px"
	}
	if cfg.Height == "" {
		cfg.Height = "500px"
	}
	return &Renderer{cfg: cfg}
}

// Render serializes the chart to a self-contained HTML document. Each
// series carries its own (date, value) pairs, so series with different date
// sets coexist on one axis; undefined points stay as gaps. The hover text
// travels as the data-point name.
func (r *Renderer) Render(spec zmanchart.ChartSpec) (string, error) {
	yAxis := opts.YAxis{Name: "Time", Type: "value", Min: 0, Max: 24}
	if len(spec.YAxisTicks) > 0 {
		yAxis.AxisLabel = &opts.AxisLabel{Show: true, Formatter: tickLabelFormatter(spec.YAxisTicks)}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  r.cfg.Width,
			Height: r.cfg.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: r.cfg.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date", Type: "category"}),
		charts.WithYAxisOpts(yAxis),
	)

	line.SetXAxis(spec.Dates())
	for _, series := range spec.Series {
		data := make([]opts.LineData, 0, len(series.Points))
		for _, pt := range series.Points {
			if pt.Y == nil {
				data = append(data, opts.LineData{
					Value: []interface{}{pt.X, nil},
					Name:  pt.HoverText,
				})
				continue
			}
			data = append(data, opts.LineData{
				Value: []interface{}{pt.X, *pt.Y},
				Name:  pt.HoverText,
			})
		}
		line.AddSeries(series.Label, data)
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("render line chart: %w", err)
	}
	return buf.String(), nil
}

// tickLabelFormatter maps the y-axis values onto their clock-string labels
// inside the browser, so the axis reads "05:00:00" instead of a bare 5.
func tickLabelFormatter(ticks []zmanchart.AxisTick) string {
	// Single-quoted labels: the function travels through the JSON-encoded
	// option blob, where double quotes would stay escaped.
	pairs := make([]string, 0, len(ticks))
	for _, tick := range ticks {
		pairs = append(pairs, fmt.Sprintf("%g:'%s'", tick.Value, tick.Label))
	}
	return opts.FuncOpts(fmt.Sprintf(
		"function (value) { var labels = {%s}; return labels[value] === undefined ? value : labels[value]; }",
		strings.Join(pairs, ","),
	))
}
