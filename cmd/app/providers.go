package main

import (
	"log/slog"

	"github.com/zmanhub/zmanim-chart/internal/domain/zmanchart"
	"github.com/zmanhub/zmanim-chart/internal/infra/chartrender"
	"github.com/zmanhub/zmanim-chart/internal/infra/config"
	"github.com/zmanhub/zmanim-chart/internal/infra/geo/nominatim"
	"github.com/zmanhub/zmanim-chart/internal/infra/tz"
	"github.com/zmanhub/zmanim-chart/internal/infra/zmancalc"
)

func provideGeocoderClient(cfg *config.Config) *nominatim.Client {
	return nominatim.NewClient(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout)
}

func provideTimezoneFinder(logger *slog.Logger) (*tz.Finder, error) {
	finder, err := tz.NewFinder()
	if err != nil {
		return nil, err
	}
	logger.Info("timezone finder loaded")
	return finder, nil
}

func provideCalculator() *zmancalc.Calculator {
	return zmancalc.NewCalculator()
}

func provideChartRenderer(cfg *config.Config) *chartrender.Renderer {
	return chartrender.NewRenderer(chartrender.Config{
		Title:  cfg.Chart.Title,
		Width:  cfg.Chart.Width,
		Height: cfg.Chart.Height,
	})
}

func provideBuilder(cfg *config.Config, resolver *zmanchart.Resolver, calc zmanchart.Calculator, logger *slog.Logger) *zmanchart.Builder {
	return zmanchart.NewBuilder(resolver, calc, cfg.Zmanim.ResolveConcurrency, logger)
}
