//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/zmanhub/zmanim-chart/internal/bootstrap"
	"github.com/zmanhub/zmanim-chart/internal/domain/zmanchart"
	"github.com/zmanhub/zmanim-chart/internal/infra/chartrender"
	"github.com/zmanhub/zmanim-chart/internal/infra/config"
	"github.com/zmanhub/zmanim-chart/internal/infra/geo/nominatim"
	"github.com/zmanhub/zmanim-chart/internal/infra/tz"
	"github.com/zmanhub/zmanim-chart/internal/infra/zmancalc"
	httpiface "github.com/zmanhub/zmanim-chart/internal/interface/http"
	"github.com/zmanhub/zmanim-chart/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideGeocoderClient,
		provideTimezoneFinder,
		provideCalculator,
		provideChartRenderer,
		provideBuilder,
		zmanchart.NewResolver,
		zmanchart.NewService,
		wire.Bind(new(zmanchart.Geocoder), new(*nominatim.Client)),
		wire.Bind(new(zmanchart.TimezoneFinder), new(*tz.Finder)),
		wire.Bind(new(zmanchart.Calculator), new(*zmancalc.Calculator)),
		wire.Bind(new(zmanchart.ChartRenderer), new(*chartrender.Renderer)),
		httpiface.NewZmanimHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
