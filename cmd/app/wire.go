//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/mingyue/astro-insights/internal/bootstrap"
	"github.com/mingyue/astro-insights/internal/domain/natal"
	"github.com/mingyue/astro-insights/internal/infra/config"
	"github.com/mingyue/astro-insights/internal/infra/geo/openmeteo"
	httpiface "github.com/mingyue/astro-insights/internal/interface/http"
	"github.com/mingyue/astro-insights/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideNatalConfig,
		providePositionProvider,
		provideGeocoder,
		provideChartRepository,
		provideChartStore,
		natal.NewService,
		wire.Bind(new(natal.Geocoder), new(*openmeteo.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
