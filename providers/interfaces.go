package providers

import (
	"context"

	"weathercn.app/models"
)

// GeoProvider resolves a free-text place name to coordinates
type GeoProvider interface {
	Resolve(ctx context.Context, place string) (*models.Location, error)
}

// FetchOptions carries the per-request forecast window. DailySteps is
// always 7 in practice; HourlySteps is 6 in basic detail.
type FetchOptions struct {
	DailySteps  int
	HourlySteps int
	Detail      models.DetailLevel
}

// WeatherProvider fetches forecast data for resolved coordinates
type WeatherProvider interface {
	Fetch(ctx context.Context, loc *models.Location, opts FetchOptions) (*models.CaiyunResponse, error)
}
