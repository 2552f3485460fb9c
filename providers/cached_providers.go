package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"weathercn.app/errors"
	"weathercn.app/models"
	"weathercn.app/providers/cache"
)

// CachedGeoProvider wraps a GeoProvider behind the file cache so a place
// already resolved on disk never triggers a network call.
type CachedGeoProvider struct {
	next      GeoProvider
	fileCache *cache.FileCache
}

func NewCachedGeoProvider(next GeoProvider, fileCache *cache.FileCache) GeoProvider {
	return &CachedGeoProvider{
		next:      next,
		fileCache: fileCache,
	}
}

func (p *CachedGeoProvider) Resolve(ctx context.Context, place string) (*models.Location, error) {
	params := url.Values{}
	params.Set("address", place)

	data, outcome, err := p.fileCache.GetOrFetch("amap", params, func() ([]byte, error) {
		loc, err := p.next.Resolve(ctx, place)
		if err != nil {
			return nil, err
		}
		return json.Marshal(loc)
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("geocode lookup", "place", place, "cache", outcome.String())

	var loc models.Location
	if err := json.Unmarshal(data, &loc); err != nil {
		return nil, errors.NewCacheError("corrupt geocode cache entry", err)
	}
	return &loc, nil
}

// CachedWeatherProvider wraps a WeatherProvider behind the file cache,
// keyed by coordinates and the requested forecast window.
type CachedWeatherProvider struct {
	next      WeatherProvider
	fileCache *cache.FileCache
}

func NewCachedWeatherProvider(next WeatherProvider, fileCache *cache.FileCache) WeatherProvider {
	return &CachedWeatherProvider{
		next:      next,
		fileCache: fileCache,
	}
}

func (p *CachedWeatherProvider) Fetch(ctx context.Context, loc *models.Location, opts FetchOptions) (*models.CaiyunResponse, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%.6f,%.6f", loc.Lng, loc.Lat))
	params.Set("dailysteps", strconv.Itoa(opts.DailySteps))
	params.Set("hourlysteps", strconv.Itoa(opts.HourlySteps))
	params.Set("alert", "true")
	params.Set("detail", string(opts.Detail))

	data, outcome, err := p.fileCache.GetOrFetch("caiyun", params, func() ([]byte, error) {
		resp, err := p.next.Fetch(ctx, loc, opts)
		if err != nil {
			return nil, err
		}
		return json.Marshal(resp)
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("weather lookup", "location", params.Get("location"), "cache", outcome.String())

	var resp models.CaiyunResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errors.NewCacheError("corrupt weather cache entry", err)
	}
	return &resp, nil
}
