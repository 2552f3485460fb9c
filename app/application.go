// Package app wires configuration, providers, cache, aggregation and
// rendering into one runnable pipeline.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"weathercn.app/config"
	"weathercn.app/forecast"
	"weathercn.app/models"
	"weathercn.app/providers"
	"weathercn.app/providers/cache"
	"weathercn.app/render"
)

// Application represents one weather lookup with all its dependencies
type Application struct {
	opts       Options
	config     *config.Config
	geo        providers.GeoProvider
	weather    providers.WeatherProvider
	aggregator *forecast.Aggregator
	out        io.Writer
}

// mockReferenceTime pins the clock in mock mode so repeated mock
// invocations produce identical output.
var mockReferenceTime = time.Date(2026, 1, 5, 8, 0, 0, 0, time.FixedZone("CST", 8*3600))

// NewApplication validates the options, loads configuration and wires
// the provider pipeline. Mock mode swaps in offline fixtures, skips
// the credential check and runs on a frozen clock.
func NewApplication(opts Options) (*Application, error) {
	var clock clockwork.Clock = clockwork.NewRealClock()
	if opts.Mock {
		clock = clockwork.NewFakeClockAt(mockReferenceTime)
	}
	return newApplication(opts, clock, os.Stdout)
}

func newApplication(opts Options, clock clockwork.Clock, out io.Writer) (*Application, error) {
	opts.Place = NormalizePlace(opts.Place)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, &opts)

	if !opts.Mock {
		if err := cfg.RequireCredentials(); err != nil {
			return nil, err
		}
	}

	app := &Application{
		opts:       opts,
		config:     cfg,
		aggregator: forecast.NewAggregator(clock),
		out:        out,
	}
	app.initializeProviders(clock)
	return app, nil
}

// applyOverrides gives CLI flags precedence over environment values
func applyOverrides(cfg *config.Config, opts *Options) {
	if opts.AmapKey != "" {
		cfg.AmapKey = opts.AmapKey
	}
	if opts.CaiyunToken != "" {
		cfg.CaiyunToken = opts.CaiyunToken
	}
	if opts.CacheDir != "" {
		cfg.CacheDir = opts.CacheDir
	}
	if opts.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = opts.TimeoutSeconds
	}
}

func (app *Application) initializeProviders(clock clockwork.Clock) {
	timeout := time.Duration(app.config.TimeoutSeconds) * time.Second

	namespace := "live"
	var geo providers.GeoProvider
	var weather providers.WeatherProvider
	if app.opts.Mock {
		namespace = "mock"
		geo = providers.NewMockGeoProvider()
		weather = providers.NewMockWeatherProvider(clock)
	} else {
		geo = providers.NewAmapProvider(app.config.AmapKey, timeout)
		weather = providers.NewCaiyunProvider(app.config.CaiyunToken, timeout)
	}

	fileCache := cache.NewFileCache(app.config.CacheDir, namespace)
	app.geo = providers.NewCachedGeoProvider(geo, fileCache)
	app.weather = providers.NewCachedWeatherProvider(weather, fileCache)
}

// Run executes one lookup end to end: resolve, fetch, aggregate, render.
// Any failure is fatal for the run; no retries happen anywhere.
func (app *Application) Run(ctx context.Context) error {
	loc, err := app.geo.Resolve(ctx, app.opts.Place)
	if err != nil {
		return err
	}
	slog.Debug("place resolved", "address", loc.ResolvedAddress, "lng", loc.Lng, "lat", loc.Lat)

	fetchOpts := providers.FetchOptions{
		DailySteps:  forecast.DefaultDays,
		HourlySteps: app.opts.EffectiveHourlySteps(),
		Detail:      models.DetailLevel(app.opts.Detail),
	}
	resp, err := app.weather.Fetch(ctx, loc, fetchOpts)
	if err != nil {
		return err
	}

	snapshot, err := app.aggregator.Combine(loc, resp, fetchOpts.Detail, fetchOpts.HourlySteps)
	if err != nil {
		return err
	}
	if app.opts.IncludeRaw {
		snapshot.Raw = resp
	}

	switch app.opts.Format {
	case "json":
		data, err := render.JSON(snapshot)
		if err != nil {
			return err
		}
		fmt.Fprintln(app.out, string(data))
	default:
		fmt.Fprint(app.out, render.Text(snapshot, fetchOpts.Detail))
	}
	return nil
}
