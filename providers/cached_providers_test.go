package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathercn.app/models"
	"weathercn.app/providers/cache"
)

type countingGeoProvider struct {
	calls int
	loc   *models.Location
}

func (p *countingGeoProvider) Resolve(_ context.Context, _ string) (*models.Location, error) {
	p.calls++
	return p.loc, nil
}

type countingWeatherProvider struct {
	calls int
	resp  *models.CaiyunResponse
}

func (p *countingWeatherProvider) Fetch(_ context.Context, _ *models.Location, _ FetchOptions) (*models.CaiyunResponse, error) {
	p.calls++
	return p.resp, nil
}

func TestCachedGeoProvider(t *testing.T) {
	loc := &models.Location{QueryPlace: "杭州", ResolvedAddress: "浙江省杭州市", Lng: 120.15, Lat: 30.28}

	t.Run("SecondResolveSkipsNetwork", func(t *testing.T) {
		real := &countingGeoProvider{loc: loc}
		cached := NewCachedGeoProvider(real, cache.NewFileCache(t.TempDir(), "live"))

		first, err := cached.Resolve(context.Background(), "杭州")
		require.NoError(t, err)
		second, err := cached.Resolve(context.Background(), "杭州")
		require.NoError(t, err)

		assert.Equal(t, 1, real.calls)
		assert.Equal(t, first, second)
		assert.Equal(t, "浙江省杭州市", second.ResolvedAddress)
	})

	t.Run("DifferentPlacesFetchSeparately", func(t *testing.T) {
		real := &countingGeoProvider{loc: loc}
		cached := NewCachedGeoProvider(real, cache.NewFileCache(t.TempDir(), "live"))

		_, err := cached.Resolve(context.Background(), "杭州")
		require.NoError(t, err)
		_, err = cached.Resolve(context.Background(), "苏州")
		require.NoError(t, err)

		assert.Equal(t, 2, real.calls)
	})
}

func TestCachedWeatherProvider(t *testing.T) {
	loc := &models.Location{QueryPlace: "杭州", Lng: 120.15, Lat: 30.28}
	resp := &models.CaiyunResponse{
		Status: "ok",
		Result: &models.CaiyunResult{
			Realtime: &models.CaiyunRealtime{Temperature: 18.2, Skycon: "CLOUDY", Humidity: 0.7},
			Daily:    &models.CaiyunDaily{},
			Hourly:   &models.CaiyunHourly{},
		},
	}

	t.Run("SecondFetchSkipsNetwork", func(t *testing.T) {
		real := &countingWeatherProvider{resp: resp}
		cached := NewCachedWeatherProvider(real, cache.NewFileCache(t.TempDir(), "live"))
		opts := FetchOptions{DailySteps: 7, HourlySteps: 6, Detail: models.DetailBasic}

		first, err := cached.Fetch(context.Background(), loc, opts)
		require.NoError(t, err)
		second, err := cached.Fetch(context.Background(), loc, opts)
		require.NoError(t, err)

		assert.Equal(t, 1, real.calls)
		assert.Equal(t, first, second)
	})

	t.Run("DifferentWindowsFetchSeparately", func(t *testing.T) {
		real := &countingWeatherProvider{resp: resp}
		cached := NewCachedWeatherProvider(real, cache.NewFileCache(t.TempDir(), "live"))

		_, err := cached.Fetch(context.Background(), loc, FetchOptions{DailySteps: 7, HourlySteps: 6, Detail: models.DetailBasic})
		require.NoError(t, err)
		_, err = cached.Fetch(context.Background(), loc, FetchOptions{DailySteps: 7, HourlySteps: 48, Detail: models.DetailFull})
		require.NoError(t, err)

		assert.Equal(t, 2, real.calls)
	})
}
