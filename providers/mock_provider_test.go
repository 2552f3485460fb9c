package providers

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathercn.app/models"
)

func TestMockGeoProvider(t *testing.T) {
	t.Run("FixedCoordinates", func(t *testing.T) {
		loc, err := NewMockGeoProvider().Resolve(context.Background(), "上海市浦东新区")

		require.NoError(t, err)
		assert.Equal(t, "上海市浦东新区", loc.QueryPlace)
		assert.Equal(t, "上海市浦东新区", loc.ResolvedAddress)
		assert.InDelta(t, 116.397428, loc.Lng, 1e-9)
		assert.InDelta(t, 39.90923, loc.Lat, 1e-9)
	})

	t.Run("EmptyPlaceRejected", func(t *testing.T) {
		_, err := NewMockGeoProvider().Resolve(context.Background(), "")
		assert.Error(t, err)
	})
}

func TestMockWeatherProvider(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 2, 26, 10, 30, 0, 0, time.UTC))
	loc := &models.Location{QueryPlace: "北京", ResolvedAddress: "北京市", Lng: 116.397428, Lat: 39.90923}

	t.Run("Deterministic", func(t *testing.T) {
		p := NewMockWeatherProvider(clock)
		opts := FetchOptions{DailySteps: 7, HourlySteps: 6, Detail: models.DetailBasic}

		first, err := p.Fetch(context.Background(), loc, opts)
		require.NoError(t, err)
		second, err := p.Fetch(context.Background(), loc, opts)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("ShapeMatchesUpstream", func(t *testing.T) {
		p := NewMockWeatherProvider(clock)
		resp, err := p.Fetch(context.Background(), loc, FetchOptions{DailySteps: 7, HourlySteps: 6, Detail: models.DetailBasic})

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Status)
		require.NotNil(t, resp.Result)
		require.NotNil(t, resp.Result.Realtime)
		assert.Len(t, resp.Result.Daily.Temperature, 7)
		assert.Len(t, resp.Result.Hourly.Temperature, 6)
		assert.Len(t, resp.Result.Hourly.Precipitation, 6)
		assert.Nil(t, resp.Result.Minutely)
		assert.Nil(t, resp.Result.Alert)
		assert.Equal(t, []float64{116.397428, 39.90923}, resp.Location)
	})

	t.Run("HourlyTimestampsFollowClock", func(t *testing.T) {
		p := NewMockWeatherProvider(clock)
		resp, err := p.Fetch(context.Background(), loc, FetchOptions{DailySteps: 7, HourlySteps: 2, Detail: models.DetailBasic})

		require.NoError(t, err)
		assert.Equal(t, "2026-02-26T10:00", resp.Result.Hourly.Temperature[0].Datetime)
		assert.Equal(t, "2026-02-26T11:00", resp.Result.Hourly.Temperature[1].Datetime)
	})

	t.Run("HourlyCappedAtFixtureLimit", func(t *testing.T) {
		p := NewMockWeatherProvider(clock)
		resp, err := p.Fetch(context.Background(), loc, FetchOptions{DailySteps: 7, HourlySteps: 360, Detail: models.DetailFull})

		require.NoError(t, err)
		assert.Len(t, resp.Result.Hourly.Temperature, 48)
	})

	t.Run("FullDetailExtras", func(t *testing.T) {
		p := NewMockWeatherProvider(clock)
		resp, err := p.Fetch(context.Background(), loc, FetchOptions{DailySteps: 7, HourlySteps: 24, Detail: models.DetailFull})

		require.NoError(t, err)
		require.NotNil(t, resp.Result.Minutely)
		assert.Len(t, resp.Result.Minutely.Probability, 120)
		require.NotNil(t, resp.Result.Alert)
		require.Len(t, resp.Result.Alert.Content, 1)
		assert.Equal(t, "雷电黄色预警", resp.Result.Alert.Content[0].Title)
		assert.Contains(t, resp.Result.Daily.LifeIndex, "ultraviolet")
	})
}
