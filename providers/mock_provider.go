package providers

import (
	"context"
	"math"
	"time"

	"github.com/jonboulle/clockwork"
	"weathercn.app/errors"
	"weathercn.app/models"
)

// Fixed coordinates returned by the mock geocoder (天安门广场).
const (
	mockLng = 116.397428
	mockLat = 39.90923
)

// mockHourlyMax bounds how many hourly entries the offline fixture
// produces, mirroring what a free-tier Caiyun account returns.
const mockHourlyMax = 48

var mockSkyconCycle = []string{"CLEAR_DAY", "PARTLY_CLOUDY_DAY", "LIGHT_RAIN", "CLOUDY", "MODERATE_RAIN"}

// MockGeoProvider returns a fixed coordinate pair without network access
type MockGeoProvider struct{}

func NewMockGeoProvider() *MockGeoProvider {
	return &MockGeoProvider{}
}

func (p *MockGeoProvider) Resolve(_ context.Context, place string) (*models.Location, error) {
	if place == "" {
		return nil, errors.NewValidationError("place cannot be empty")
	}
	return &models.Location{
		QueryPlace:      place,
		ResolvedAddress: place,
		Lng:             mockLng,
		Lat:             mockLat,
	}, nil
}

// MockWeatherProvider builds a deterministic offline payload. All values
// derive from the coordinates and the injected clock, so repeated runs
// under the same clock produce identical bytes.
type MockWeatherProvider struct {
	clock clockwork.Clock
}

func NewMockWeatherProvider(clock clockwork.Clock) *MockWeatherProvider {
	return &MockWeatherProvider{clock: clock}
}

func (p *MockWeatherProvider) Fetch(_ context.Context, loc *models.Location, opts FetchOptions) (*models.CaiyunResponse, error) {
	baseTemp := 14.0 + math.Mod(math.Abs(loc.Lat), 5)
	now := p.clock.Now()
	today := now.Truncate(24 * time.Hour)

	daily := &models.CaiyunDaily{}
	for i := 0; i < opts.DailySteps; i++ {
		day := today.AddDate(0, 0, i).Format("2006-01-02")
		daily.Temperature = append(daily.Temperature, models.CaiyunDailyTemperature{
			Date: day,
			Min:  round1(baseTemp - 4 + float64(i%2)),
			Max:  round1(baseTemp + 3 + float64(i%3)),
		})
		daily.Skycon = append(daily.Skycon, models.CaiyunDailySkycon{
			Date:  day,
			Value: mockSkyconCycle[i%len(mockSkyconCycle)],
		})
	}

	hourlySteps := opts.HourlySteps
	if hourlySteps < 1 {
		hourlySteps = 1
	}
	if hourlySteps > mockHourlyMax {
		hourlySteps = mockHourlyMax
	}

	hourly := &models.CaiyunHourly{}
	hourStart := now.Truncate(time.Hour)
	for i := 0; i < hourlySteps; i++ {
		dt := hourStart.Add(time.Duration(i) * time.Hour).Format("2006-01-02T15:04")
		precip := round2(float64(i%5) * 0.03)
		hourly.Temperature = append(hourly.Temperature, models.CaiyunHourlyValue{
			Datetime: dt,
			Value:    round1(baseTemp + float64(i%4)*0.6),
		})
		hourly.Skycon = append(hourly.Skycon, models.CaiyunHourlySkycon{
			Datetime: dt,
			Value:    mockSkyconCycle[i%len(mockSkyconCycle)],
		})
		hourly.Precipitation = append(hourly.Precipitation, models.CaiyunHourlyPrecipitation{
			Datetime:    dt,
			Value:       precip,
			Probability: math.Round(precip * 100),
		})
	}

	result := &models.CaiyunResult{
		Realtime: &models.CaiyunRealtime{
			Temperature:         round1(baseTemp + 0.8),
			ApparentTemperature: round1(baseTemp + 0.2),
			Skycon:              "PARTLY_CLOUDY_DAY",
			Humidity:            0.62,
			Wind:                models.CaiyunWind{Speed: 12.0, Direction: 85},
			AirQuality: &models.CaiyunAirQuality{
				AQI:  models.CaiyunAQI{Chn: 58, Usa: 46},
				PM25: 16,
			},
		},
		Daily:  daily,
		Hourly: hourly,
	}

	if opts.Detail == models.DetailFull {
		probs := make([]float64, 120)
		for i := range probs {
			probs[i] = round2(float64(i%8) * 0.05)
		}
		result.Minutely = &models.CaiyunMinutely{
			Description: "未来两小时有零星小雨",
			Probability: probs,
		}
		todayStr := today.Format("2006-01-02")
		result.Daily.LifeIndex = map[string][]models.CaiyunLifeIndex{
			"ultraviolet": {{Date: todayStr, Index: "2", Desc: "弱"}},
			"carWashing":  {{Date: todayStr, Index: "2", Desc: "较适宜"}},
			"dressing":    {{Date: todayStr, Index: "3", Desc: "较舒适"}},
		}
		result.Alert = &models.CaiyunAlert{
			Content: []models.CaiyunAlertContent{
				{
					Title:        "雷电黄色预警",
					Code:         "11B02",
					Status:       "预警中",
					Description:  "局地可能伴随雷电活动。",
					Pubtimestamp: now.Unix(),
				},
			},
		}
	}

	return &models.CaiyunResponse{
		Status:   "ok",
		Result:   result,
		Location: []float64{loc.Lng, loc.Lat},
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
