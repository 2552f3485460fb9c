// Package forecast combines a resolved location and a raw weather
// response into the snapshot consumed by the renderers.
package forecast

import (
	"fmt"
	"math"

	"github.com/jonboulle/clockwork"
	"weathercn.app/errors"
	"weathercn.app/models"
)

const (
	// DefaultDays is the daily window requested from upstream on every run.
	DefaultDays = 7
	// MaxHourlySteps bounds the hourly sequence regardless of flags.
	MaxHourlySteps = 360
	// BasicHourlySteps is the hourly window in basic detail.
	BasicHourlySteps = 6
)

// Aggregator builds weather snapshots. The clock stamps the query time
// and is injectable for deterministic tests.
type Aggregator struct {
	clock clockwork.Clock
}

func NewAggregator(clock clockwork.Clock) *Aggregator {
	return &Aggregator{clock: clock}
}

// Combine selects the realtime block, maps daily entries to weekday rows
// and slices the hourly entries to hourlySteps. Missing required blocks
// in the raw response are fatal.
func (a *Aggregator) Combine(loc *models.Location, resp *models.CaiyunResponse, detail models.DetailLevel, hourlySteps int) (*models.WeatherSnapshot, error) {
	if resp == nil || resp.Result == nil {
		return nil, errors.NewMalformedDataError("weather response missing result block")
	}
	result := resp.Result
	if result.Realtime == nil {
		return nil, errors.NewMalformedDataError("weather response missing realtime block")
	}
	if result.Daily == nil {
		return nil, errors.NewMalformedDataError("weather response missing daily block")
	}
	if result.Hourly == nil {
		return nil, errors.NewMalformedDataError("weather response missing hourly block")
	}

	if hourlySteps > MaxHourlySteps {
		hourlySteps = MaxHourlySteps
	}
	if hourlySteps < 1 {
		hourlySteps = 1
	}

	snapshot := &models.WeatherSnapshot{
		QueryTime:       a.clock.Now().Format("2006-01-02 15:04:05"),
		Place:           loc.QueryPlace,
		ResolvedAddress: loc.ResolvedAddress,
		Coord:           models.Coord{Lng: loc.Lng, Lat: loc.Lat},
		Days:            DefaultDays,
		Realtime:        extractRealtime(result.Realtime),
		Daily:           extractDaily(result.Daily),
		Hourly:          extractHourly(result.Hourly, hourlySteps),
	}
	if snapshot.ResolvedAddress == "" {
		snapshot.ResolvedAddress = loc.QueryPlace
	}

	if detail == models.DetailFull {
		snapshot.Minutely = extractMinutely(result.Minutely)
		snapshot.Alerts = extractAlerts(result.Alert)
		snapshot.LifeIndex = extractLifeIndex(result.Daily)
	}

	return snapshot, nil
}

func extractRealtime(rt *models.CaiyunRealtime) models.RealtimeConditions {
	conditions := models.RealtimeConditions{
		Temperature:         rt.Temperature,
		ApparentTemperature: rt.ApparentTemperature,
		Condition:           SkyconCN(rt.Skycon),
		HumidityPercent:     int(math.Round(rt.Humidity * 100)),
		WindSpeed:           rt.Wind.Speed,
		WindDirection:       rt.Wind.Direction,
	}
	if rt.AirQuality != nil {
		aqi := rt.AirQuality.AQI.Chn
		pm25 := rt.AirQuality.PM25
		conditions.AQIChn = &aqi
		conditions.PM25 = &pm25
	}
	return conditions
}

func extractDaily(daily *models.CaiyunDaily) []models.DailyForecast {
	rows := make([]models.DailyForecast, 0, len(daily.Temperature))
	for i, temp := range daily.Temperature {
		condition := ""
		if i < len(daily.Skycon) {
			condition = daily.Skycon[i].Value
		}
		date := temp.Date
		if date == "" && i < len(daily.Skycon) {
			date = daily.Skycon[i].Date
		}
		rows = append(rows, models.DailyForecast{
			Weekday:   WeekdayLabel(date),
			Condition: SkyconCN(condition),
			TempMin:   temp.Min,
			TempMax:   temp.Max,
		})
	}
	return rows
}

func extractHourly(hourly *models.CaiyunHourly, limit int) []models.HourlyForecast {
	n := limit
	if len(hourly.Temperature) < n {
		n = len(hourly.Temperature)
	}
	rows := make([]models.HourlyForecast, 0, n)
	for i := 0; i < n; i++ {
		temp := hourly.Temperature[i]

		condition := ""
		datetime := temp.Datetime
		if i < len(hourly.Skycon) {
			condition = hourly.Skycon[i].Value
			if datetime == "" {
				datetime = hourly.Skycon[i].Datetime
			}
		}

		var precip, probability float64
		if i < len(hourly.Precipitation) {
			precip = hourly.Precipitation[i].Value
			probability = normalizeProbabilityPercent(hourly.Precipitation[i].Probability)
			if datetime == "" {
				datetime = hourly.Precipitation[i].Datetime
			}
		}
		if datetime == "" {
			datetime = fmt.Sprintf("H+%d", i)
		}

		rows = append(rows, models.HourlyForecast{
			Datetime:    normalizeDatetime(datetime),
			Temperature: temp.Value,
			Condition:   SkyconCN(condition),
			Probability: probability,
			Value:       precip,
		})
	}
	return rows
}

// normalizeProbabilityPercent scales fractional probabilities to percent;
// upstream mixes 0..1 and 0..100 ranges across endpoints.
func normalizeProbabilityPercent(v float64) float64 {
	if v <= 1 {
		return math.Round(v*1000) / 10
	}
	return math.Round(v*10) / 10
}

func extractMinutely(minutely *models.CaiyunMinutely) *models.MinutelySummary {
	if minutely == nil {
		return nil
	}
	summary := &models.MinutelySummary{Description: minutely.Description}
	if len(minutely.Probability) > 0 {
		maxProb := minutely.Probability[0]
		for _, p := range minutely.Probability[1:] {
			if p > maxProb {
				maxProb = p
			}
		}
		maxProb = math.Round(maxProb*1000) / 1000
		summary.MaxProbability = &maxProb
	}
	return summary
}

func extractAlerts(alert *models.CaiyunAlert) []models.WeatherAlert {
	if alert == nil || len(alert.Content) == 0 {
		return nil
	}
	alerts := make([]models.WeatherAlert, 0, len(alert.Content))
	for _, item := range alert.Content {
		alerts = append(alerts, models.WeatherAlert{
			Title:        item.Title,
			Code:         item.Code,
			Status:       item.Status,
			Description:  item.Description,
			Pubtimestamp: item.Pubtimestamp,
		})
	}
	return alerts
}

func extractLifeIndex(daily *models.CaiyunDaily) map[string]string {
	if len(daily.LifeIndex) == 0 {
		return nil
	}
	summary := make(map[string]string, len(daily.LifeIndex))
	for key, values := range daily.LifeIndex {
		if len(values) == 0 {
			continue
		}
		first := values[0]
		if first.Desc != "" {
			summary[key] = first.Desc
		} else {
			summary[key] = first.Index
		}
	}
	if len(summary) == 0 {
		return nil
	}
	return summary
}
