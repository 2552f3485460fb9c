// Package models defines data structures used throughout the application
package models

import "encoding/json"

// DetailLevel controls how much of the forecast is aggregated and rendered
type DetailLevel string

const (
	DetailBasic DetailLevel = "basic"
	DetailFull  DetailLevel = "full"
)

// Location represents a place query resolved to coordinates by the geocoder
type Location struct {
	QueryPlace      string  `json:"query_place"`
	ResolvedAddress string  `json:"resolved_address"`
	Lng             float64 `json:"lng"`
	Lat             float64 `json:"lat"`
	Province        string  `json:"province,omitempty"`
	City            string  `json:"city,omitempty"`
	District        string  `json:"district,omitempty"`
	Adcode          string  `json:"adcode,omitempty"`
}

// AmapGeocodeResponse mirrors the AMap geocoding API response shape
type AmapGeocodeResponse struct {
	Status   string        `json:"status"`
	Info     string        `json:"info"`
	Geocodes []AmapGeocode `json:"geocodes"`
}

type AmapGeocode struct {
	FormattedAddress string     `json:"formatted_address"`
	Province         FlexString `json:"province"`
	City             FlexString `json:"city"`
	District         FlexString `json:"district"`
	Adcode           FlexString `json:"adcode"`
	// Location is "lng,lat" as a single string
	Location string `json:"location"`
}

// FlexString decodes AMap fields that arrive either as a string or as an
// empty array (AMap returns [] for absent city/district values).
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err == nil {
		*s = FlexString(v)
		return nil
	}
	*s = ""
	return nil
}

// CaiyunResponse mirrors the Caiyun v2.6 weather API response shape.
// Optional blocks are pointers so missing upstream fields are detectable.
type CaiyunResponse struct {
	Status   string        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Result   *CaiyunResult `json:"result"`
	Location []float64     `json:"location,omitempty"`
}

type CaiyunResult struct {
	Realtime *CaiyunRealtime `json:"realtime,omitempty"`
	Daily    *CaiyunDaily    `json:"daily,omitempty"`
	Hourly   *CaiyunHourly   `json:"hourly,omitempty"`
	Minutely *CaiyunMinutely `json:"minutely,omitempty"`
	Alert    *CaiyunAlert    `json:"alert,omitempty"`
}

type CaiyunRealtime struct {
	Temperature         float64           `json:"temperature"`
	ApparentTemperature float64           `json:"apparent_temperature"`
	Skycon              string            `json:"skycon"`
	Humidity            float64           `json:"humidity"`
	Wind                CaiyunWind        `json:"wind"`
	AirQuality          *CaiyunAirQuality `json:"air_quality,omitempty"`
}

type CaiyunWind struct {
	Speed     float64 `json:"speed"`
	Direction float64 `json:"direction"`
}

type CaiyunAirQuality struct {
	AQI  CaiyunAQI `json:"aqi"`
	PM25 float64   `json:"pm25"`
}

type CaiyunAQI struct {
	Chn float64 `json:"chn"`
	Usa float64 `json:"usa"`
}

type CaiyunDaily struct {
	Temperature []CaiyunDailyTemperature     `json:"temperature"`
	Skycon      []CaiyunDailySkycon          `json:"skycon"`
	LifeIndex   map[string][]CaiyunLifeIndex `json:"life_index,omitempty"`
}

type CaiyunDailyTemperature struct {
	Date string  `json:"date"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

type CaiyunDailySkycon struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type CaiyunLifeIndex struct {
	Date  string `json:"date,omitempty"`
	Index string `json:"index,omitempty"`
	Desc  string `json:"desc,omitempty"`
}

type CaiyunHourly struct {
	Temperature   []CaiyunHourlyValue         `json:"temperature"`
	Skycon        []CaiyunHourlySkycon        `json:"skycon"`
	Precipitation []CaiyunHourlyPrecipitation `json:"precipitation"`
}

type CaiyunHourlyValue struct {
	Datetime string  `json:"datetime"`
	Value    float64 `json:"value"`
}

type CaiyunHourlySkycon struct {
	Datetime string `json:"datetime"`
	Value    string `json:"value"`
}

type CaiyunHourlyPrecipitation struct {
	Datetime    string  `json:"datetime"`
	Value       float64 `json:"value"`
	Probability float64 `json:"probability"`
}

type CaiyunMinutely struct {
	Description string    `json:"description"`
	Probability []float64 `json:"probability"`
}

type CaiyunAlert struct {
	Content []CaiyunAlertContent `json:"content"`
}

type CaiyunAlertContent struct {
	Title        string `json:"title"`
	Code         string `json:"code"`
	Status       string `json:"status"`
	Description  string `json:"description"`
	Pubtimestamp int64  `json:"pubtimestamp"`
}

// WeatherSnapshot is the aggregated result handed to the renderers.
// The hourly field names "probability" and "value" are frozen for
// downstream consumers and must not be renamed.
type WeatherSnapshot struct {
	QueryTime       string             `json:"query_time"`
	Place           string             `json:"place"`
	ResolvedAddress string             `json:"resolved_address"`
	Coord           Coord              `json:"coord"`
	Days            int                `json:"days"`
	Realtime        RealtimeConditions `json:"realtime"`
	Daily           []DailyForecast    `json:"daily"`
	Hourly          []HourlyForecast   `json:"hourly"`
	Minutely        *MinutelySummary   `json:"minutely,omitempty"`
	Alerts          []WeatherAlert     `json:"alerts,omitempty"`
	LifeIndex       map[string]string  `json:"life_index,omitempty"`
	Raw             *CaiyunResponse    `json:"raw,omitempty"`
}

type Coord struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

type RealtimeConditions struct {
	Temperature         float64  `json:"temperature"`
	ApparentTemperature float64  `json:"apparent_temperature"`
	Condition           string   `json:"skycon"`
	HumidityPercent     int      `json:"humidity_percent"`
	WindSpeed           float64  `json:"wind_speed"`
	WindDirection       float64  `json:"wind_direction"`
	AQIChn              *float64 `json:"aqi_chn,omitempty"`
	PM25                *float64 `json:"pm25,omitempty"`
}

// DailyForecast carries a weekday label rather than a calendar date;
// the text renderer never shows dates for daily rows.
type DailyForecast struct {
	Weekday   string  `json:"weekday"`
	Condition string  `json:"skycon"`
	TempMin   float64 `json:"min"`
	TempMax   float64 `json:"max"`
}

type HourlyForecast struct {
	Datetime    string  `json:"datetime"`
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"skycon"`
	Probability float64 `json:"probability"`
	Value       float64 `json:"value"`
}

type MinutelySummary struct {
	Description    string   `json:"description"`
	MaxProbability *float64 `json:"max_probability"`
}

type WeatherAlert struct {
	Title        string `json:"title"`
	Code         string `json:"code"`
	Status       string `json:"status"`
	Description  string `json:"description"`
	Pubtimestamp int64  `json:"pubtimestamp"`
}
