package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weathercn.app/errors"
	"weathercn.app/models"
)

const userAgent = "weathercn/0.1"

// AmapProvider implements GeoProvider for the AMap geocoding API
type AmapProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAmapProvider creates a new AMap geocoding provider
func NewAmapProvider(apiKey string, timeout time.Duration) *AmapProvider {
	return &AmapProvider{
		apiKey:  apiKey,
		baseURL: "https://restapi.amap.com/v3/geocode/geo",
		client:  &http.Client{Timeout: timeout},
	}
}

// Resolve looks up the first geocode match for the place name.
// Any upstream failure is fatal for the run; there is no fallback geocoder.
func (p *AmapProvider) Resolve(ctx context.Context, place string) (*models.Location, error) {
	if place == "" {
		return nil, errors.NewValidationError("place cannot be empty")
	}

	params := url.Values{}
	params.Set("address", place)
	params.Set("key", p.apiKey)
	reqURL := fmt.Sprintf("%s?%s", p.baseURL, params.Encode())

	slog.Debug("GET", "url", MaskURL(reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.NewGeocodingError("build geocoding request", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewGeocodingError("geocoding request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewGeocodingError(fmt.Sprintf("geocoding API returned status code %d", resp.StatusCode), nil)
	}

	var apiResp models.AmapGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, errors.NewGeocodingError("decode geocoding response", err)
	}

	return locationFromGeocode(place, &apiResp)
}

func locationFromGeocode(place string, apiResp *models.AmapGeocodeResponse) (*models.Location, error) {
	if apiResp.Status != "1" {
		return nil, errors.NewGeocodingError(fmt.Sprintf("高德接口返回失败: %s", apiResp.Info), nil)
	}
	if len(apiResp.Geocodes) == 0 {
		return nil, errors.NewGeocodingError(fmt.Sprintf("未找到地名坐标: %s", place), nil)
	}

	first := apiResp.Geocodes[0]
	lngRaw, latRaw, ok := strings.Cut(first.Location, ",")
	if !ok {
		return nil, errors.NewGeocodingError(fmt.Sprintf("高德返回坐标格式异常: %s", first.Location), nil)
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return nil, errors.NewGeocodingError(fmt.Sprintf("高德返回坐标格式异常: %s", first.Location), err)
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, errors.NewGeocodingError(fmt.Sprintf("高德返回坐标格式异常: %s", first.Location), err)
	}

	resolved := first.FormattedAddress
	if resolved == "" {
		resolved = place
	}

	return &models.Location{
		QueryPlace:      place,
		ResolvedAddress: resolved,
		Lng:             lng,
		Lat:             lat,
		Province:        string(first.Province),
		City:            string(first.City),
		District:        string(first.District),
		Adcode:          string(first.Adcode),
	}, nil
}
