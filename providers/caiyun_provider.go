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

// CaiyunProvider implements WeatherProvider for the Caiyun v2.6 API
type CaiyunProvider struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewCaiyunProvider creates a new Caiyun weather provider
func NewCaiyunProvider(token string, timeout time.Duration) *CaiyunProvider {
	return &CaiyunProvider{
		token:   token,
		baseURL: "https://api.caiyunapp.com/v2.6",
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch requests realtime, daily and hourly data in one call.
// The daily window is whatever opts says (7 for this tool); upstream may
// return fewer entries and that is not an error here.
func (p *CaiyunProvider) Fetch(ctx context.Context, loc *models.Location, opts FetchOptions) (*models.CaiyunResponse, error) {
	params := url.Values{}
	params.Set("dailysteps", strconv.Itoa(opts.DailySteps))
	params.Set("hourlysteps", strconv.Itoa(opts.HourlySteps))
	params.Set("alert", "true")

	reqURL := fmt.Sprintf("%s/%s/%s,%s/weather.json?%s",
		p.baseURL,
		url.PathEscape(p.token),
		strconv.FormatFloat(loc.Lng, 'f', -1, 64),
		strconv.FormatFloat(loc.Lat, 'f', -1, 64),
		params.Encode(),
	)

	slog.Debug("GET", "url", MaskURL(reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.NewWeatherAPIError("build weather request", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewWeatherAPIError("weather request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewWeatherAPIError(fmt.Sprintf("weather API returned status code %d", resp.StatusCode), nil)
	}

	var apiResp models.CaiyunResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, errors.NewWeatherAPIError("decode weather response", err)
	}

	if apiResp.Status != "ok" {
		msg := strings.TrimSpace(fmt.Sprintf("彩云接口返回失败: %s %s", apiResp.Status, apiResp.Error))
		return nil, errors.NewWeatherAPIError(msg, nil)
	}

	return &apiResp, nil
}
