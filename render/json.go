package render

import (
	"bytes"
	"encoding/json"

	"weathercn.app/models"
)

// jsonPayload is the structured output contract: exactly the daily,
// hourly and realtime keys, with the raw upstream payload attached only
// when the caller opted in. Hourly entries keep the frozen
// probability/value field names.
type jsonPayload struct {
	Daily    []models.DailyForecast    `json:"daily"`
	Hourly   []models.HourlyForecast   `json:"hourly"`
	Realtime models.RealtimeConditions `json:"realtime"`
	Raw      *models.CaiyunResponse    `json:"raw,omitempty"`
}

// JSON marshals the snapshot with two-space indentation and unescaped
// UTF-8 so Chinese labels stay readable.
func JSON(snapshot *models.WeatherSnapshot) ([]byte, error) {
	payload := jsonPayload{
		Daily:    snapshot.Daily,
		Hourly:   snapshot.Hourly,
		Realtime: snapshot.Realtime,
		Raw:      snapshot.Raw,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
