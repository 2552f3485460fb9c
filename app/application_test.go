package app

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathercn.app/errors"
)

func mockOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		Place:       "北京市朝阳区",
		Format:      "text",
		Detail:      "basic",
		HourlySteps: 6,
		Mock:        true,
		CacheDir:    t.TempDir(),
	}
}

func runMock(t *testing.T, opts Options, clock clockwork.Clock) string {
	t.Helper()
	var out bytes.Buffer
	application, err := newApplication(opts, clock, &out)
	require.NoError(t, err)
	require.NoError(t, application.Run(context.Background()))
	return out.String()
}

func testClock() clockwork.Clock {
	return clockwork.NewFakeClockAt(time.Date(2026, 2, 26, 10, 30, 0, 0, time.UTC))
}

func TestNewApplicationValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
	}{
		{"HourlyStepsTooLow", func(o *Options) { o.HourlySteps = 0 }},
		{"HourlyStepsTooHigh", func(o *Options) { o.HourlySteps = 361 }},
		{"BadFormat", func(o *Options) { o.Format = "xml" }},
		{"BadDetail", func(o *Options) { o.Detail = "verbose" }},
		{"EmptyPlaceAfterNormalization", func(o *Options) { o.Place = " 的 " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := mockOptions(t)
			tc.mutate(&opts)

			_, err := NewApplication(opts)

			assert.True(t, errors.IsType(err, errors.ValidationError))
		})
	}
}

func TestMissingCredentials(t *testing.T) {
	t.Run("LiveModeNeedsCredentials", func(t *testing.T) {
		t.Setenv("AMAP_API_KEY", "")
		t.Setenv("CAIYUN_API_TOKEN", "")
		opts := mockOptions(t)
		opts.Mock = false

		_, err := NewApplication(opts)

		assert.True(t, errors.IsType(err, errors.ConfigurationError))
	})

	t.Run("MockModeNeedsNone", func(t *testing.T) {
		t.Setenv("AMAP_API_KEY", "")
		t.Setenv("CAIYUN_API_TOKEN", "")

		_, err := NewApplication(mockOptions(t))

		assert.NoError(t, err)
	})

	t.Run("FlagsOverrideEnvironment", func(t *testing.T) {
		t.Setenv("AMAP_API_KEY", "")
		t.Setenv("CAIYUN_API_TOKEN", "")
		opts := mockOptions(t)
		opts.Mock = false
		opts.AmapKey = "flag-key"
		opts.CaiyunToken = "flag-token"

		_, err := NewApplication(opts)

		assert.NoError(t, err)
	})
}

func TestMockRun(t *testing.T) {
	t.Run("DeterministicAcrossInvocations", func(t *testing.T) {
		opts := mockOptions(t)
		clock := testClock()

		first := runMock(t, opts, clock)
		second := runMock(t, opts, clock)

		assert.NotEmpty(t, first)
		assert.Equal(t, first, second)
	})

	t.Run("CacheRoundTripMatchesFreshRun", func(t *testing.T) {
		clock := testClock()

		sharedCache := mockOptions(t)
		warm := runMock(t, sharedCache, clock)
		cached := runMock(t, sharedCache, clock)

		fresh := runMock(t, mockOptions(t), clock)

		assert.Equal(t, warm, cached)
		assert.Equal(t, fresh, cached)
	})

	t.Run("TextSections", func(t *testing.T) {
		out := runMock(t, mockOptions(t), testClock())

		assert.Contains(t, out, "**北京市朝阳区｜天气**")
		assert.Contains(t, out, "**近几日天气**")
		assert.Contains(t, out, "**未来 6 小时**")
	})

	t.Run("JSONShape", func(t *testing.T) {
		opts := mockOptions(t)
		opts.Format = "json"

		out := runMock(t, opts, testClock())

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Len(t, decoded, 3)
		assert.Contains(t, decoded, "daily")
		assert.Contains(t, decoded, "hourly")
		assert.Contains(t, decoded, "realtime")

		hourly, ok := decoded["hourly"].([]any)
		require.True(t, ok)
		assert.Len(t, hourly, 6)
		entry, ok := hourly[0].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, entry, "probability")
		assert.Contains(t, entry, "value")
	})

	t.Run("FullDetailHonorsHourlySteps", func(t *testing.T) {
		opts := mockOptions(t)
		opts.Format = "json"
		opts.Detail = "full"
		opts.HourlySteps = 48

		out := runMock(t, opts, testClock())

		var decoded struct {
			Hourly []any `json:"hourly"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Len(t, decoded.Hourly, 48)
	})

	t.Run("BasicDetailIgnoresHourlySteps", func(t *testing.T) {
		opts := mockOptions(t)
		opts.Format = "json"
		opts.HourlySteps = 48

		out := runMock(t, opts, testClock())

		var decoded struct {
			Hourly []any `json:"hourly"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Len(t, decoded.Hourly, 6)
	})

	t.Run("RawPayloadAttached", func(t *testing.T) {
		opts := mockOptions(t)
		opts.Format = "json"
		opts.IncludeRaw = true

		out := runMock(t, opts, testClock())

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Contains(t, decoded, "raw")
	})
}

func TestNormalizePlace(t *testing.T) {
	assert.Equal(t, "北京市", NormalizePlace(" 北京 市 "))
	assert.Equal(t, "北京", NormalizePlace("北京，"))
	assert.Equal(t, "杭州西湖", NormalizePlace("杭州西湖的"))
	assert.Equal(t, "上海", NormalizePlace("上海。；："))
	assert.Equal(t, "", NormalizePlace("  "))
}

func TestEffectiveHourlySteps(t *testing.T) {
	basic := Options{Detail: "basic", HourlySteps: 48}
	assert.Equal(t, 6, basic.EffectiveHourlySteps())

	full := Options{Detail: "full", HourlySteps: 48}
	assert.Equal(t, 48, full.EffectiveHourlySteps())
}
