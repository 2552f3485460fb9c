package forecast

import (
	"regexp"
	"strings"
	"time"
)

// skyconCN maps Caiyun skycon codes to their Chinese labels. Unknown
// codes pass through untranslated so new upstream codes stay visible.
var skyconCN = map[string]string{
	"CLEAR_DAY":           "晴",
	"CLEAR_NIGHT":         "晴夜",
	"PARTLY_CLOUDY_DAY":   "多云",
	"PARTLY_CLOUDY_NIGHT": "多云夜",
	"CLOUDY":              "阴",
	"LIGHT_HAZE":          "轻度雾霾",
	"MODERATE_HAZE":       "中度雾霾",
	"HEAVY_HAZE":          "重度雾霾",
	"LIGHT_RAIN":          "小雨",
	"MODERATE_RAIN":       "中雨",
	"HEAVY_RAIN":          "大雨",
	"STORM_RAIN":          "暴雨",
	"FOG":                 "雾",
	"LIGHT_SNOW":          "小雪",
	"MODERATE_SNOW":       "中雪",
	"HEAVY_SNOW":          "大雪",
	"STORM_SNOW":          "暴雪",
	"DUST":                "浮尘",
	"SAND":                "沙尘",
	"WIND":                "大风",
}

var weekdayCN = [...]string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// SkyconCN translates a skycon code to its Chinese label
func SkyconCN(code string) string {
	if code == "" {
		return "未知"
	}
	if cn, ok := skyconCN[code]; ok {
		return cn
	}
	return code
}

// WeekdayLabel returns the Chinese weekday for a "2006-01-02" date,
// or the empty string when the date does not parse.
func WeekdayLabel(dateText string) string {
	t, err := time.Parse("2006-01-02", normalizeDate(dateText))
	if err != nil {
		return ""
	}
	// time.Weekday starts at Sunday; the labels start at Monday.
	return weekdayCN[(int(t.Weekday())+6)%7]
}

var datetimePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2})`)

func normalizeDate(s string) string {
	if before, _, found := strings.Cut(s, "T"); found {
		return before
	}
	return s
}

// normalizeDatetime reduces an upstream timestamp (usually RFC 3339 with
// a zone offset) to "2006-01-02 15:04".
func normalizeDatetime(s string) string {
	if s == "" {
		return s
	}
	text := strings.Replace(s, "T", " ", 1)
	if m := datetimePrefix.FindString(text); m != "" {
		return m
	}
	return text
}
