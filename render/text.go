// Package render turns a weather snapshot into terminal/bot output.
// Both renderers are pure functions of the snapshot.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"weathercn.app/models"
)

const maxAlertLines = 3

// Text renders the snapshot as Telegram-flavored markdown: bold section
// headers, bullet lists and a fixed-width hourly code block. Daily rows
// carry weekday labels only, never calendar dates.
func Text(snapshot *models.WeatherSnapshot, detail models.DetailLevel) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**%s｜天气**\n", snapshot.ResolvedAddress)
	fmt.Fprintf(&b, "`查询时间 %s`\n\n", snapshot.QueryTime)

	b.WriteString("**近几日天气**\n")
	for _, day := range snapshot.Daily {
		weekday := day.Weekday
		if weekday == "" {
			weekday = "未知"
		}
		fmt.Fprintf(&b, "• %s %s  %s～%s°C\n",
			weekday, day.Condition, formatFloat(day.TempMin), formatFloat(day.TempMax))
	}
	b.WriteString("\n")

	realtime := snapshot.Realtime
	b.WriteString("**当前**\n")
	fmt.Fprintf(&b, "• %s°C（体感 %s°C）｜湿度 %d%%\n",
		formatFloat(realtime.Temperature), formatFloat(realtime.ApparentTemperature), realtime.HumidityPercent)

	if len(snapshot.Hourly) > 0 {
		fmt.Fprintf(&b, "\n**未来 %d 小时**\n", len(snapshot.Hourly))
		b.WriteString("```text\n")
		for _, item := range snapshot.Hourly {
			fmt.Fprintf(&b, "%s  %s  %s  降水 %s  %.2f mm/h\n",
				padLeft(hourLabel(item.Datetime), 5),
				padRight(item.Condition, 2),
				padRight(fmt.Sprintf("%.2f°C", item.Temperature), 8),
				padLeft(fmt.Sprintf("%d%%", int(math.Round(item.Probability))), 3),
				item.Value)
		}
		b.WriteString("```\n")
	}

	if detail == models.DetailFull {
		writeFullDetail(&b, snapshot)
	}

	return b.String()
}

func writeFullDetail(b *strings.Builder, snapshot *models.WeatherSnapshot) {
	realtime := snapshot.Realtime
	if realtime.AQIChn != nil || realtime.PM25 != nil {
		fmt.Fprintf(b, "空气质量: AQI(国标) %s, PM2.5 %s\n",
			formatOptional(realtime.AQIChn), formatOptional(realtime.PM25))
	}

	if m := snapshot.Minutely; m != nil && (m.Description != "" || m.MaxProbability != nil) {
		desc := m.Description
		if desc == "" {
			desc = "无"
		}
		probText := "--"
		if m.MaxProbability != nil {
			probText = fmt.Sprintf("%d%%", int(math.Round(*m.MaxProbability*100)))
		}
		fmt.Fprintf(b, "分钟级降雨: %s (最大概率 %s)\n", desc, probText)
	}

	if len(snapshot.Alerts) > 0 {
		fmt.Fprintf(b, "⚠️ 天气预警: %d 条\n", len(snapshot.Alerts))
		for i, alert := range snapshot.Alerts {
			if i == maxAlertLines {
				break
			}
			status := alert.Status
			if status == "" {
				status = "未知状态"
			}
			fmt.Fprintf(b, "  %s (%s)\n", alert.Title, status)
		}
	}
}

// hourLabel reduces "2006-01-02 15:04" to "15:04"; anything shorter is
// shown as-is.
func hourLabel(datetime string) string {
	if len(datetime) >= 5 && strings.Contains(datetime, ":") {
		return datetime[len(datetime)-5:]
	}
	return datetime
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "--"
	}
	return formatFloat(*v)
}

// Rune-aware padding keeps the code block aligned when condition labels
// mix CJK and ASCII.
func padLeft(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
