package present

import (
	"fmt"
	"strings"
	"time"

	"weather-dashboard/internal/catalog"
	"weather-dashboard/internal/model"
)

// Window sizes (hours) the forecast-range selector offers.
var validWindows = map[int]bool{12: true, 24: true, 36: true, 48: true}

// ValidWindow reports whether hours is a selectable forecast window.
func ValidWindow(hours int) bool {
	return validWindows[hours]
}

// FilterHourly keeps the points of a series that fall in [now, now+hours):
// inclusive at now, exclusive at the far boundary. Ordering is preserved.
func FilterHourly(series model.HourlySeries, now time.Time, hours int) (model.HourlySeries, error) {
	if !ValidWindow(hours) {
		return nil, fmt.Errorf("forecast window must be 12, 24, 36 or 48 hours, got %d", hours)
	}
	end := now.Add(time.Duration(hours) * time.Hour)

	filtered := make(model.HourlySeries, 0, hours)
	for _, p := range series {
		if p.Time.Before(now) || !p.Time.Before(end) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// DegreeSuffix is the degree symbol plus the first letter of the unit
// name, uppercased: "°F" or "°C".
func DegreeSuffix(unit model.Unit) string {
	if unit == "" {
		return "°"
	}
	return "°" + strings.ToUpper(string(unit)[:1])
}

// Metrics are the four current-conditions tiles.
type Metrics struct {
	Temperature string `json:"temperature"`
	Wind        string `json:"wind"`
	Humidity    string `json:"humidity"`
	FeelsLike   string `json:"feels_like"`
}

// BuildMetrics formats a conditions snapshot for display.
func BuildMetrics(current model.CurrentConditions, unit model.Unit) Metrics {
	deg := DegreeSuffix(unit)
	return Metrics{
		Temperature: fmt.Sprintf("%.1f%s", current.Temperature, deg),
		Wind:        fmt.Sprintf("%.1f %s", current.WindSpeed, unit.WindSpeedLabel()),
		Humidity:    fmt.Sprintf("%.0f%%", current.RelativeHumidity),
		FeelsLike:   fmt.Sprintf("%.1f%s", current.ApparentTemp, deg),
	}
}

// ChartSeries is the hourly temperature and humidity line chart payload.
type ChartSeries struct {
	Times       []string  `json:"times"`
	Temperature []float64 `json:"temperature"`
	Humidity    []float64 `json:"humidity"`
}

// BuildChart shapes an hourly series for the chart.
func BuildChart(series model.HourlySeries) ChartSeries {
	chart := ChartSeries{
		Times:       make([]string, 0, len(series)),
		Temperature: make([]float64, 0, len(series)),
		Humidity:    make([]float64, 0, len(series)),
	}
	for _, p := range series {
		chart.Times = append(chart.Times, p.Time.Format("Jan 02, 03:04 PM"))
		chart.Temperature = append(chart.Temperature, p.Temperature)
		chart.Humidity = append(chart.Humidity, p.Humidity)
	}
	return chart
}

// ForecastRow is one line of the multi-day forecast table.
type ForecastRow struct {
	Date          string `json:"date"`
	Condition     string `json:"condition"`
	Icon          string `json:"icon"`
	MinTemp       string `json:"min_temp"`
	MaxTemp       string `json:"max_temp"`
	Precipitation string `json:"precipitation"`
}

// BuildForecast formats daily entries into table rows.
func BuildForecast(entries []model.DailyForecastEntry, unit model.Unit) []ForecastRow {
	deg := DegreeSuffix(unit)
	rows := make([]ForecastRow, 0, len(entries))
	for _, e := range entries {
		cond := catalog.Lookup(e.WeatherCode)
		rows = append(rows, ForecastRow{
			Date:          e.Date.Format("Monday, Jan 02"),
			Condition:     cond.Label,
			Icon:          cond.Icon,
			MinTemp:       fmt.Sprintf("%.1f%s", e.MinTemp, deg),
			MaxTemp:       fmt.Sprintf("%.1f%s", e.MaxTemp, deg),
			Precipitation: fmt.Sprintf("%.0f%%", e.PrecipProbability),
		})
	}
	return rows
}

// SunCard is the sunrise/sunset tile pair.
type SunCard struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// BuildSunCard formats the first day's sun times.
func BuildSunCard(sun model.SunTimes) SunCard {
	return SunCard{
		Sunrise: sun.Sunrise.Format("03:04 PM"),
		Sunset:  sun.Sunset.Format("03:04 PM"),
	}
}

// Dashboard is the full render-ready page payload. Sections whose fetch
// failed are nil and named in Warnings; the rest of the page still renders.
type Dashboard struct {
	Location   model.Location `json:"location"`
	Date       string         `json:"date"`
	Unit       model.Unit     `json:"unit"`
	Condition  string         `json:"condition,omitempty"`
	Icon       string         `json:"icon,omitempty"`
	Background string         `json:"background,omitempty"`
	Current    *Metrics       `json:"current,omitempty"`
	Chart      *ChartSeries   `json:"chart,omitempty"`
	Forecast   []ForecastRow  `json:"forecast,omitempty"`
	Sun        *SunCard       `json:"sun,omitempty"`
	Warnings   []string       `json:"warnings,omitempty"`
}
