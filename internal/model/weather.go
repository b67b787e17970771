package model

import "time"

// CurrentConditions is a single snapshot of present weather. All numeric
// values are in the unit system the snapshot was fetched with.
type CurrentConditions struct {
	Temperature      float64 `json:"temperature"`
	WindSpeed        float64 `json:"wind_speed"`
	RelativeHumidity float64 `json:"relative_humidity"`
	ApparentTemp     float64 `json:"apparent_temperature"`
	WeatherCode      int     `json:"weather_code"`
}

// HourlyPoint is one (timestamp, temperature, humidity) sample.
type HourlyPoint struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
}

// HourlySeries is an hourly forecast ordered by time ascending.
type HourlySeries []HourlyPoint

// DailyForecastEntry is one day of the multi-day forecast.
type DailyForecastEntry struct {
	Date              time.Time `json:"date"`
	MaxTemp           float64   `json:"max_temp"`
	MinTemp           float64   `json:"min_temp"`
	PrecipProbability float64   `json:"precipitation_probability"`
	WeatherCode       int       `json:"weather_code"`
}

// SunTimes holds sunrise and sunset for a single day.
type SunTimes struct {
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}
