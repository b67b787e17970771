package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/model"
)

// ErrUnavailable means the forecast API call failed (transport error or
// non-200 status). There is no retry; the caller renders without that section.
var ErrUnavailable = errors.New("forecast service unavailable")

// Forecast timestamps arrive as local wall-clock strings because every
// request sends timezone=auto.
const (
	timeLayout = "2006-01-02T15:04"
	dateLayout = "2006-01-02"
)

// Client fetches forecast data for a coordinate pair from Open-Meteo.
type Client interface {
	GetCurrent(ctx context.Context, lat, lon float64, unit model.Unit) (*model.CurrentConditions, error)
	GetHourly(ctx context.Context, lat, lon float64, unit model.Unit) (model.HourlySeries, error)
	GetDailyForecast(ctx context.Context, lat, lon float64, unit model.Unit, days int) ([]model.DailyForecastEntry, error)
	GetSunTimes(ctx context.Context, lat, lon float64) (*model.SunTimes, error)
}

type client struct {
	httpClient *http.Client
}

// NewClient creates a forecast client instance
func NewClient(httpClient ...*http.Client) Client {
	c := http.DefaultClient
	if len(httpClient) > 0 && httpClient[0] != nil {
		c = httpClient[0]
	}
	return &client{httpClient: c}
}

// fetch performs a single GET against the forecast API with the given
// query parameters. Coordinates are always included; the unit value is
// forwarded verbatim, never converted locally.
func (c *client) fetch(ctx context.Context, lat, lon float64, params url.Values) (*model.OpenMeteoResponse, error) {
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.GetOpenMeteoURL()+"?"+params.Encode(), nil)
	if err != nil {
		return nil, ErrUnavailable
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnavailable
	}

	var data model.OpenMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, ErrUnavailable
	}
	return &data, nil
}

func (c *client) GetCurrent(ctx context.Context, lat, lon float64, unit model.Unit) (*model.CurrentConditions, error) {
	params := url.Values{}
	params.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m,apparent_temperature,weather_code")
	params.Set("temperature_unit", string(unit))
	params.Set("wind_speed_unit", unit.WindSpeedUnit())

	data, err := c.fetch(ctx, lat, lon, params)
	if err != nil {
		return nil, err
	}
	return &model.CurrentConditions{
		Temperature:      data.Current.Temperature2M,
		WindSpeed:        data.Current.WindSpeed10M,
		RelativeHumidity: data.Current.RelativeHumidity,
		ApparentTemp:     data.Current.ApparentTemp,
		WeatherCode:      data.Current.WeatherCode,
	}, nil
}

func (c *client) GetHourly(ctx context.Context, lat, lon float64, unit model.Unit) (model.HourlySeries, error) {
	params := url.Values{}
	params.Set("hourly", "temperature_2m,relative_humidity_2m")
	params.Set("temperature_unit", string(unit))

	data, err := c.fetch(ctx, lat, lon, params)
	if err != nil {
		return nil, err
	}

	series := make(model.HourlySeries, 0, len(data.Hourly.Time))
	for i, ts := range data.Hourly.Time {
		if i >= len(data.Hourly.Temperature2M) || i >= len(data.Hourly.RelativeHumidity) {
			break
		}
		t, err := time.ParseInLocation(timeLayout, ts, time.Local)
		if err != nil {
			continue
		}
		series = append(series, model.HourlyPoint{
			Time:        t,
			Temperature: data.Hourly.Temperature2M[i],
			Humidity:    data.Hourly.RelativeHumidity[i],
		})
	}
	return series, nil
}

func (c *client) GetDailyForecast(ctx context.Context, lat, lon float64, unit model.Unit, days int) ([]model.DailyForecastEntry, error) {
	if days != 5 && days != 7 {
		return nil, fmt.Errorf("forecast length must be 5 or 7 days, got %d", days)
	}

	params := url.Values{}
	params.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,precipitation_probability_max")
	params.Set("temperature_unit", string(unit))
	params.Set("forecast_days", strconv.Itoa(days))

	data, err := c.fetch(ctx, lat, lon, params)
	if err != nil {
		return nil, err
	}

	entries := make([]model.DailyForecastEntry, 0, len(data.Daily.Time))
	for i, ds := range data.Daily.Time {
		if i >= len(data.Daily.Temperature2MMax) || i >= len(data.Daily.Temperature2MMin) {
			break
		}
		date, err := time.ParseInLocation(dateLayout, ds, time.Local)
		if err != nil {
			continue
		}
		entry := model.DailyForecastEntry{
			Date:    date,
			MaxTemp: data.Daily.Temperature2MMax[i],
			MinTemp: data.Daily.Temperature2MMin[i],
		}
		if i < len(data.Daily.WeatherCode) {
			entry.WeatherCode = data.Daily.WeatherCode[i]
		}
		if i < len(data.Daily.PrecipProbability) {
			entry.PrecipProbability = data.Daily.PrecipProbability[i]
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GetSunTimes fetches sunrise and sunset; only the first day is used.
func (c *client) GetSunTimes(ctx context.Context, lat, lon float64) (*model.SunTimes, error) {
	params := url.Values{}
	params.Set("daily", "sunrise,sunset")

	data, err := c.fetch(ctx, lat, lon, params)
	if err != nil {
		return nil, err
	}
	if len(data.Daily.Sunrise) == 0 || len(data.Daily.Sunset) == 0 {
		return nil, ErrUnavailable
	}

	sunrise, err := time.ParseInLocation(timeLayout, data.Daily.Sunrise[0], time.Local)
	if err != nil {
		return nil, ErrUnavailable
	}
	sunset, err := time.ParseInLocation(timeLayout, data.Daily.Sunset[0], time.Local)
	if err != nil {
		return nil, ErrUnavailable
	}
	return &model.SunTimes{Sunrise: sunrise, Sunset: sunset}, nil
}
