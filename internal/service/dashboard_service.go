package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"weather-dashboard/internal/catalog"
	"weather-dashboard/internal/config"
	"weather-dashboard/internal/location"
	"weather-dashboard/internal/model"
	"weather-dashboard/internal/present"
	"weather-dashboard/internal/weather"
)

// DashboardQuery carries the page parameters for one dashboard load.
type DashboardQuery struct {
	City        string
	Unit        model.Unit
	WindowHours int
	Days        int
}

// DashboardServiceInterface defines the interface for building a dashboard
type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, query DashboardQuery) (*present.Dashboard, error)
}

// DashboardService resolves a location and assembles the page payload.
type DashboardService struct {
	Resolver location.Resolver
	Weather  weather.Client
	now      func() time.Time
}

// NewDashboardService creates a dashboard service. Nil dependencies fall
// back to the default resolver and forecast client.
func NewDashboardService(resolver location.Resolver, client weather.Client) *DashboardService {
	if resolver == nil {
		resolver = location.NewResolver()
	}
	if client == nil {
		client = weather.NewClient()
	}
	return &DashboardService{
		Resolver: resolver,
		Weather:  client,
		now:      time.Now,
	}
}

// GetDashboard resolves the location (by city name when given, else by IP),
// fetches the four forecast sections concurrently and formats the result.
// The four fetches are independent: one endpoint failing leaves its section
// out of the payload and adds a warning, the rest still render.
func (s *DashboardService) GetDashboard(ctx context.Context, query DashboardQuery) (*present.Dashboard, error) {
	if !present.ValidWindow(query.WindowHours) {
		return nil, fmt.Errorf("forecast window must be 12, 24, 36 or 48 hours, got %d", query.WindowHours)
	}
	if query.Days != 5 && query.Days != 7 {
		return nil, fmt.Errorf("forecast length must be 5 or 7 days, got %d", query.Days)
	}

	var loc model.Location
	if query.City != "" {
		resolved, err := s.Resolver.ResolveByName(ctx, query.City)
		if err != nil {
			return nil, err
		}
		loc = *resolved
	} else {
		loc = s.Resolver.ResolveByIP(ctx)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, config.GetFetchTimeout())
	defer cancel()

	var (
		wg      sync.WaitGroup
		current *model.CurrentConditions
		hourly  model.HourlySeries
		daily   []model.DailyForecastEntry
		sun     *model.SunTimes

		currentErr, hourlyErr, dailyErr, sunErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		current, currentErr = s.Weather.GetCurrent(fetchCtx, loc.Latitude, loc.Longitude, query.Unit)
	}()
	go func() {
		defer wg.Done()
		hourly, hourlyErr = s.Weather.GetHourly(fetchCtx, loc.Latitude, loc.Longitude, query.Unit)
	}()
	go func() {
		defer wg.Done()
		daily, dailyErr = s.Weather.GetDailyForecast(fetchCtx, loc.Latitude, loc.Longitude, query.Unit, query.Days)
	}()
	go func() {
		defer wg.Done()
		sun, sunErr = s.Weather.GetSunTimes(fetchCtx, loc.Latitude, loc.Longitude)
	}()
	wg.Wait()

	now := s.now()
	dashboard := &present.Dashboard{
		Location: loc,
		Date:     now.Format("Monday, January 02, 2006"),
		Unit:     query.Unit,
	}

	if currentErr != nil {
		config.GetLogger().Warnw("current conditions fetch failed", "city", loc.City, "error", currentErr)
		dashboard.Warnings = append(dashboard.Warnings, "Failed to retrieve current weather data.")
	} else {
		metrics := present.BuildMetrics(*current, query.Unit)
		cond := catalog.Lookup(current.WeatherCode)
		dashboard.Current = &metrics
		dashboard.Condition = cond.Label
		dashboard.Icon = cond.Icon
		dashboard.Background = catalog.BackgroundFor(current.WeatherCode)
	}

	if hourlyErr != nil {
		config.GetLogger().Warnw("hourly forecast fetch failed", "city", loc.City, "error", hourlyErr)
		dashboard.Warnings = append(dashboard.Warnings, "Failed to retrieve hourly forecast data.")
	} else {
		filtered, err := present.FilterHourly(hourly, now, query.WindowHours)
		if err != nil {
			return nil, err
		}
		chart := present.BuildChart(filtered)
		dashboard.Chart = &chart
	}

	if dailyErr != nil {
		config.GetLogger().Warnw("daily forecast fetch failed", "city", loc.City, "error", dailyErr)
		dashboard.Warnings = append(dashboard.Warnings, "Failed to fetch forecast data.")
	} else {
		dashboard.Forecast = present.BuildForecast(daily, query.Unit)
	}

	if sunErr != nil {
		config.GetLogger().Warnw("sun times fetch failed", "city", loc.City, "error", sunErr)
		dashboard.Warnings = append(dashboard.Warnings, "Failed to fetch sunrise and sunset data.")
	} else {
		card := present.BuildSunCard(*sun)
		dashboard.Sun = &card
	}

	return dashboard, nil
}
