package location

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/model"
)

// Custom error types
var (
	// ErrNotFound means the geocoding service answered but produced no
	// acceptable city or town match.
	ErrNotFound = errors.New("city not found")
	// ErrUnavailable means the geocoding call itself failed (transport
	// error or non-200 status).
	ErrUnavailable = errors.New("geocoding service unavailable")
)

// Resolver turns an IP address or a free-text city name into coordinates.
type Resolver interface {
	ResolveByIP(ctx context.Context) model.Location
	ResolveByName(ctx context.Context, name string) (*model.Location, error)
}

type resolver struct {
	httpClient *http.Client
}

// NewResolver creates a location resolver instance
func NewResolver(httpClient ...*http.Client) Resolver {
	client := http.DefaultClient
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &resolver{httpClient: client}
}

// ResolveByIP geolocates the server's public IP. It fails open: any
// failure (transport, non-200, missing or malformed fields) yields the
// configured fallback city with its fixed coordinates, never an error.
func (r *resolver) ResolveByIP(ctx context.Context) model.Location {
	fallbackCity, fallbackLat, fallbackLon := config.GetFallbackLocation()
	fallback := model.Location{City: fallbackCity, Latitude: fallbackLat, Longitude: fallbackLon}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.GetIPInfoURL(), nil)
	if err != nil {
		return fallback
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		config.GetLogger().Warnw("IP geolocation failed, using fallback", "error", err)
		return fallback
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		config.GetLogger().Warnw("IP geolocation failed, using fallback", "status", resp.StatusCode)
		return fallback
	}

	var data model.IPInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return fallback
	}

	lat, lon, ok := parseLoc(data.Loc)
	if !ok {
		return fallback
	}
	city := data.City
	if city == "" {
		city = fallbackCity
	}
	return model.Location{City: city, Latitude: lat, Longitude: lon}
}

// parseLoc splits a combined "lat,lon" field into two floats.
func parseLoc(loc string) (lat, lon float64, ok bool) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// ResolveByName geocodes a free-text city name. Only results whose address
// type is "city" or "town" are accepted; the first result wins, with no
// ranking beyond what the service returns.
func (r *resolver) ResolveByName(ctx context.Context, name string) (*model.Location, error) {
	params := url.Values{}
	params.Add("q", name)
	params.Add("format", "json")
	params.Add("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.GetNominatimURL()+"?"+params.Encode(), nil)
	if err != nil {
		return nil, ErrUnavailable
	}
	req.Header.Set("User-Agent", config.GetNominatimUserAgent())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnavailable
	}

	var results []model.NominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, ErrUnavailable
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	loc := results[0]
	if loc.AddressType != "city" && loc.AddressType != "town" {
		return nil, ErrNotFound
	}

	lat, err := strconv.ParseFloat(loc.Lat, 64)
	if err != nil {
		return nil, ErrNotFound
	}
	lon, err := strconv.ParseFloat(loc.Lon, 64)
	if err != nil {
		return nil, ErrNotFound
	}

	return &model.Location{
		City:      name,
		Latitude:  lat,
		Longitude: lon,
		Address:   loc.DisplayName,
	}, nil
}
