package integrationtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"weather-dashboard/internal/config"
	"weather-dashboard/internal/handler"
	"weather-dashboard/internal/redis"
	"weather-dashboard/internal/service"
	"weather-dashboard/internal/session"
	"weather-dashboard/internal/store"
)

type DashboardAPITestSuite struct {
	suite.Suite
	httpServer *httptest.Server
	miniRedis  *miniredis.Miniredis
	upstreams  []*httptest.Server
}

func (suite *DashboardAPITestSuite) SetupSuite() {
	mr, err := miniredis.Run()
	if err != nil {
		suite.T().Fatalf("could not start redis mock: %v", err)
	}
	suite.miniRedis = mr

	meteo := mockOpenMeteoAPI()
	nominatim := mockNominatimAPI()
	ipinfo := mockIPInfoAPI()
	suite.upstreams = []*httptest.Server{meteo, nominatim, ipinfo}

	viper.Set("redis.addr", mr.Addr())
	viper.Set("store.backend", "redis")
	viper.Set("openmeteo.api_url", meteo.URL)
	viper.Set("nominatim.api_url", nominatim.URL)
	viper.Set("ipinfo.api_url", ipinfo.URL)
	config.ReloadConfigForTest()
	redis.ResetClientForTest()

	prefStore := store.NewRedisStore(redis.GetClient())
	preferences := service.NewPreferenceService(prefStore)
	sessions := session.NewManager(prefStore)

	mux := http.NewServeMux()
	mux.HandleFunc("/dashboard", handler.NewDashboardHandler(service.NewDashboardService(nil, nil)).HandleDashboard)
	mux.HandleFunc("/favorites", handler.NewFavoritesHandler(preferences).HandleFavorites)
	mux.HandleFunc("/settings/unit", handler.NewSettingsHandler(preferences).HandleUnit)
	sessionHandler := handler.NewSessionHandler(sessions)
	mux.HandleFunc("/login", sessionHandler.HandleLogin)
	mux.HandleFunc("/logout", sessionHandler.HandleLogout)

	suite.httpServer = httptest.NewServer(mux)
}

func (suite *DashboardAPITestSuite) TearDownSuite() {
	if suite.httpServer != nil {
		suite.httpServer.Close()
	}
	for _, s := range suite.upstreams {
		s.Close()
	}
	if suite.miniRedis != nil {
		suite.miniRedis.Close()
	}
	viper.Set("store.backend", "csv")
	config.ReloadConfigForTest()
}

func TestDashboardAPITestSuite(t *testing.T) {
	suite.Run(t, new(DashboardAPITestSuite))
}

func (suite *DashboardAPITestSuite) TestDashboardEndpoint() {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		validate   func(t *testing.T, body string)
	}{
		{
			name:       "Success - dashboard by city",
			target:     "/dashboard?city=London&unit=celsius&window=24&days=5",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body string) {
				assert.Contains(t, body, `"city":"London"`)
				assert.Contains(t, body, "Success")
				assert.Contains(t, body, "°C")
			},
		},
		{
			name:       "Success - dashboard by IP with defaults",
			target:     "/dashboard",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body string) {
				assert.Contains(t, body, `"city":"Testville"`)
			},
		},
		{
			name:       "Failed - unknown city",
			target:     "/dashboard?city=Nowhere",
			wantStatus: http.StatusNotFound,
			validate: func(t *testing.T, body string) {
				assert.Contains(t, body, "not found")
			},
		},
		{
			name:       "Failed - bad window",
			target:     "/dashboard?window=17",
			wantStatus: http.StatusBadRequest,
			validate:   func(t *testing.T, body string) {},
		},
		{
			name:       "Failed - bad unit",
			target:     "/dashboard?unit=kelvin",
			wantStatus: http.StatusBadRequest,
			validate:   func(t *testing.T, body string) {},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			resp, err := http.Get(suite.httpServer.URL + tt.target)
			assert.NoError(suite.T(), err)
			defer resp.Body.Close()

			assert.Equal(suite.T(), tt.wantStatus, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			tt.validate(suite.T(), string(body))
		})
	}
}

func (suite *DashboardAPITestSuite) TestPreferenceFlow() {
	base := suite.httpServer.URL
	t := suite.T()

	// Login starts with defaults.
	resp, err := http.Post(base+"/login", "application/json", strings.NewReader(`{"email":"flow@x.com"}`))
	assert.NoError(t, err)
	var loginResp struct {
		Data session.Session `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	resp.Body.Close()
	assert.NotEmpty(t, loginResp.Data.Token)
	assert.Equal(t, "fahrenheit", string(loginResp.Data.Unit))
	assert.Empty(t, loginResp.Data.Favorites)

	// Save a favorite and a unit preference.
	resp, err = http.Post(base+"/favorites", "application/json", strings.NewReader(`{"user":"flow@x.com","city":"London"}`))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodPut, base+"/settings/unit", strings.NewReader(`{"user":"flow@x.com","unit":"celsius"}`))
	resp, err = http.DefaultClient.Do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// A duplicate favorite comes back as a conflict warning.
	resp, err = http.Post(base+"/favorites", "application/json", strings.NewReader(`{"user":"flow@x.com","city":"London"}`))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// A fresh login sees the persisted state.
	resp, err = http.Post(base+"/login", "application/json", strings.NewReader(`{"email":"flow@x.com"}`))
	assert.NoError(t, err)
	loginResp.Data = session.Session{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	resp.Body.Close()
	assert.Equal(t, "celsius", string(loginResp.Data.Unit))
	assert.Equal(t, []string{"London"}, loginResp.Data.Favorites)

	// Logout clears the session.
	resp, err = http.Post(base+"/logout?token="+loginResp.Data.Token, "application/json", nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (suite *DashboardAPITestSuite) TestFavoriteCap() {
	base := suite.httpServer.URL
	t := suite.T()

	for i := 0; i < 5; i++ {
		body := fmt.Sprintf(`{"user":"cap@x.com","city":"City%d"}`, i)
		resp, err := http.Post(base+"/favorites", "application/json", strings.NewReader(body))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := http.Post(base+"/favorites", "application/json", strings.NewReader(`{"user":"cap@x.com","city":"City5"}`))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "at most 5")
}

// hourlyTimes generates local wall-clock stamps starting at the next full
// hour, so the forecast window filter always keeps them.
func hourlyTimes(n int) ([]string, []float64, []float64) {
	start := time.Now().Truncate(time.Hour).Add(time.Hour)
	times := make([]string, 0, n)
	temps := make([]float64, 0, n)
	hums := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		times = append(times, start.Add(time.Duration(i)*time.Hour).Format("2006-01-02T15:04"))
		temps = append(temps, 15+float64(i))
		hums = append(hums, 50+float64(i))
	}
	return times, temps, hums
}

func mockOpenMeteoAPI() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")

		payload := map[string]interface{}{}
		switch {
		case q.Get("current") != "":
			payload["current"] = map[string]interface{}{
				"temperature_2m":       18.5,
				"relative_humidity_2m": 60.0,
				"wind_speed_10m":       12.0,
				"apparent_temperature": 17.2,
				"weather_code":         2,
			}
		case q.Get("hourly") != "":
			times, temps, hums := hourlyTimes(48)
			payload["hourly"] = map[string]interface{}{
				"time":                 times,
				"temperature_2m":       temps,
				"relative_humidity_2m": hums,
			}
		case strings.Contains(q.Get("daily"), "sunrise"):
			today := time.Now().Format("2006-01-02")
			payload["daily"] = map[string]interface{}{
				"sunrise": []string{today + "T06:31"},
				"sunset":  []string{today + "T19:26"},
			}
		case q.Get("daily") != "":
			days := 7
			if q.Get("forecast_days") == "5" {
				days = 5
			}
			dates := make([]string, 0, days)
			codes := make([]int, 0, days)
			maxs := make([]float64, 0, days)
			mins := make([]float64, 0, days)
			precip := make([]float64, 0, days)
			for i := 0; i < days; i++ {
				dates = append(dates, time.Now().AddDate(0, 0, i).Format("2006-01-02"))
				codes = append(codes, 61)
				maxs = append(maxs, 20+float64(i))
				mins = append(mins, 10+float64(i))
				precip = append(precip, 30)
			}
			payload["daily"] = map[string]interface{}{
				"time":                          dates,
				"weather_code":                  codes,
				"temperature_2m_max":            maxs,
				"temperature_2m_min":            mins,
				"precipitation_probability_max": precip,
			}
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
}

func mockNominatimAPI() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("q") == "London" {
			_, _ = w.Write([]byte(`[{"addresstype":"city","display_name":"London, Greater London, England, United Kingdom","lat":"51.5074456","lon":"-0.1277653"}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
}

func mockIPInfoAPI() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"city":"Testville","loc":"40.1,-74.2"}`))
	}))
}
