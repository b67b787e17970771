package config

import (
	"flag"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Errorw("Error finding project root", "error", err)
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
		}

		err = viper.MergeInConfig()
		if err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func GetOpenMeteoURL() string {
	initConfig()
	return viper.GetString("openmeteo.api_url")
}

func GetNominatimURL() string {
	initConfig()
	return viper.GetString("nominatim.api_url")
}

// GetNominatimUserAgent builds the User-Agent sent to the geocoding service.
// Nominatim's usage policy asks for a contact address, so the value from
// NOMINATIM_CONTACT_EMAIL is appended when present.
func GetNominatimUserAgent() string {
	initConfig()
	ua := viper.GetString("nominatim.user_agent")
	_ = godotenv.Load()
	if contact := os.Getenv("NOMINATIM_CONTACT_EMAIL"); contact != "" {
		ua = ua + " (" + contact + ")"
	}
	return ua
}

func GetIPInfoURL() string {
	initConfig()
	return viper.GetString("ipinfo.api_url")
}

// GetFallbackLocation returns the city and coordinates used when IP
// geolocation cannot produce a usable answer.
func GetFallbackLocation() (city string, lat, lon float64) {
	initConfig()
	city = viper.GetString("location.fallback_city")
	if city == "" {
		city = "Hoboken"
	}
	lat = viper.GetFloat64("location.fallback_lat")
	lon = viper.GetFloat64("location.fallback_lon")
	if lat == 0 && lon == 0 {
		lat, lon = 40.744, -74.0324
	}
	return
}

func GetServerPort() string {
	initConfig()
	serverPort := viper.GetString("server.port")
	if serverPort == "" {
		serverPort = "8080"
	}
	return serverPort
}

func GetServerTimeout(key string) string {
	initConfig()
	return viper.GetString("server." + key)
}

// GetFetchTimeout returns the deadline applied to each dashboard fan-out
// fetch. Defaults to 5s if not set or invalid.
func GetFetchTimeout() time.Duration {
	initConfig()
	durStr := viper.GetString("fetch.timeout")
	if durStr == "" {
		durStr = "5s"
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		return 5 * time.Second
	}
	return dur
}

func GetStoreBackend() string {
	initConfig()
	backend := viper.GetString("store.backend")
	if backend == "" {
		backend = "csv"
	}
	return backend
}

func GetDataDir() string {
	initConfig()
	dir := viper.GetString("store.data_dir")
	if dir == "" {
		dir = "data"
	}
	return dir
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

// GetRateLimiterCleanupTimeout returns the rate limiter cleanup timeout as a time.Duration.
// Defaults to 3m if not set or invalid.
func GetRateLimiterCleanupTimeout() time.Duration {
	initConfig()
	durStr := viper.GetString("rate_limiter.cleanup_timeout")
	if durStr == "" {
		durStr = "3m"
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		return 3 * time.Minute
	}
	return dur
}

// GetGlobalRateLimiterConfig returns the rate and burst for the global rate limiter from config.
func GetGlobalRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("rate_limiter.global.rate")
	if rate == 0 {
		rate = 10
	}
	burst = viper.GetInt("rate_limiter.global.burst")
	if burst == 0 {
		burst = 10
	}
	return
}

// GetParamRateLimiterConfig returns the rate and burst for the per-city rate limiter from config.
func GetParamRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("rate_limiter.param.rate")
	if rate == 0 {
		rate = 2
	}
	burst = viper.GetInt("rate_limiter.param.burst")
	if burst == 0 {
		burst = 2
	}
	return
}
