package main

import (
	"net/http"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/handler"
	"weather-dashboard/internal/middleware"
	"weather-dashboard/internal/redis"
	"weather-dashboard/internal/service"
	"weather-dashboard/internal/session"
	"weather-dashboard/internal/store"
)

func newPreferenceStore() (store.PreferenceStore, error) {
	if config.GetStoreBackend() == "redis" {
		return store.NewRedisStore(redis.GetClient()), nil
	}
	return store.NewCSVStore(config.GetDataDir())
}

func main() {
	logger := config.GetLogger()

	prefStore, err := newPreferenceStore()
	if err != nil {
		logger.Fatalw("could not initialize preference store", "error", err)
	}

	dashboardService := service.NewDashboardService(nil, nil)
	preferenceService := service.NewPreferenceService(prefStore)
	sessions := session.NewManager(prefStore)

	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	favoritesHandler := handler.NewFavoritesHandler(preferenceService)
	settingsHandler := handler.NewSettingsHandler(preferenceService)
	sessionHandler := handler.NewSessionHandler(sessions)

	mux := http.NewServeMux()
	mux.HandleFunc("/dashboard", dashboardHandler.HandleDashboard)
	mux.HandleFunc("/favorites", favoritesHandler.HandleFavorites)
	mux.HandleFunc("/settings/unit", settingsHandler.HandleUnit)
	mux.HandleFunc("/login", sessionHandler.HandleLogin)
	mux.HandleFunc("/logout", sessionHandler.HandleLogout)

	middleware.StartRateLimiterCleanup()

	port := config.GetServerPort()
	logger.Infow("Weather dashboard server running",
		"port", port,
		"store", config.GetStoreBackend(),
	)
	if err := http.ListenAndServe(":"+port, middleware.RateLimitMiddleware(mux)); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}
