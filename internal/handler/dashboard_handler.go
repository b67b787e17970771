package handler

import (
	"errors"
	"net/http"
	"strconv"

	"weather-dashboard/internal/location"
	"weather-dashboard/internal/model"
	"weather-dashboard/internal/service"
)

type DashboardHandler struct {
	DashboardService service.DashboardServiceInterface
}

func NewDashboardHandler(svc ...service.DashboardServiceInterface) *DashboardHandler {
	var dashboardService service.DashboardServiceInterface
	if len(svc) > 0 && svc[0] != nil {
		dashboardService = svc[0]
	} else {
		dashboardService = service.NewDashboardService(nil, nil)
	}
	return &DashboardHandler{DashboardService: dashboardService}
}

// HandleDashboard serves GET /dashboard. All query parameters are optional:
// an empty city falls back to IP geolocation, unit defaults to fahrenheit,
// window to 12 hours and days to 7.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	query := service.DashboardQuery{
		City:        r.URL.Query().Get("city"),
		Unit:        model.UnitFahrenheit,
		WindowHours: 12,
		Days:        7,
	}

	if u := r.URL.Query().Get("unit"); u != "" {
		unit, err := model.ParseUnit(u)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		query.Unit = unit
	}
	if ws := r.URL.Query().Get("window"); ws != "" {
		hours, err := strconv.Atoi(ws)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'window' query parameter")
			return
		}
		query.WindowHours = hours
	}
	if ds := r.URL.Query().Get("days"); ds != "" {
		days, err := strconv.Atoi(ds)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'days' query parameter")
			return
		}
		query.Days = days
	}

	dashboard, err := h.DashboardService.GetDashboard(r.Context(), query)
	switch {
	case errors.Is(err, location.ErrNotFound):
		writeError(w, http.StatusNotFound, "City '"+query.City+"' not found. Please try a valid city.")
		return
	case errors.Is(err, location.ErrUnavailable):
		writeError(w, http.StatusBadGateway, "Geocoding service unavailable")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    dashboard,
		Message: "Success",
	})
}
