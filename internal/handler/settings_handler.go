package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"weather-dashboard/internal/model"
	"weather-dashboard/internal/service"
	"weather-dashboard/internal/store"
)

type SettingsHandler struct {
	Preferences service.PreferenceServiceInterface
}

func NewSettingsHandler(prefs service.PreferenceServiceInterface) *SettingsHandler {
	return &SettingsHandler{Preferences: prefs}
}

type unitRequest struct {
	User string `json:"user"`
	Unit string `json:"unit"`
}

// HandleUnit serves /settings/unit: GET reads a user's saved unit, PUT
// upserts it.
func (h *SettingsHandler) HandleUnit(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.save(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		writeError(w, http.StatusBadRequest, "Missing 'user' query parameter")
		return
	}

	unit, err := h.Preferences.Unit(r.Context(), user)
	switch {
	case errors.Is(err, store.ErrNoPreference):
		writeError(w, http.StatusNotFound, "No unit preference saved for user")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to load unit preference")
		return
	}

	writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    model.UnitPreference{User: user, Unit: unit},
		Message: "Success",
	})
}

func (h *SettingsHandler) save(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	unit, err := model.ParseUnit(req.Unit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.Preferences.SaveUnit(r.Context(), req.User, unit)
	switch {
	case errors.Is(err, service.ErrEmptyField):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to save unit preference")
		return
	}

	writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    model.UnitPreference{User: req.User, Unit: unit},
		Message: "Success",
	})
}
