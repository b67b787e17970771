package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"weather-dashboard/internal/model"
	"weather-dashboard/internal/service"
	"weather-dashboard/internal/store"
)

type FavoritesHandler struct {
	Preferences service.PreferenceServiceInterface
}

func NewFavoritesHandler(prefs service.PreferenceServiceInterface) *FavoritesHandler {
	return &FavoritesHandler{Preferences: prefs}
}

type favoriteRequest struct {
	User string `json:"user"`
	City string `json:"city"`
}

// HandleFavorites serves /favorites: GET lists a user's saved cities,
// POST adds one, DELETE removes one. Cap and duplicate rejections come
// back as warnings, not hard failures.
func (h *FavoritesHandler) HandleFavorites(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.add(w, r)
	case http.MethodDelete:
		h.remove(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *FavoritesHandler) list(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		writeError(w, http.StatusBadRequest, "Missing 'user' query parameter")
		return
	}

	favorites, err := h.Preferences.Favorites(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load favorites")
		return
	}
	if favorites == nil {
		favorites = []model.FavoriteEntry{}
	}
	writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    favorites,
		Message: "Success",
	})
}

func (h *FavoritesHandler) add(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.Preferences.AddFavorite(r.Context(), req.User, req.City)
	switch {
	case errors.Is(err, store.ErrDuplicateFavorite):
		writeWarning(w, http.StatusConflict, "City '"+req.City+"' is already in your favorites")
		return
	case errors.Is(err, store.ErrFavoriteLimit):
		writeWarning(w, http.StatusConflict, "You can save at most 5 favorite cities")
		return
	case errors.Is(err, service.ErrEmptyField):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to save favorite")
		return
	}

	writeJSONResponse(w, http.StatusOK, model.Response{Message: "Success"})
}

func (h *FavoritesHandler) remove(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	city := r.URL.Query().Get("city")
	if user == "" || city == "" {
		writeError(w, http.StatusBadRequest, "Missing 'user' or 'city' query parameter")
		return
	}

	if err := h.Preferences.RemoveFavorite(r.Context(), user, city); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to remove favorite")
		return
	}
	writeJSONResponse(w, http.StatusOK, model.Response{Message: "Success"})
}
