package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"weather-dashboard/internal/model"
	"weather-dashboard/internal/session"
)

type SessionHandler struct {
	Sessions *session.Manager
}

func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{Sessions: sessions}
}

type loginRequest struct {
	Email string `json:"email"`
}

// HandleLogin serves POST /login. The email is a free-text identifier, not
// an authenticated credential; the response carries the session token plus
// the user's persisted unit and favorites.
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		writeError(w, http.StatusBadRequest, "Missing 'email' field")
		return
	}

	s, err := h.Sessions.Start(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    s,
		Message: "Success",
	})
}

// HandleLogout serves POST /logout, clearing the session for a token.
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "Missing 'token' query parameter")
		return
	}

	h.Sessions.End(token)
	writeJSONResponse(w, http.StatusOK, model.Response{Message: "Success"})
}
