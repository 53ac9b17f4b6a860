// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/sportevents/sportevents/internal/auth"
	"github.com/sportevents/sportevents/internal/events"
	"github.com/sportevents/sportevents/internal/observability"
	"github.com/sportevents/sportevents/pkg/errutil"
)

// Handler wires the auth and event services to HTTP routes.
type Handler struct {
	auth    *auth.Service
	events  *events.Service
	window  time.Duration
	cookies CookieOptions
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(authSvc *auth.Service, eventSvc *events.Service, window time.Duration, cookies CookieOptions, metrics *observability.Metrics, logger *slog.Logger) (*Handler, error) {
	if authSvc == nil {
		return nil, oops.Code("WEB_INVALID_DEPENDENCY").Errorf("auth service is required")
	}
	if eventSvc == nil {
		return nil, oops.Code("WEB_INVALID_DEPENDENCY").Errorf("event service is required")
	}
	if window <= 0 {
		return nil, oops.Code("WEB_INVALID_DEPENDENCY").Errorf("session window must be positive")
	}
	if metrics == nil {
		return nil, oops.Code("WEB_INVALID_DEPENDENCY").Errorf("metrics are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		auth:    authSvc,
		events:  eventSvc,
		window:  window,
		cookies: cookies,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Routes returns the HTTP mux for the application.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /signup", h.handleSignup)
	mux.HandleFunc("POST /login", h.handleLogin)
	mux.HandleFunc("POST /logout", h.handleLogout)
	mux.HandleFunc("GET /me", h.withUser(h.handleMe))

	mux.HandleFunc("GET /events", h.withUser(h.handleListEvents))
	mux.HandleFunc("POST /events", h.requireUser(h.handleCreateEvent))
	mux.HandleFunc("GET /events/{id}", h.withUser(h.handleGetEvent))
	mux.HandleFunc("PUT /events/{id}", h.requireUser(h.handleUpdateEvent))
	mux.HandleFunc("DELETE /events/{id}", h.requireUser(h.handleDeleteEvent))
	mux.HandleFunc("GET /search", h.withUser(h.handleSearch))

	return mux
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type eventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

type eventResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	CreatorID   string     `json:"creator_id"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "username is already taken")
		case hasCode(err, "AUTH_INVALID_USERNAME"), errors.Is(err, auth.ErrEmptyPassword):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			errutil.LogError(h.logger, "signup failed", err)
			writeError(w, http.StatusServiceUnavailable, "temporarily unavailable, try again")
		}
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{ID: user.ID.String(), Username: user.Username})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.metrics.LoginAttempts.WithLabelValues("rejected").Inc()
			// One generic message for unknown user and wrong password alike.
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, auth.ErrAccountLocked):
			h.metrics.LoginAttempts.WithLabelValues("locked").Inc()
			writeError(w, http.StatusTooManyRequests, "account is temporarily locked")
		default:
			h.metrics.LoginAttempts.WithLabelValues("error").Inc()
			errutil.LogError(h.logger, "login failed", err)
			writeError(w, http.StatusServiceUnavailable, "temporarily unavailable, try again")
		}
		return
	}

	h.metrics.LoginAttempts.WithLabelValues("authenticated").Inc()
	SetSessionCookie(w, token, time.Now().Add(h.window), h.cookies)
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID.String(), Username: user.Username})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			errutil.LogError(h.logger, "logout failed", err)
			writeError(w, http.StatusServiceUnavailable, "temporarily unavailable, try again")
			return
		}
		h.metrics.SessionsRevoked.Inc()
	}

	ClearSessionCookie(w, h.cookies)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID.String(), Username: user.Username})
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	list, err := h.events.List(r.Context())
	if err != nil {
		errutil.LogError(h.logger, "list events failed", err)
		writeError(w, http.StatusServiceUnavailable, "temporarily unavailable, try again")
		return
	}
	writeJSON(w, http.StatusOK, toEventResponses(list))
}

func (h *Handler) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.events.Create(r.Context(), user.ID, req.Title, req.Description, req.Location, timeOrZero(req.StartsAt), timeOrZero(req.EndsAt))
	if err != nil {
		h.writeEventError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(event))
}

func (h *Handler) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := ulid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	event, err := h.events.Get(r.Context(), id)
	if err != nil {
		h.writeEventError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(event))
}

func (h *Handler) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, err := ulid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.events.Update(r.Context(), id, user.ID, req.Title, req.Description, req.Location, timeOrZero(req.StartsAt), timeOrZero(req.EndsAt))
	if err != nil {
		h.writeEventError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(event))
}

func (h *Handler) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, err := ulid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	if err := h.events.Delete(r.Context(), id, user.ID); err != nil {
		h.writeEventError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	list, err := h.events.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		errutil.LogError(h.logger, "search events failed", err)
		writeError(w, http.StatusServiceUnavailable, "temporarily unavailable, try again")
		return
	}
	writeJSON(w, http.StatusOK, toEventResponses(list))
}

// writeEventError maps event service errors to HTTP statuses. Forbidden
// stays distinct from not-found: ownership failures are reported as such.
func (h *Handler) writeEventError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, events.ErrForbidden):
		writeError(w, http.StatusForbidden, "not the creator of this event")
	case errors.Is(err, events.ErrNotFound):
		writeError(w, http.StatusNotFound, "event not found")
	case hasCode(err, "EVENT_INVALID_TITLE"),
		hasCode(err, "EVENT_INVALID_DESCRIPTION"),
		hasCode(err, "EVENT_INVALID_LOCATION"),
		hasCode(err, "EVENT_INVALID_SCHEDULE"),
		hasCode(err, "EVENT_UNKNOWN_CREATOR"):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		errutil.LogError(h.logger, "event operation failed", err)
		writeError(w, http.StatusServiceUnavailable, "temporarily unavailable, try again")
	}
}

// hasCode reports whether err carries the given oops code.
func hasCode(err error, code string) bool {
	oopsErr, ok := oops.AsOops(err)
	return ok && oopsErr.Code() == code
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func toEventResponse(event *events.Event) eventResponse {
	resp := eventResponse{
		ID:          event.ID.String(),
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		CreatorID:   event.CreatorID.String(),
	}
	if !event.StartsAt.IsZero() {
		t := event.StartsAt
		resp.StartsAt = &t
	}
	if !event.EndsAt.IsZero() {
		t := event.EndsAt
		resp.EndsAt = &t
	}
	return resp
}

func toEventResponses(list []*events.Event) []eventResponse {
	out := make([]eventResponse, 0, len(list))
	for _, event := range list {
		out = append(out, toEventResponse(event))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // response write error means the client went away
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
