// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package web

import (
	"context"
	"net/http"

	"github.com/sportevents/sportevents/internal/auth"
	"github.com/sportevents/sportevents/pkg/errutil"
)

// userContextKey is the context key for the authenticated user.
type userContextKey struct{}

// UserFromContext returns the authenticated user for the request, or nil
// for anonymous requests.
func UserFromContext(ctx context.Context) *auth.User {
	user, _ := ctx.Value(userContextKey{}).(*auth.User)
	return user
}

// withUser resolves the session cookie and attaches the user to the
// request context. An absent or invalid session leaves the request
// anonymous; only a backing-store failure produces an error response.
func (h *Handler) withUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			next(w, r)
			return
		}

		user, err := h.auth.CurrentUser(r.Context(), token)
		if err != nil {
			h.metrics.SessionResolutions.WithLabelValues("error").Inc()
			errutil.LogError(h.logger, "session resolution failed", err)
			writeError(w, http.StatusServiceUnavailable, "temporarily unavailable, try again")
			return
		}
		if user == nil {
			h.metrics.SessionResolutions.WithLabelValues("absent").Inc()
			// Stale cookie; clear it so the client stops presenting it.
			ClearSessionCookie(w, h.cookies)
			next(w, r)
			return
		}

		h.metrics.SessionResolutions.WithLabelValues("active").Inc()
		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		next(w, r.WithContext(ctx))
	}
}

// requireUser rejects anonymous requests with 401.
func (h *Handler) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return h.withUser(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	})
}
