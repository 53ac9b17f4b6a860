// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

// Package web exposes the authentication core and event listings over
// HTTP. It is deliberately thin: parsing, cookies, and status mapping
// live here; every decision is made by the services it wraps.
package web

import (
	"net/http"
	"time"
)

// CookieName is the session cookie. The __Host- prefix pins it to this
// host, requires Secure, and forbids a Domain attribute.
const CookieName = "__Host-session"

// CookieOptions defines how session cookies are issued. Path, HTTPOnly,
// and Secure are forced to values compatible with the __Host- name.
type CookieOptions struct {
	Path     string
	HTTPOnly bool
	Secure   bool
	SameSite http.SameSite
}

// normalize applies safe defaults without breaking callers.
func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/" // required for __Host-
	}
	if !o.HTTPOnly {
		o.HTTPOnly = true // the token must not be readable from script
	}
	if !o.Secure {
		o.Secure = true // browsers reject __Host- cookies without Secure
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	return o
}

// SetSessionCookie issues the session cookie to the client. The client
// expiry matches the server-side sliding window, never exceeds it.
func SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     opts.Path,
		Expires:  expiresAt,
		HttpOnly: opts.HTTPOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearSessionCookie removes the session cookie from the client.
func ClearSessionCookie(w http.ResponseWriter, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     opts.Path,
		MaxAge:   -1,
		HttpOnly: opts.HTTPOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// sessionToken extracts the session token from the request cookie.
// Returns "" when no cookie is present.
func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
