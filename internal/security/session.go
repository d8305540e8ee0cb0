package security

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the session identifier
const SessionCookieName = "session_id"

// GenerateSessionID returns a fresh unguessable session identifier
func GenerateSessionID() string {
	return uuid.New().String()
}

// requestIsHTTPS reports whether the request arrived over TLS, either
// directly or through a reverse proxy that sets X-Forwarded-Proto
func requestIsHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if r.Header.Get("X-Forwarded-Proto") == "https" {
		return true
	}
	return r.URL.Scheme == "https"
}

// NewSessionCookie builds the session cookie for a login response.
// HttpOnly and SameSite=Lax always; Secure when the request came in
// over HTTPS so local development still works
func NewSessionCookie(r *http.Request, sessionID string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   requestIsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie builds a cookie that tells the browser to drop
// the session cookie immediately
func ExpiredSessionCookie(r *http.Request) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   requestIsHTTPS(r),
	}
}
