package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"magilearn/internal/models"
	"magilearn/internal/security"
	"magilearn/internal/service"
	"magilearn/internal/store"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	store       store.Store
	demoMode    bool
}

// NewMiddleware creates a new middleware instance. When demoMode is set,
// requests without a valid session run as the seeded demo account instead
// of being rejected.
func NewMiddleware(authService *service.AuthService, s store.Store, demoMode bool) *Middleware {
	return &Middleware{
		authService: authService,
		store:       s,
		demoMode:    demoMode,
	}
}

// ResolveUser attaches the request's user to the context. Session cookies
// are validated first; in demo mode a missing or invalid session falls
// back to the demo account. Requests stay anonymous otherwise.
func (m *Middleware) ResolveUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(security.SessionCookieName); err == nil {
			user, err := m.authService.ValidateSession(cookie.Value)
			if err == nil {
				next(w, r.WithContext(withUser(r.Context(), user)))
				return
			}
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrSessionNotFound) {
				http.SetCookie(w, security.ExpiredSessionCookie(r))
			}
		}

		if m.demoMode {
			user, err := m.store.GetUser(store.DemoUserID)
			if err == nil {
				next(w, r.WithContext(withUser(r.Context(), user)))
				return
			}
			log.Printf("Demo user unavailable: %v", err)
		}

		next(w, r)
	}
}

// RequireUser rejects requests that resolved no user
func (m *Middleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if userFrom(r) == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r)
	}
}

// RateLimit rejects clients that exceed the limiter's allowance
func RateLimit(limiter *security.RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(security.GetClientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next(w, r)
	}
}

// Logging logs each request with method, path, and duration
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func withUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// userFrom returns the request's resolved user, or nil
func userFrom(r *http.Request) *models.User {
	user, _ := r.Context().Value(UserContextKey).(*models.User)
	return user
}
