package handlers

import (
	"errors"
	"log"
	"net/http"

	"magilearn/internal/models"
	"magilearn/internal/security"
	"magilearn/internal/service"
	"magilearn/internal/validation"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type userResponse struct {
	User *models.User `json:"user"`
}

// Signup creates a new account and logs it in
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, user, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		var fieldErr validation.FieldError
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, "Username already taken")
		case errors.As(err, &fieldErr):
			writeError(w, http.StatusBadRequest, fieldErr.Error())
		default:
			log.Printf("Signup error: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to create account")
		}
		return
	}

	http.SetCookie(w, security.NewSessionCookie(r, session.ID, session.ExpiresAt))
	writeJSON(w, http.StatusOK, userResponse{User: user})
}

// Login authenticates an existing account
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	session, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("Login error: %v", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	http.SetCookie(w, security.NewSessionCookie(r, session.ID, session.ExpiresAt))
	writeJSON(w, http.StatusOK, userResponse{User: user})
}

// Logout ends the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(security.SessionCookieName); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			log.Printf("Logout error: %v", err)
			writeError(w, http.StatusInternalServerError, "Logout failed")
			return
		}
	}
	http.SetCookie(w, security.ExpiredSessionCookie(r))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Me returns the authenticated account
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
