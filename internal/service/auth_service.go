package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"magilearn/internal/games"
	"magilearn/internal/models"
	"magilearn/internal/security"
	"magilearn/internal/store"
	"magilearn/internal/validation"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// SignupRequest carries everything a new account needs. The profile
// fields are optional; the survey can fill them in later.
type SignupRequest struct {
	Username           string   `json:"username"`
	Email              string   `json:"email"`
	Password           string   `json:"password"`
	Name               string   `json:"name"`
	Age                int      `json:"age"`
	Class              string   `json:"class"`
	SpecialNeed        string   `json:"specialNeed"`
	LearningStyle      string   `json:"learningStyle"`
	Subjects           []string `json:"subjects"`
	CurrentMood        string   `json:"currentMood"`
	AccessibilityNeeds []string `json:"accessibilityNeeds"`
}

// AuthService handles account creation and session management
type AuthService struct {
	store           store.Store
	ai              *AIService
	email           *EmailService
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(s store.Store, ai *AIService, email *EmailService, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		store:           s,
		ai:              ai,
		email:           email,
		sessionDuration: sessionDuration,
	}
}

// Signup creates a new account: the user record, a zeroed progress record,
// the starter game unlocks, and an AI learning profile. A session is
// created so the new account is logged in immediately.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*models.Session, *models.User, error) {
	if err := validation.ValidateUsername(req.Username); err != nil {
		return nil, nil, err
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, nil, err
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return nil, nil, err
	}

	existing, err := s.store.GetUserByUsername(req.Username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, nil, ErrUsernameTaken
	}

	passwordHash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(&models.User{
		Username:           req.Username,
		Email:              req.Email,
		PasswordHash:       passwordHash,
		Name:               req.Name,
		Age:                req.Age,
		Class:              req.Class,
		SpecialNeed:        req.SpecialNeed,
		LearningStyle:      req.LearningStyle,
		Subjects:           req.Subjects,
		CurrentMood:        req.CurrentMood,
		AccessibilityNeeds: req.AccessibilityNeeds,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	// New accounts start with a zeroed progress record and the starter
	// games. Failures here don't fail signup; the records are upserted
	// on first use.
	if _, err := s.store.UpdateProgress(user.ID, store.ProgressUpdate{}); err != nil {
		log.Printf("Warning: failed to initialize progress for user %s: %v", user.ID, err)
	}
	for _, gameID := range games.StarterGames {
		if _, err := s.store.UnlockGame(user.ID, gameID); err != nil {
			log.Printf("Warning: failed to unlock starter game %s for user %s: %v", gameID, user.ID, err)
		}
	}

	// The AI profile always comes back (the service falls back on model
	// failure); only persisting it can fail, and that is not fatal.
	profile := s.ai.GenerateLearningProfile(ctx, user, nil, nil)
	updated, err := s.store.UpdateUser(user.ID, store.UserUpdate{LearningProfile: profile})
	if err != nil {
		log.Printf("Warning: failed to store AI profile for user %s: %v", user.ID, err)
	} else {
		user = updated
	}

	if s.email != nil && req.Email != "" {
		if err := s.email.SendWelcomeEmail(ctx, req.Email, user.Name); err != nil {
			log.Printf("Warning: failed to send welcome email to %s: %v", req.Email, err)
		}
	}

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// Login authenticates a user and creates a session
func (s *AuthService) Login(username, password string) (*models.Session, *models.User, error) {
	user, err := s.store.GetUserByUsername(username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// ValidateSession checks a session and returns its user. Expired sessions
// are deleted on sight.
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	session, err := s.store.GetSession(sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.IsExpired() {
		if err := s.store.DeleteSession(sessionID); err != nil {
			log.Printf("Warning: failed to delete expired session: %v", err)
		}
		return nil, ErrSessionExpired
	}

	user, err := s.store.GetUser(session.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session user: %w", err)
	}
	return user, nil
}

// Logout removes a session
func (s *AuthService) Logout(sessionID string) error {
	return s.store.DeleteSession(sessionID)
}

// CleanupExpiredSessions removes all expired sessions
func (s *AuthService) CleanupExpiredSessions() error {
	return s.store.DeleteExpiredSessions()
}

func (s *AuthService) createSession(userID string) (*models.Session, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.store.CreateSession(sessionID, userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}
