package store

import (
	"database/sql"
	"fmt"
	"time"

	"magilearn/internal/models"
)

// CreateSession stores a new session record
func (s *SQLStore) CreateSession(id, userID string, expiresAt time.Time) (*models.Session, error) {
	session := &models.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	query := "INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)"
	if _, err := s.db.Exec(query, session.ID, session.UserID, session.CreatedAt, session.ExpiresAt); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// GetSession retrieves a session by ID
func (s *SQLStore) GetSession(id string) (*models.Session, error) {
	session := &models.Session{}
	query := "SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = ?"
	err := s.db.QueryRow(query, id).Scan(&session.ID, &session.UserID, &session.CreatedAt, &session.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session by ID
func (s *SQLStore) DeleteSession(id string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all sessions past their expiry
func (s *SQLStore) DeleteExpiredSessions() error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now()); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
