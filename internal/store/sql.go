package store

import (
	"encoding/json"
	"fmt"

	"magilearn/internal/database"
	"magilearn/internal/models"
)

// SQLStore is the relational Store implementation. It works against any of
// the supported dialects (sqlite, postgres, mysql) through the database
// layer's placeholder rewriting.
type SQLStore struct {
	db *database.DB
}

// NewSQLStore creates a store backed by the given database
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Close closes the underlying database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// marshalStrings encodes a string list as JSON text for storage.
// nil encodes as an empty array.
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(data), nil
}

// unmarshalStrings decodes stored JSON text into a string list.
// Empty text decodes as an empty list.
func unmarshalStrings(text string) ([]string, error) {
	if text == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(text), &values); err != nil {
		return nil, fmt.Errorf("failed to decode string list: %w", err)
	}
	return values, nil
}

// marshalProfile encodes the AI learning profile as JSON text.
// A nil profile encodes as empty text.
func marshalProfile(profile *models.LearningProfile) (string, error) {
	if profile == nil {
		return "", nil
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("failed to encode learning profile: %w", err)
	}
	return string(data), nil
}

// unmarshalProfile decodes stored JSON text into an AI learning profile
func unmarshalProfile(text string) (*models.LearningProfile, error) {
	if text == "" {
		return nil, nil
	}
	profile := &models.LearningProfile{}
	if err := json.Unmarshal([]byte(text), profile); err != nil {
		return nil, fmt.Errorf("failed to decode learning profile: %w", err)
	}
	return profile, nil
}
