package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"magilearn/internal/database"
	"magilearn/internal/models"
)

const userColumns = `
	id, username, password_hash, COALESCE(email, ''), COALESCE(name, ''),
	COALESCE(age, 0), COALESCE(class, ''), COALESCE(special_need, ''),
	COALESCE(learning_style, ''), COALESCE(interests, ''), COALESCE(subjects, ''),
	COALESCE(current_mood, ''), COALESCE(accessibility_needs, ''),
	COALESCE(ai_learning_profile, ''), created_at
`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	user := &models.User{}
	var interests, subjects, accessibilityNeeds, profile string
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.Name,
		&user.Age,
		&user.Class,
		&user.SpecialNeed,
		&user.LearningStyle,
		&interests,
		&subjects,
		&user.CurrentMood,
		&accessibilityNeeds,
		&profile,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if user.Interests, err = unmarshalStrings(interests); err != nil {
		return nil, err
	}
	if user.Subjects, err = unmarshalStrings(subjects); err != nil {
		return nil, err
	}
	if user.AccessibilityNeeds, err = unmarshalStrings(accessibilityNeeds); err != nil {
		return nil, err
	}
	if user.LearningProfile, err = unmarshalProfile(profile); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *SQLStore) GetUser(id string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	user, err := scanUser(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username
func (s *SQLStore) GetUserByUsername(username string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE username = ?"
	user, err := scanUser(s.db.QueryRow(query, username))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all users ordered by creation time
func (s *SQLStore) ListUsers() ([]models.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY created_at"
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// CreateUser inserts a new user, generating an ID if one is not set
func (s *SQLStore) CreateUser(user *models.User) (*models.User, error) {
	stored := *user
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	interests, err := marshalStrings(stored.Interests)
	if err != nil {
		return nil, err
	}
	subjects, err := marshalStrings(stored.Subjects)
	if err != nil {
		return nil, err
	}
	accessibilityNeeds, err := marshalStrings(stored.AccessibilityNeeds)
	if err != nil {
		return nil, err
	}
	profile, err := marshalProfile(stored.LearningProfile)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (
			id, username, password_hash, email, name, age, class, special_need,
			learning_style, interests, subjects, current_mood, accessibility_needs,
			ai_learning_profile, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.Exec(query,
		stored.ID, stored.Username, stored.PasswordHash, stored.Email, stored.Name,
		stored.Age, stored.Class, stored.SpecialNeed, stored.LearningStyle,
		interests, subjects, stored.CurrentMood, accessibilityNeeds, profile,
		stored.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &stored, nil
}

// UpdateUser merges the update into the stored user inside a transaction so
// the read-merge-write is atomic for this one row
func (s *SQLStore) UpdateUser(id string, update UserUpdate) (*models.User, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin update: %w", err)
	}
	defer tx.Rollback()

	user, err := scanUser(tx.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user for update: %w", err)
	}

	applyUserUpdate(user, update)

	if err := updateUserRow(tx, user); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit user update: %w", err)
	}
	return user, nil
}

func updateUserRow(tx *database.Tx, user *models.User) error {
	interests, err := marshalStrings(user.Interests)
	if err != nil {
		return err
	}
	subjects, err := marshalStrings(user.Subjects)
	if err != nil {
		return err
	}
	accessibilityNeeds, err := marshalStrings(user.AccessibilityNeeds)
	if err != nil {
		return err
	}
	profile, err := marshalProfile(user.LearningProfile)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET email = ?, name = ?, age = ?, class = ?, special_need = ?,
			learning_style = ?, interests = ?, subjects = ?, current_mood = ?,
			accessibility_needs = ?, ai_learning_profile = ?
		WHERE id = ?
	`
	_, err = tx.Exec(query,
		user.Email, user.Name, user.Age, user.Class, user.SpecialNeed,
		user.LearningStyle, interests, subjects, user.CurrentMood,
		accessibilityNeeds, profile, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
