package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"magilearn/internal/database"
	"magilearn/internal/models"
)

const progressColumns = `
	id, user_id, total_xp, math_skills, english_skills, science_skills,
	coding_skills, art_skills, language_skills, problem_solving, memory_skills,
	learning_streak, last_active_date
`

func scanProgress(row interface{ Scan(...interface{}) error }) (*models.Progress, error) {
	progress := &models.Progress{}
	var lastActive sql.NullTime
	err := row.Scan(
		&progress.ID,
		&progress.UserID,
		&progress.TotalXP,
		&progress.MathSkills,
		&progress.EnglishSkills,
		&progress.ScienceSkills,
		&progress.CodingSkills,
		&progress.ArtSkills,
		&progress.LanguageSkills,
		&progress.ProblemSolving,
		&progress.MemorySkills,
		&progress.LearningStreak,
		&lastActive,
	)
	if err != nil {
		return nil, err
	}
	if lastActive.Valid {
		progress.LastActiveDate = &lastActive.Time
	}
	return progress, nil
}

// GetProgress retrieves a user's progress record
func (s *SQLStore) GetProgress(userID string) (*models.Progress, error) {
	query := "SELECT " + progressColumns + " FROM user_progress WHERE user_id = ?"
	progress, err := scanProgress(s.db.QueryRow(query, userID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return progress, nil
}

// UpdateProgress merges the update into the stored progress inside a
// transaction, creating a zeroed record first if none exists
func (s *SQLStore) UpdateProgress(userID string, update ProgressUpdate) (*models.Progress, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin update: %w", err)
	}
	defer tx.Rollback()

	query := "SELECT " + progressColumns + " FROM user_progress WHERE user_id = ?"
	progress, err := scanProgress(tx.QueryRow(query, userID))
	if err == sql.ErrNoRows {
		progress = &models.Progress{ID: uuid.New().String(), UserID: userID}
		if err := insertProgressRow(tx, progress); err != nil {
			return nil, err
		}
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress for update: %w", err)
	}

	applyProgressUpdate(progress, update)

	updateQuery := `
		UPDATE user_progress
		SET total_xp = ?, math_skills = ?, english_skills = ?, science_skills = ?,
			coding_skills = ?, art_skills = ?, language_skills = ?,
			problem_solving = ?, memory_skills = ?, learning_streak = ?,
			last_active_date = ?
		WHERE user_id = ?
	`
	var lastActive sql.NullTime
	if progress.LastActiveDate != nil {
		lastActive = sql.NullTime{Time: *progress.LastActiveDate, Valid: true}
	}
	_, err = tx.Exec(updateQuery,
		progress.TotalXP, progress.MathSkills, progress.EnglishSkills,
		progress.ScienceSkills, progress.CodingSkills, progress.ArtSkills,
		progress.LanguageSkills, progress.ProblemSolving, progress.MemorySkills,
		progress.LearningStreak, lastActive, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit progress update: %w", err)
	}
	return progress, nil
}

func insertProgressRow(tx *database.Tx, progress *models.Progress) error {
	query := `
		INSERT INTO user_progress (
			id, user_id, total_xp, math_skills, english_skills, science_skills,
			coding_skills, art_skills, language_skills, problem_solving,
			memory_skills, learning_streak
		) VALUES (?, ?, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	`
	if _, err := tx.Exec(query, progress.ID, progress.UserID); err != nil {
		return fmt.Errorf("failed to create progress: %w", err)
	}
	return nil
}
