package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"magilearn/internal/models"
)

// GetAchievements lists a user's achievements, newest first
func (s *SQLStore) GetAchievements(userID string) ([]models.Achievement, error) {
	query := `
		SELECT id, user_id, achievement_id, title, description, earned_at
		FROM achievements
		WHERE user_id = ?
		ORDER BY earned_at DESC
	`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	var achievements []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.AchievementID, &a.Title, &a.Description, &a.EarnedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// AddAchievement records a newly earned achievement
func (s *SQLStore) AddAchievement(userID, achievementID, title, description string) (*models.Achievement, error) {
	achievement := &models.Achievement{
		ID:            uuid.New().String(),
		UserID:        userID,
		AchievementID: achievementID,
		Title:         title,
		Description:   description,
		EarnedAt:      time.Now(),
	}
	query := `
		INSERT INTO achievements (id, user_id, achievement_id, title, description, earned_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query, achievement.ID, achievement.UserID, achievement.AchievementID,
		achievement.Title, achievement.Description, achievement.EarnedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add achievement: %w", err)
	}
	return achievement, nil
}
