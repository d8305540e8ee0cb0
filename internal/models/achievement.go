package models

import "time"

// Achievement records a badge earned by a user
type Achievement struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	AchievementID string    `json:"achievementId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	EarnedAt      time.Time `json:"earnedAt"`
}
