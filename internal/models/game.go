package models

import "time"

// UnlockedGame records that a mini-game is available to a user
type UnlockedGame struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	GameID     string    `json:"gameId"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// GameStats tracks per-game play statistics for a user.
// BestScore never decreases.
type GameStats struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	GameID        string     `json:"gameId"`
	TimesPlayed   int        `json:"timesPlayed"`
	BestScore     int        `json:"bestScore"`
	TotalXPEarned int        `json:"totalXpEarned"`
	LastPlayed    *time.Time `json:"lastPlayed"`
}
