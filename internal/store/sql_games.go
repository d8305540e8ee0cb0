package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"magilearn/internal/models"
)

// GetUnlockedGames lists a user's unlocked games in unlock order
func (s *SQLStore) GetUnlockedGames(userID string) ([]models.UnlockedGame, error) {
	query := `
		SELECT id, user_id, game_id, unlocked_at
		FROM unlocked_games
		WHERE user_id = ?
		ORDER BY unlocked_at
	`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unlocked games: %w", err)
	}
	defer rows.Close()

	var games []models.UnlockedGame
	for rows.Next() {
		var game models.UnlockedGame
		if err := rows.Scan(&game.ID, &game.UserID, &game.GameID, &game.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unlocked game: %w", err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// UnlockGame records an unlock fact for a user
func (s *SQLStore) UnlockGame(userID, gameID string) (*models.UnlockedGame, error) {
	game := &models.UnlockedGame{
		ID:         uuid.New().String(),
		UserID:     userID,
		GameID:     gameID,
		UnlockedAt: time.Now(),
	}
	query := "INSERT INTO unlocked_games (id, user_id, game_id, unlocked_at) VALUES (?, ?, ?, ?)"
	if _, err := s.db.Exec(query, game.ID, game.UserID, game.GameID, game.UnlockedAt); err != nil {
		return nil, fmt.Errorf("failed to unlock game: %w", err)
	}
	return game, nil
}

const statsColumns = "id, user_id, game_id, times_played, best_score, total_xp_earned, last_played"

func scanGameStats(row interface{ Scan(...interface{}) error }) (*models.GameStats, error) {
	stats := &models.GameStats{}
	var lastPlayed sql.NullTime
	err := row.Scan(
		&stats.ID,
		&stats.UserID,
		&stats.GameID,
		&stats.TimesPlayed,
		&stats.BestScore,
		&stats.TotalXPEarned,
		&lastPlayed,
	)
	if err != nil {
		return nil, err
	}
	if lastPlayed.Valid {
		stats.LastPlayed = &lastPlayed.Time
	}
	return stats, nil
}

// GetGameStats retrieves stats for one user and game
func (s *SQLStore) GetGameStats(userID, gameID string) (*models.GameStats, error) {
	query := "SELECT " + statsColumns + " FROM game_stats WHERE user_id = ? AND game_id = ?"
	stats, err := scanGameStats(s.db.QueryRow(query, userID, gameID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game stats: %w", err)
	}
	return stats, nil
}

// ListGameStats lists all per-game stats for a user
func (s *SQLStore) ListGameStats(userID string) ([]models.GameStats, error) {
	query := "SELECT " + statsColumns + " FROM game_stats WHERE user_id = ? ORDER BY game_id"
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query game stats: %w", err)
	}
	defer rows.Close()

	var statsList []models.GameStats
	for rows.Next() {
		stats, err := scanGameStats(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game stats: %w", err)
		}
		statsList = append(statsList, *stats)
	}
	return statsList, rows.Err()
}

// UpdateGameStats merges the update into the stored stats inside a
// transaction, creating a zeroed record first if none exists.
// Last played is always stamped with the current time.
func (s *SQLStore) UpdateGameStats(userID, gameID string, update GameStatsUpdate) (*models.GameStats, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin update: %w", err)
	}
	defer tx.Rollback()

	query := "SELECT " + statsColumns + " FROM game_stats WHERE user_id = ? AND game_id = ?"
	stats, err := scanGameStats(tx.QueryRow(query, userID, gameID))
	if err == sql.ErrNoRows {
		stats = &models.GameStats{ID: uuid.New().String(), UserID: userID, GameID: gameID}
		insertQuery := `
			INSERT INTO game_stats (id, user_id, game_id, times_played, best_score, total_xp_earned)
			VALUES (?, ?, ?, 0, 0, 0)
		`
		if _, err := tx.Exec(insertQuery, stats.ID, stats.UserID, stats.GameID); err != nil {
			return nil, fmt.Errorf("failed to create game stats: %w", err)
		}
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game stats for update: %w", err)
	}

	applyGameStatsUpdate(stats, update)
	now := time.Now()
	stats.LastPlayed = &now

	updateQuery := `
		UPDATE game_stats
		SET times_played = ?, best_score = ?, total_xp_earned = ?, last_played = ?
		WHERE user_id = ? AND game_id = ?
	`
	_, err = tx.Exec(updateQuery, stats.TimesPlayed, stats.BestScore, stats.TotalXPEarned, now, userID, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to update game stats: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit game stats update: %w", err)
	}
	return stats, nil
}
