package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"magilearn/internal/models"
)

const spinColumns = "id, user_id, date, spins_used, spins_remaining"

func scanSpins(row interface{ Scan(...interface{}) error }) (*models.DailySpins, error) {
	spins := &models.DailySpins{}
	err := row.Scan(&spins.ID, &spins.UserID, &spins.Date, &spins.SpinsUsed, &spins.SpinsRemaining)
	if err != nil {
		return nil, err
	}
	return spins, nil
}

// GetDailySpins retrieves the allowance for one user and date
func (s *SQLStore) GetDailySpins(userID, date string) (*models.DailySpins, error) {
	query := "SELECT " + spinColumns + " FROM daily_spins WHERE user_id = ? AND date = ?"
	spins, err := scanSpins(s.db.QueryRow(query, userID, date))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily spins: %w", err)
	}
	return spins, nil
}

// UpdateDailySpins upserts the allowance for one user and date.
// Spins remaining is always recomputed from the used count.
func (s *SQLStore) UpdateDailySpins(userID, date string, spinsUsed int) (*models.DailySpins, error) {
	remaining := models.RemainingSpins(spinsUsed)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin update: %w", err)
	}
	defer tx.Rollback()

	query := "SELECT " + spinColumns + " FROM daily_spins WHERE user_id = ? AND date = ?"
	spins, err := scanSpins(tx.QueryRow(query, userID, date))
	if err == sql.ErrNoRows {
		spins = &models.DailySpins{
			ID:             uuid.New().String(),
			UserID:         userID,
			Date:           date,
			SpinsUsed:      spinsUsed,
			SpinsRemaining: remaining,
		}
		insertQuery := "INSERT INTO daily_spins (id, user_id, date, spins_used, spins_remaining) VALUES (?, ?, ?, ?, ?)"
		if _, err := tx.Exec(insertQuery, spins.ID, spins.UserID, spins.Date, spins.SpinsUsed, spins.SpinsRemaining); err != nil {
			return nil, fmt.Errorf("failed to create daily spins: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit daily spins: %w", err)
		}
		return spins, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily spins for update: %w", err)
	}

	spins.SpinsUsed = spinsUsed
	spins.SpinsRemaining = remaining
	updateQuery := "UPDATE daily_spins SET spins_used = ?, spins_remaining = ? WHERE user_id = ? AND date = ?"
	if _, err := tx.Exec(updateQuery, spins.SpinsUsed, spins.SpinsRemaining, userID, date); err != nil {
		return nil, fmt.Errorf("failed to update daily spins: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit daily spins: %w", err)
	}
	return spins, nil
}
