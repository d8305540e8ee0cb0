package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"magilearn/internal/models"
	"magilearn/internal/store"
)

// BackupData is the complete export structure. Sessions are deliberately
// excluded; they are short-lived and re-created at login.
type BackupData struct {
	Version    string       `json:"version"`
	ExportedAt time.Time    `json:"exportedAt"`
	Users      []UserBackup `json:"users"`
}

// UserBackup bundles one user with every owned record
type UserBackup struct {
	User          models.User           `json:"user"`
	PasswordHash  string                `json:"passwordHash"`
	Progress      *models.Progress      `json:"progress,omitempty"`
	UnlockedGames []models.UnlockedGame `json:"unlockedGames"`
	Achievements  []models.Achievement  `json:"achievements"`
	GameStats     []models.GameStats    `json:"gameStats"`
}

// BackupService exports and restores application data through the store,
// so it works the same against the in-memory and SQL adapters
type BackupService struct {
	store store.Store
}

// NewBackupService creates a new backup service
func NewBackupService(s store.Store) *BackupService {
	return &BackupService{store: s}
}

// Export writes a complete backup of the store to a file
func (s *BackupService) Export(outputPath string) error {
	users, err := s.store.ListUsers()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	backup := BackupData{
		Version:    "1",
		ExportedAt: time.Now(),
	}

	for _, user := range users {
		entry := UserBackup{User: user, PasswordHash: user.PasswordHash}

		progress, err := s.store.GetProgress(user.ID)
		if err == nil {
			entry.Progress = progress
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to read progress for %s: %w", user.ID, err)
		}

		if entry.UnlockedGames, err = s.store.GetUnlockedGames(user.ID); err != nil {
			return fmt.Errorf("failed to read unlocks for %s: %w", user.ID, err)
		}
		if entry.Achievements, err = s.store.GetAchievements(user.ID); err != nil {
			return fmt.Errorf("failed to read achievements for %s: %w", user.ID, err)
		}
		if entry.GameStats, err = s.store.ListGameStats(user.ID); err != nil {
			return fmt.Errorf("failed to read game stats for %s: %w", user.ID, err)
		}

		backup.Users = append(backup.Users, entry)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	log.Printf("Backup exported: %d users to %s", len(backup.Users), outputPath)
	return nil
}

// Import restores a backup from a file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a backup from a reader. Users that already
// exist are skipped rather than overwritten.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	restored := 0
	for _, entry := range backup.Users {
		if _, err := s.store.GetUser(entry.User.ID); err == nil {
			log.Printf("Skipping existing user %s", entry.User.ID)
			continue
		}

		user := entry.User
		user.PasswordHash = entry.PasswordHash
		if _, err := s.store.CreateUser(&user); err != nil {
			return fmt.Errorf("failed to restore user %s: %w", user.ID, err)
		}

		if entry.Progress != nil {
			if err := s.restoreProgress(user.ID, entry.Progress); err != nil {
				return err
			}
		}
		for _, game := range entry.UnlockedGames {
			if _, err := s.store.UnlockGame(user.ID, game.GameID); err != nil {
				return fmt.Errorf("failed to restore unlock %s: %w", game.GameID, err)
			}
		}
		for _, a := range entry.Achievements {
			if _, err := s.store.AddAchievement(user.ID, a.AchievementID, a.Title, a.Description); err != nil {
				return fmt.Errorf("failed to restore achievement %s: %w", a.AchievementID, err)
			}
		}
		for _, stats := range entry.GameStats {
			update := store.GameStatsUpdate{
				TimesPlayed:   &stats.TimesPlayed,
				BestScore:     &stats.BestScore,
				TotalXPEarned: &stats.TotalXPEarned,
			}
			if _, err := s.store.UpdateGameStats(user.ID, stats.GameID, update); err != nil {
				return fmt.Errorf("failed to restore stats for %s: %w", stats.GameID, err)
			}
		}
		restored++
	}

	log.Printf("Backup imported: %d users restored, %d skipped", restored, len(backup.Users)-restored)
	return nil
}

func (s *BackupService) restoreProgress(userID string, p *models.Progress) error {
	update := store.ProgressUpdate{
		TotalXP:        &p.TotalXP,
		MathSkills:     &p.MathSkills,
		EnglishSkills:  &p.EnglishSkills,
		ScienceSkills:  &p.ScienceSkills,
		CodingSkills:   &p.CodingSkills,
		ArtSkills:      &p.ArtSkills,
		LanguageSkills: &p.LanguageSkills,
		ProblemSolving: &p.ProblemSolving,
		MemorySkills:   &p.MemorySkills,
		LearningStreak: &p.LearningStreak,
		LastActiveDate: p.LastActiveDate,
	}
	if _, err := s.store.UpdateProgress(userID, update); err != nil {
		return fmt.Errorf("failed to restore progress for %s: %w", userID, err)
	}
	return nil
}
