package store

import (
	"errors"
	"fmt"
	"time"

	"magilearn/internal/models"
)

// SeedDemo populates a store with the demo account the dashboard shows
// when no one has signed up yet. It is idempotent: an existing demo user
// is left untouched. passwordHash is the hash for the demo password; the
// caller owns hashing so this package stays free of crypto.
//
// Spin allowances are deliberately not seeded, so the demo account wakes
// up each day with a full wheel.
func SeedDemo(s Store, passwordHash string) error {
	if _, err := s.GetUser(DemoUserID); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check demo user: %w", err)
	}

	now := time.Now()
	_, err := s.CreateUser(&models.User{
		ID:                 DemoUserID,
		Username:           "Alex",
		PasswordHash:       passwordHash,
		Name:               "Alex Martinez",
		Age:                10,
		Class:              "5th Grade",
		SpecialNeed:        "adhd",
		LearningStyle:      "visual",
		Interests:          []string{"math", "puzzles"},
		Subjects:           []string{"math", "science", "art"},
		CurrentMood:        "happy",
		AccessibilityNeeds: []string{},
		CreatedAt:          now,
	})
	if err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	xp := 1247
	math, english, science := 78, 65, 70
	coding, art, language := 45, 85, 65
	problemSolving, memory := 82, 71
	streak := 5
	_, err = s.UpdateProgress(DemoUserID, ProgressUpdate{
		TotalXP:        &xp,
		MathSkills:     &math,
		EnglishSkills:  &english,
		ScienceSkills:  &science,
		CodingSkills:   &coding,
		ArtSkills:      &art,
		LanguageSkills: &language,
		ProblemSolving: &problemSolving,
		MemorySkills:   &memory,
		LearningStreak: &streak,
		LastActiveDate: &now,
	})
	if err != nil {
		return fmt.Errorf("failed to seed demo progress: %w", err)
	}

	for _, gameID := range []string{"math-ninja", "memory-flip", "puzzle-portal", "quiz-attack", "color-match"} {
		if _, err := s.UnlockGame(DemoUserID, gameID); err != nil {
			return fmt.Errorf("failed to seed demo unlock %s: %w", gameID, err)
		}
	}

	seedAchievements := []struct {
		id, title, description string
	}{
		{"math-master", "Math Master", "Completed 10 math games!"},
		{"5-day-streak", "5-Day Streak", "Learning every day!"},
		{"first-spin", "First Spin", "Unlocked your first game!"},
	}
	for _, a := range seedAchievements {
		if _, err := s.AddAchievement(DemoUserID, a.id, a.title, a.description); err != nil {
			return fmt.Errorf("failed to seed demo achievement %s: %w", a.id, err)
		}
	}

	return nil
}
