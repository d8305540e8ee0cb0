// Package store is the persistence adapter for the six entity kinds the
// application tracks. One Store interface, two implementations: a map-backed
// MemoryStore and a SQLStore over the relational layer. Which one runs is
// decided once at process start from configuration.
package store

import (
	"errors"
	"time"

	"magilearn/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
// Storage-level faults (connectivity, constraint violations) are returned
// as ordinary wrapped errors, distinct from this sentinel.
var ErrNotFound = errors.New("record not found")

// Store is the persistence contract shared by both adapters.
//
// Update operations perform a merge: fields set on the update replace the
// stored values, nil fields keep them, and a missing record is created with
// documented defaults (zero counters, empty labels). Each call is atomic
// with respect to a single entity instance; no cross-entity transactions
// are offered.
type Store interface {
	// Users
	GetUser(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	ListUsers() ([]models.User, error)
	CreateUser(user *models.User) (*models.User, error)
	UpdateUser(id string, update UserUpdate) (*models.User, error)

	// Progress (one per user, upserted)
	GetProgress(userID string) (*models.Progress, error)
	UpdateProgress(userID string, update ProgressUpdate) (*models.Progress, error)

	// Daily spin allowances (one per user per date, upserted)
	GetDailySpins(userID, date string) (*models.DailySpins, error)
	UpdateDailySpins(userID, date string, spinsUsed int) (*models.DailySpins, error)

	// Unlocked games
	GetUnlockedGames(userID string) ([]models.UnlockedGame, error)
	UnlockGame(userID, gameID string) (*models.UnlockedGame, error)

	// Achievements
	GetAchievements(userID string) ([]models.Achievement, error)
	AddAchievement(userID, achievementID, title, description string) (*models.Achievement, error)

	// Game stats (one per user per game, upserted)
	GetGameStats(userID, gameID string) (*models.GameStats, error)
	ListGameStats(userID string) ([]models.GameStats, error)
	UpdateGameStats(userID, gameID string, update GameStatsUpdate) (*models.GameStats, error)

	// Sessions
	CreateSession(id, userID string, expiresAt time.Time) (*models.Session, error)
	GetSession(id string) (*models.Session, error)
	DeleteSession(id string) error
	DeleteExpiredSessions() error

	Close() error
}

// UserUpdate is a partial update of a user's profile fields
type UserUpdate struct {
	Email              *string
	Name               *string
	Age                *int
	Class              *string
	SpecialNeed        *string
	LearningStyle      *string
	Interests          *[]string
	Subjects           *[]string
	CurrentMood        *string
	AccessibilityNeeds *[]string
	LearningProfile    *models.LearningProfile
}

// ProgressUpdate is a partial update of a progress record
type ProgressUpdate struct {
	TotalXP        *int
	MathSkills     *int
	EnglishSkills  *int
	ScienceSkills  *int
	CodingSkills   *int
	ArtSkills      *int
	LanguageSkills *int
	ProblemSolving *int
	MemorySkills   *int
	LearningStreak *int
	LastActiveDate *time.Time
}

// SetSkill sets the update field for a skill category key
func (u *ProgressUpdate) SetSkill(skill string, value int) {
	v := value
	switch skill {
	case models.SkillMath:
		u.MathSkills = &v
	case models.SkillEnglish:
		u.EnglishSkills = &v
	case models.SkillScience:
		u.ScienceSkills = &v
	case models.SkillCoding:
		u.CodingSkills = &v
	case models.SkillArt:
		u.ArtSkills = &v
	case models.SkillLanguage:
		u.LanguageSkills = &v
	case models.SkillProblemSolving:
		u.ProblemSolving = &v
	case models.SkillMemory:
		u.MemorySkills = &v
	}
}

// GameStatsUpdate is a partial update of a per-game stats record
type GameStatsUpdate struct {
	TimesPlayed   *int
	BestScore     *int
	TotalXPEarned *int
}

// applyProgressUpdate merges an update into an existing record
func applyProgressUpdate(p *models.Progress, update ProgressUpdate) {
	if update.TotalXP != nil {
		p.TotalXP = *update.TotalXP
	}
	if update.MathSkills != nil {
		p.MathSkills = *update.MathSkills
	}
	if update.EnglishSkills != nil {
		p.EnglishSkills = *update.EnglishSkills
	}
	if update.ScienceSkills != nil {
		p.ScienceSkills = *update.ScienceSkills
	}
	if update.CodingSkills != nil {
		p.CodingSkills = *update.CodingSkills
	}
	if update.ArtSkills != nil {
		p.ArtSkills = *update.ArtSkills
	}
	if update.LanguageSkills != nil {
		p.LanguageSkills = *update.LanguageSkills
	}
	if update.ProblemSolving != nil {
		p.ProblemSolving = *update.ProblemSolving
	}
	if update.MemorySkills != nil {
		p.MemorySkills = *update.MemorySkills
	}
	if update.LearningStreak != nil {
		p.LearningStreak = *update.LearningStreak
	}
	if update.LastActiveDate != nil {
		p.LastActiveDate = update.LastActiveDate
	}
}

// applyUserUpdate merges an update into an existing record
func applyUserUpdate(u *models.User, update UserUpdate) {
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Age != nil {
		u.Age = *update.Age
	}
	if update.Class != nil {
		u.Class = *update.Class
	}
	if update.SpecialNeed != nil {
		u.SpecialNeed = *update.SpecialNeed
	}
	if update.LearningStyle != nil {
		u.LearningStyle = *update.LearningStyle
	}
	if update.Interests != nil {
		u.Interests = *update.Interests
	}
	if update.Subjects != nil {
		u.Subjects = *update.Subjects
	}
	if update.CurrentMood != nil {
		u.CurrentMood = *update.CurrentMood
	}
	if update.AccessibilityNeeds != nil {
		u.AccessibilityNeeds = *update.AccessibilityNeeds
	}
	if update.LearningProfile != nil {
		u.LearningProfile = update.LearningProfile
	}
}

// applyGameStatsUpdate merges an update into an existing record
func applyGameStatsUpdate(s *models.GameStats, update GameStatsUpdate) {
	if update.TimesPlayed != nil {
		s.TimesPlayed = *update.TimesPlayed
	}
	if update.BestScore != nil {
		s.BestScore = *update.BestScore
	}
	if update.TotalXPEarned != nil {
		s.TotalXPEarned = *update.TotalXPEarned
	}
}
