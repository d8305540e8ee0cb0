package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"magilearn/internal/games"
	"magilearn/internal/models"
	"magilearn/internal/store"
)

// Reward and increment amounts applied by progress operations
const (
	SpinXPReward           = 50
	ContinueXPReward       = 25
	GameSkillIncrement     = 2
	ContinueSkillIncrement = 5
)

// ErrNoSpinsRemaining is returned when a user attempts a spin with an
// exhausted daily allowance
var ErrNoSpinsRemaining = errors.New("no spins remaining")

// ErrProgressNotFound is returned when an operation requires an existing
// progress record and none exists
var ErrProgressNotFound = errors.New("progress not found")

// SpinReward describes what one spin produced. Type is "game" when a new
// game was unlocked and "xp" when every lockable game is already unlocked;
// XP is awarded either way.
type SpinReward struct {
	Type   string `json:"type"`
	GameID string `json:"gameId,omitempty"`
	XP     int    `json:"xp"`
}

// SpinResult is the outcome of one consumed spin
type SpinResult struct {
	Spins  *models.DailySpins `json:"spins"`
	Reward SpinReward         `json:"reward"`
}

// ProgressService owns the XP, skill, spin, and play-session rules.
// Operations that read then write a user's records are serialized per user
// so two concurrent spins cannot both pass the allowance check.
type ProgressService struct {
	store store.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	// rollGame picks the spin outcome from the candidate pool;
	// replaceable in tests
	rollGame func(pool []string) string
}

// NewProgressService creates a progress service over the given store
func NewProgressService(s store.Store) *ProgressService {
	return &ProgressService{
		store: s,
		locks: make(map[string]*sync.Mutex),
		rollGame: func(pool []string) string {
			return pool[rand.Intn(len(pool))]
		},
	}
}

// userLock returns the mutex serializing operations for one user
func (s *ProgressService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// today returns the current calendar date key
func today() string {
	return time.Now().Format("2006-01-02")
}

// GetProgress returns the user's progress record
func (s *ProgressService) GetProgress(userID string) (*models.Progress, error) {
	progress, err := s.store.GetProgress(userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProgressNotFound
	}
	return progress, err
}

// GetDailySpins returns today's spin allowance, creating a fresh full
// allowance if the user has not spun today. The lazy create runs under the
// user lock so it cannot clobber a concurrent spin's used count.
func (s *ProgressService) GetDailySpins(userID string) (*models.DailySpins, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	date := today()
	spins, err := s.store.GetDailySpins(userID, date)
	if errors.Is(err, store.ErrNotFound) {
		return s.store.UpdateDailySpins(userID, date, 0)
	}
	return spins, err
}

// ConsumeSpin uses one spin from today's allowance. The wheel rolls a
// uniform random game from the not-yet-unlocked part of the lockable pool
// and unlocks it; when every lockable game is already unlocked the spin
// yields XP only. The XP reward is granted in both cases.
func (s *ProgressService) ConsumeSpin(userID string) (*SpinResult, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	date := today()
	current, err := s.store.GetDailySpins(userID, date)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to read spin allowance: %w", err)
	}
	if current != nil && current.SpinsRemaining <= 0 {
		return nil, ErrNoSpinsRemaining
	}

	used := 0
	if current != nil {
		used = current.SpinsUsed
	}
	updated, err := s.store.UpdateDailySpins(userID, date, used+1)
	if err != nil {
		return nil, fmt.Errorf("failed to consume spin: %w", err)
	}

	unlocked, err := s.store.GetUnlockedGames(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read unlocks: %w", err)
	}
	pool := lockedGames(unlocked)

	reward := SpinReward{Type: "xp", XP: SpinXPReward}
	if len(pool) > 0 {
		rolled := s.rollGame(pool)
		if _, err := s.store.UnlockGame(userID, rolled); err != nil {
			return nil, fmt.Errorf("failed to unlock game: %w", err)
		}
		reward.Type = "game"
		reward.GameID = rolled
	}

	if err := s.addXP(userID, SpinXPReward); err != nil {
		return nil, err
	}

	return &SpinResult{Spins: updated, Reward: reward}, nil
}

// lockedGames filters the lockable pool down to the games the user has
// not unlocked yet
func lockedGames(unlocked []models.UnlockedGame) []string {
	have := make(map[string]bool, len(unlocked))
	for _, game := range unlocked {
		have[game.GameID] = true
	}
	var pool []string
	for _, gameID := range games.LockablePool {
		if !have[gameID] {
			pool = append(pool, gameID)
		}
	}
	return pool
}

// PlayResult is the outcome of recording one play session
type PlayResult struct {
	Stats *models.GameStats `json:"stats"`
}

// RecordGameResult records one play session: increments the play count,
// keeps the best score monotonic, accumulates XP on the game's stats, and
// bumps the skill the game trains by the fixed increment
func (s *ProgressService) RecordGameResult(userID, gameID string, score, xpEarned int) (*PlayResult, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var current *models.GameStats
	current, err := s.store.GetGameStats(userID, gameID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to read game stats: %w", err)
	}

	played := 1
	best := score
	totalEarned := xpEarned
	if current != nil {
		played = current.TimesPlayed + 1
		if current.BestScore > best {
			best = current.BestScore
		}
		totalEarned = current.TotalXPEarned + xpEarned
	}

	stats, err := s.store.UpdateGameStats(userID, gameID, store.GameStatsUpdate{
		TimesPlayed:   &played,
		BestScore:     &best,
		TotalXPEarned: &totalEarned,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update game stats: %w", err)
	}

	if xpEarned > 0 {
		progress, err := s.store.GetProgress(userID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("failed to read progress: %w", err)
		}
		if progress != nil {
			update := store.ProgressUpdate{}
			xp := progress.TotalXP + xpEarned
			update.TotalXP = &xp
			if skill, ok := games.SkillForGame(gameID); ok {
				update.SetSkill(skill, models.ClampSkill(progress.SkillLevel(skill)+GameSkillIncrement))
			}
			if _, err := s.store.UpdateProgress(userID, update); err != nil {
				return nil, fmt.Errorf("failed to update progress: %w", err)
			}
		}
	}

	return &PlayResult{Stats: stats}, nil
}

// ContinueLearning awards a flat XP bonus, bumps every skill category by
// the fixed increment, and stamps the last active date
func (s *ProgressService) ContinueLearning(userID string) (*models.Progress, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	progress, err := s.store.GetProgress(userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read progress: %w", err)
	}

	now := time.Now()
	xp := progress.TotalXP + ContinueXPReward
	update := store.ProgressUpdate{TotalXP: &xp, LastActiveDate: &now}
	for _, skill := range models.AllSkills {
		update.SetSkill(skill, models.ClampSkill(progress.SkillLevel(skill)+ContinueSkillIncrement))
	}

	updated, err := s.store.UpdateProgress(userID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}
	return updated, nil
}

// addXP adds XP to a user's existing progress record. Missing progress is
// skipped silently, matching the spin flow where XP is a side reward.
func (s *ProgressService) addXP(userID string, amount int) error {
	progress, err := s.store.GetProgress(userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read progress: %w", err)
	}
	xp := progress.TotalXP + amount
	if _, err := s.store.UpdateProgress(userID, store.ProgressUpdate{TotalXP: &xp}); err != nil {
		return fmt.Errorf("failed to award XP: %w", err)
	}
	return nil
}

// GetUnlockedGames lists the user's unlocked games
func (s *ProgressService) GetUnlockedGames(userID string) ([]models.UnlockedGame, error) {
	return s.store.GetUnlockedGames(userID)
}

// GetAchievements lists the user's earned achievements
func (s *ProgressService) GetAchievements(userID string) ([]models.Achievement, error) {
	return s.store.GetAchievements(userID)
}

// Snapshot bundles everything the dashboard shows for one user
type Snapshot struct {
	User          *models.User          `json:"user"`
	Progress      *models.Progress      `json:"progress"`
	Spins         *models.DailySpins    `json:"spins"`
	UnlockedGames []models.UnlockedGame `json:"unlockedGames"`
	Achievements  []models.Achievement  `json:"achievements"`
	GameStats     []models.GameStats    `json:"gameStats"`
}

// GetSnapshot assembles the full dashboard state for one user
func (s *ProgressService) GetSnapshot(userID string) (*Snapshot, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	progress, err := s.store.GetProgress(userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to read progress: %w", err)
	}
	spins, err := s.GetDailySpins(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read spins: %w", err)
	}
	unlocked, err := s.store.GetUnlockedGames(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read unlocks: %w", err)
	}
	achievements, err := s.store.GetAchievements(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read achievements: %w", err)
	}
	stats, err := s.store.ListGameStats(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read game stats: %w", err)
	}

	return &Snapshot{
		User:          user,
		Progress:      progress,
		Spins:         spins,
		UnlockedGames: unlocked,
		Achievements:  achievements,
		GameStats:     stats,
	}, nil
}
