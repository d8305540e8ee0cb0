package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"magilearn/internal/models"
)

// DemoUserID is the identifier of the seeded demo account used when the
// server runs without a session layer.
const DemoUserID = "default-user"

// MemoryStore is the map-backed Store implementation. All state is lost on
// restart; it exists for demo mode and tests.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]*models.User
	progress     map[string]*models.Progress
	spins        map[string]*models.DailySpins // keyed userID+"-"+date
	unlocked     map[string][]models.UnlockedGame
	achievements map[string][]models.Achievement
	stats        map[string]map[string]*models.GameStats
	sessions     map[string]*models.Session
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]*models.User),
		progress:     make(map[string]*models.Progress),
		spins:        make(map[string]*models.DailySpins),
		unlocked:     make(map[string][]models.UnlockedGame),
		achievements: make(map[string][]models.Achievement),
		stats:        make(map[string]map[string]*models.GameStats),
		sessions:     make(map[string]*models.Session),
	}
}

// GetUser retrieves a user by ID
func (m *MemoryStore) GetUser(id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(user), nil
}

// GetUserByUsername retrieves a user by username
func (m *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, ErrNotFound
}

// ListUsers retrieves all users
func (m *MemoryStore) ListUsers() ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *cloneUser(user))
	}
	return users, nil
}

// CreateUser stores a new user, generating an ID if one is not set
func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := cloneUser(user)
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	m.users[stored.ID] = stored
	return cloneUser(stored), nil
}

// UpdateUser merges the update into the stored user
func (m *MemoryStore) UpdateUser(id string, update UserUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	applyUserUpdate(user, update)
	return cloneUser(user), nil
}

// GetProgress retrieves a user's progress record
func (m *MemoryStore) GetProgress(userID string) (*models.Progress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	progress, ok := m.progress[userID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *progress
	return &clone, nil
}

// UpdateProgress merges the update into the stored progress, creating a
// record with zeroed counters if none exists
func (m *MemoryStore) UpdateProgress(userID string, update ProgressUpdate) (*models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	progress, ok := m.progress[userID]
	if !ok {
		progress = &models.Progress{ID: uuid.New().String(), UserID: userID}
		m.progress[userID] = progress
	}
	applyProgressUpdate(progress, update)
	clone := *progress
	return &clone, nil
}

// GetDailySpins retrieves the allowance for one user and date
func (m *MemoryStore) GetDailySpins(userID, date string) (*models.DailySpins, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	spins, ok := m.spins[userID+"-"+date]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *spins
	return &clone, nil
}

// UpdateDailySpins upserts the allowance for one user and date.
// Spins remaining is always recomputed from the used count.
func (m *MemoryStore) UpdateDailySpins(userID, date string, spinsUsed int) (*models.DailySpins, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := userID + "-" + date
	spins, ok := m.spins[key]
	if !ok {
		spins = &models.DailySpins{ID: uuid.New().String(), UserID: userID, Date: date}
		m.spins[key] = spins
	}
	spins.SpinsUsed = spinsUsed
	spins.SpinsRemaining = models.RemainingSpins(spinsUsed)
	clone := *spins
	return &clone, nil
}

// GetUnlockedGames lists a user's unlocked games
func (m *MemoryStore) GetUnlockedGames(userID string) ([]models.UnlockedGame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	games := m.unlocked[userID]
	out := make([]models.UnlockedGame, len(games))
	copy(out, games)
	return out, nil
}

// UnlockGame records an unlock fact for a user
func (m *MemoryStore) UnlockGame(userID, gameID string) (*models.UnlockedGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	unlocked := models.UnlockedGame{
		ID:         uuid.New().String(),
		UserID:     userID,
		GameID:     gameID,
		UnlockedAt: time.Now(),
	}
	m.unlocked[userID] = append(m.unlocked[userID], unlocked)
	return &unlocked, nil
}

// GetAchievements lists a user's achievements
func (m *MemoryStore) GetAchievements(userID string) ([]models.Achievement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	achievements := m.achievements[userID]
	out := make([]models.Achievement, len(achievements))
	copy(out, achievements)
	return out, nil
}

// AddAchievement records an earned achievement
func (m *MemoryStore) AddAchievement(userID, achievementID, title, description string) (*models.Achievement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	achievement := models.Achievement{
		ID:            uuid.New().String(),
		UserID:        userID,
		AchievementID: achievementID,
		Title:         title,
		Description:   description,
		EarnedAt:      time.Now(),
	}
	m.achievements[userID] = append(m.achievements[userID], achievement)
	return &achievement, nil
}

// GetGameStats retrieves stats for one user and game
func (m *MemoryStore) GetGameStats(userID, gameID string) (*models.GameStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	userStats, ok := m.stats[userID]
	if !ok {
		return nil, ErrNotFound
	}
	stats, ok := userStats[gameID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *stats
	return &clone, nil
}

// ListGameStats lists all per-game stats for a user
func (m *MemoryStore) ListGameStats(userID string) ([]models.GameStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	userStats := m.stats[userID]
	out := make([]models.GameStats, 0, len(userStats))
	for _, stats := range userStats {
		out = append(out, *stats)
	}
	return out, nil
}

// UpdateGameStats upserts stats for one user and game.
// Last played is always stamped with the current time.
func (m *MemoryStore) UpdateGameStats(userID, gameID string, update GameStatsUpdate) (*models.GameStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	userStats, ok := m.stats[userID]
	if !ok {
		userStats = make(map[string]*models.GameStats)
		m.stats[userID] = userStats
	}
	stats, ok := userStats[gameID]
	if !ok {
		stats = &models.GameStats{ID: uuid.New().String(), UserID: userID, GameID: gameID}
		userStats[gameID] = stats
	}
	applyGameStatsUpdate(stats, update)
	now := time.Now()
	stats.LastPlayed = &now

	clone := *stats
	return &clone, nil
}

// CreateSession stores a new session
func (m *MemoryStore) CreateSession(id, userID string, expiresAt time.Time) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := &models.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	m.sessions[id] = session
	clone := *session
	return &clone, nil
}

// GetSession retrieves a session by ID
func (m *MemoryStore) GetSession(id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *session
	return &clone, nil
}

// DeleteSession removes a session
func (m *MemoryStore) DeleteSession(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

// DeleteExpiredSessions removes all expired sessions
func (m *MemoryStore) DeleteExpiredSessions() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			delete(m.sessions, id)
		}
	}
	return nil
}

// Close is a no-op for the in-memory store
func (m *MemoryStore) Close() error {
	return nil
}

func cloneUser(u *models.User) *models.User {
	clone := *u
	clone.Interests = append([]string(nil), u.Interests...)
	clone.Subjects = append([]string(nil), u.Subjects...)
	clone.AccessibilityNeeds = append([]string(nil), u.AccessibilityNeeds...)
	if u.LearningProfile != nil {
		profile := *u.LearningProfile
		clone.LearningProfile = &profile
	}
	return &clone
}
