package store

import (
	"errors"
	"testing"
	"time"

	"magilearn/internal/models"
)

func TestMemoryStoreUsers(t *testing.T) {
	s := NewMemoryStore()

	created, err := s.CreateUser(&models.User{Username: "sam", Name: "Sam"})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated ID")
	}

	got, err := s.GetUser(created.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Username != "sam" {
		t.Errorf("expected username sam, got %q", got.Username)
	}

	byName, err := s.GetUserByUsername("sam")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if byName.ID != created.ID {
		t.Errorf("expected ID %q, got %q", created.ID, byName.ID)
	}

	if _, err := s.GetUser("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreUpdateUser(t *testing.T) {
	s := NewMemoryStore()
	created, _ := s.CreateUser(&models.User{Username: "sam", Name: "Sam"})

	mood := "excited"
	subjects := []string{"science"}
	updated, err := s.UpdateUser(created.ID, UserUpdate{CurrentMood: &mood, Subjects: &subjects})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if updated.CurrentMood != "excited" {
		t.Errorf("expected mood excited, got %q", updated.CurrentMood)
	}
	if updated.Name != "Sam" {
		t.Errorf("expected unset fields to be kept, name became %q", updated.Name)
	}

	if _, err := s.UpdateUser("missing", UserUpdate{CurrentMood: &mood}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreClonesReturnedUsers(t *testing.T) {
	s := NewMemoryStore()
	created, _ := s.CreateUser(&models.User{Username: "sam", Subjects: []string{"math"}})

	got, _ := s.GetUser(created.ID)
	got.Subjects[0] = "mutated"

	again, _ := s.GetUser(created.ID)
	if again.Subjects[0] != "math" {
		t.Errorf("stored record was mutated through a returned copy: %q", again.Subjects[0])
	}
}

func TestMemoryStoreProgressUpsert(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.GetProgress("u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before upsert, got %v", err)
	}

	xp := 50
	progress, err := s.UpdateProgress("u1", ProgressUpdate{TotalXP: &xp})
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if progress.TotalXP != 50 {
		t.Errorf("expected 50 XP, got %d", progress.TotalXP)
	}
	if progress.MathSkills != 0 {
		t.Errorf("expected zeroed skills on create, got %d", progress.MathSkills)
	}

	math := 10
	progress, err = s.UpdateProgress("u1", ProgressUpdate{MathSkills: &math})
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if progress.TotalXP != 50 {
		t.Errorf("merge dropped total XP, got %d", progress.TotalXP)
	}
	if progress.MathSkills != 10 {
		t.Errorf("expected math 10, got %d", progress.MathSkills)
	}
}

func TestMemoryStoreDailySpins(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.GetDailySpins("u1", "2025-06-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	spins, err := s.UpdateDailySpins("u1", "2025-06-01", 1)
	if err != nil {
		t.Fatalf("UpdateDailySpins failed: %v", err)
	}
	if spins.SpinsUsed != 1 || spins.SpinsRemaining != 2 {
		t.Errorf("expected used=1 remaining=2, got used=%d remaining=%d", spins.SpinsUsed, spins.SpinsRemaining)
	}

	// A different date is a separate allowance
	other, err := s.UpdateDailySpins("u1", "2025-06-02", 3)
	if err != nil {
		t.Fatalf("UpdateDailySpins failed: %v", err)
	}
	if other.SpinsRemaining != 0 {
		t.Errorf("expected remaining=0, got %d", other.SpinsRemaining)
	}
	first, _ := s.GetDailySpins("u1", "2025-06-01")
	if first.SpinsUsed != 1 {
		t.Errorf("dates should not share allowances, got used=%d", first.SpinsUsed)
	}
}

func TestMemoryStoreUnlockedGames(t *testing.T) {
	s := NewMemoryStore()

	games, err := s.GetUnlockedGames("u1")
	if err != nil {
		t.Fatalf("GetUnlockedGames failed: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("expected no unlocks, got %d", len(games))
	}

	if _, err := s.UnlockGame("u1", "typing-dash"); err != nil {
		t.Fatalf("UnlockGame failed: %v", err)
	}
	if _, err := s.UnlockGame("u1", "code-runner"); err != nil {
		t.Fatalf("UnlockGame failed: %v", err)
	}

	games, _ = s.GetUnlockedGames("u1")
	if len(games) != 2 {
		t.Fatalf("expected 2 unlocks, got %d", len(games))
	}
	if games[0].GameID != "typing-dash" {
		t.Errorf("expected unlock order preserved, got %q first", games[0].GameID)
	}
}

func TestMemoryStoreGameStatsUpsert(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.GetGameStats("u1", "math-ninja"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	played := 1
	best := 80
	stats, err := s.UpdateGameStats("u1", "math-ninja", GameStatsUpdate{TimesPlayed: &played, BestScore: &best})
	if err != nil {
		t.Fatalf("UpdateGameStats failed: %v", err)
	}
	if stats.TimesPlayed != 1 || stats.BestScore != 80 {
		t.Errorf("unexpected stats: played=%d best=%d", stats.TimesPlayed, stats.BestScore)
	}
	if stats.LastPlayed == nil {
		t.Error("expected last played to be stamped")
	}

	played = 2
	stats, _ = s.UpdateGameStats("u1", "math-ninja", GameStatsUpdate{TimesPlayed: &played})
	if stats.BestScore != 80 {
		t.Errorf("merge dropped best score, got %d", stats.BestScore)
	}

	all, err := s.ListGameStats("u1")
	if err != nil {
		t.Fatalf("ListGameStats failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 stats record, got %d", len(all))
	}
}

func TestMemoryStoreSessions(t *testing.T) {
	s := NewMemoryStore()

	expired, err := s.CreateSession("old", "u1", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	live, err := s.CreateSession("live", "u1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if err := s.DeleteExpiredSessions(); err != nil {
		t.Fatalf("DeleteExpiredSessions failed: %v", err)
	}
	if _, err := s.GetSession(expired.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected expired session gone, got %v", err)
	}
	if _, err := s.GetSession(live.ID); err != nil {
		t.Errorf("expected live session kept, got %v", err)
	}

	if err := s.DeleteSession(live.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := s.GetSession(live.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected deleted session gone, got %v", err)
	}
}

func TestSeedDemo(t *testing.T) {
	s := NewMemoryStore()
	if err := SeedDemo(s, "hash"); err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}
	// Seeding twice must not duplicate records
	if err := SeedDemo(s, "hash"); err != nil {
		t.Fatalf("second SeedDemo failed: %v", err)
	}

	user, err := s.GetUser(DemoUserID)
	if err != nil {
		t.Fatalf("expected demo user, got %v", err)
	}
	if user.Name != "Alex Martinez" {
		t.Errorf("unexpected demo name %q", user.Name)
	}

	progress, err := s.GetProgress(DemoUserID)
	if err != nil {
		t.Fatalf("expected demo progress, got %v", err)
	}
	if progress.TotalXP != 1247 {
		t.Errorf("unexpected demo XP %d", progress.TotalXP)
	}

	games, _ := s.GetUnlockedGames(DemoUserID)
	if len(games) != 5 {
		t.Errorf("expected 5 starter unlocks, got %d", len(games))
	}

	// Spin allowances are not pre-seeded so the first day starts full
	if _, err := s.GetDailySpins(DemoUserID, time.Now().Format("2006-01-02")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected no seeded spins, got %v", err)
	}
}
