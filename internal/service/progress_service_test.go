package service

import (
	"errors"
	"sync"
	"testing"

	"magilearn/internal/games"
	"magilearn/internal/models"
	"magilearn/internal/store"
)

func newTestProgressService(t *testing.T) (*ProgressService, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	if err := store.SeedDemo(s, "hash"); err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}
	return NewProgressService(s), s
}

func TestGetDailySpinsCreatesFreshAllowance(t *testing.T) {
	svc, _ := newTestProgressService(t)

	spins, err := svc.GetDailySpins(store.DemoUserID)
	if err != nil {
		t.Fatalf("GetDailySpins failed: %v", err)
	}
	if spins.SpinsUsed != 0 || spins.SpinsRemaining != models.DailySpinCap {
		t.Errorf("expected fresh allowance, got used=%d remaining=%d", spins.SpinsUsed, spins.SpinsRemaining)
	}
}

func TestConsumeSpinUnlocksGameAndAwardsXP(t *testing.T) {
	svc, st := newTestProgressService(t)
	svc.rollGame = func(pool []string) string { return "typing-dash" }

	before, _ := st.GetProgress(store.DemoUserID)

	result, err := svc.ConsumeSpin(store.DemoUserID)
	if err != nil {
		t.Fatalf("ConsumeSpin failed: %v", err)
	}
	if result.Reward.Type != "game" || result.Reward.GameID != "typing-dash" {
		t.Errorf("expected game reward for typing-dash, got %+v", result.Reward)
	}
	if result.Reward.XP != SpinXPReward {
		t.Errorf("expected %d XP, got %d", SpinXPReward, result.Reward.XP)
	}
	if result.Spins.SpinsRemaining != models.DailySpinCap-1 {
		t.Errorf("expected %d spins remaining, got %d", models.DailySpinCap-1, result.Spins.SpinsRemaining)
	}

	after, _ := st.GetProgress(store.DemoUserID)
	if after.TotalXP != before.TotalXP+SpinXPReward {
		t.Errorf("expected XP %d, got %d", before.TotalXP+SpinXPReward, after.TotalXP)
	}

	unlocked, _ := st.GetUnlockedGames(store.DemoUserID)
	found := false
	for _, g := range unlocked {
		if g.GameID == "typing-dash" {
			found = true
		}
	}
	if !found {
		t.Error("expected typing-dash among unlocks")
	}
}

func TestGetDailySpinsDoesNotResetConcurrentSpin(t *testing.T) {
	svc, st := newTestProgressService(t)

	// Lazy allowance creation and a first spin race; the used count must
	// survive whichever order they land in
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := svc.GetDailySpins(store.DemoUserID); err != nil {
			t.Errorf("GetDailySpins failed: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if _, err := svc.ConsumeSpin(store.DemoUserID); err != nil {
			t.Errorf("ConsumeSpin failed: %v", err)
		}
	}()
	wg.Wait()

	spins, err := st.GetDailySpins(store.DemoUserID, today())
	if err != nil {
		t.Fatalf("GetDailySpins failed: %v", err)
	}
	if spins.SpinsUsed != 1 || spins.SpinsRemaining != models.DailySpinCap-1 {
		t.Errorf("spin lost: used=%d remaining=%d", spins.SpinsUsed, spins.SpinsRemaining)
	}
}

func TestConsumeSpinRollsOnlyLockedGames(t *testing.T) {
	svc, st := newTestProgressService(t)

	// Unlock all but the last lockable game; the wheel must then offer
	// exactly that one
	last := games.LockablePool[len(games.LockablePool)-1]
	for _, gameID := range games.LockablePool[:len(games.LockablePool)-1] {
		if _, err := st.UnlockGame(store.DemoUserID, gameID); err != nil {
			t.Fatalf("UnlockGame(%s) failed: %v", gameID, err)
		}
	}

	var offered []string
	svc.rollGame = func(pool []string) string {
		offered = append([]string(nil), pool...)
		return pool[0]
	}

	result, err := svc.ConsumeSpin(store.DemoUserID)
	if err != nil {
		t.Fatalf("ConsumeSpin failed: %v", err)
	}
	if len(offered) != 1 || offered[0] != last {
		t.Errorf("expected roll pool [%s], got %v", last, offered)
	}
	if result.Reward.Type != "game" || result.Reward.GameID != last {
		t.Errorf("expected %s to be unlocked, got %+v", last, result.Reward)
	}
}

func TestConsumeSpinAllUnlockedYieldsXPOnly(t *testing.T) {
	svc, st := newTestProgressService(t)

	for _, gameID := range games.LockablePool {
		if _, err := st.UnlockGame(store.DemoUserID, gameID); err != nil {
			t.Fatalf("UnlockGame(%s) failed: %v", gameID, err)
		}
	}
	unlockedBefore, _ := st.GetUnlockedGames(store.DemoUserID)
	before, _ := st.GetProgress(store.DemoUserID)

	svc.rollGame = func(pool []string) string {
		t.Fatalf("wheel rolled over %v with nothing left to unlock", pool)
		return ""
	}

	result, err := svc.ConsumeSpin(store.DemoUserID)
	if err != nil {
		t.Fatalf("ConsumeSpin failed: %v", err)
	}
	if result.Reward.Type != "xp" || result.Reward.GameID != "" {
		t.Errorf("expected xp-only reward, got %+v", result.Reward)
	}
	if result.Reward.XP != SpinXPReward {
		t.Errorf("expected %d XP, got %d", SpinXPReward, result.Reward.XP)
	}

	unlockedAfter, _ := st.GetUnlockedGames(store.DemoUserID)
	if len(unlockedAfter) != len(unlockedBefore) {
		t.Errorf("expected no new unlocks, got %d -> %d", len(unlockedBefore), len(unlockedAfter))
	}
	after, _ := st.GetProgress(store.DemoUserID)
	if after.TotalXP != before.TotalXP+SpinXPReward {
		t.Errorf("expected XP %d, got %d", before.TotalXP+SpinXPReward, after.TotalXP)
	}
}

func TestConsumeSpinExhaustsAllowance(t *testing.T) {
	svc, st := newTestProgressService(t)
	svc.rollGame = func(pool []string) string { return pool[0] }

	for i := 0; i < models.DailySpinCap; i++ {
		if _, err := svc.ConsumeSpin(store.DemoUserID); err != nil {
			t.Fatalf("spin %d failed: %v", i+1, err)
		}
	}

	xpBefore, _ := st.GetProgress(store.DemoUserID)

	_, err := svc.ConsumeSpin(store.DemoUserID)
	if !errors.Is(err, ErrNoSpinsRemaining) {
		t.Fatalf("expected ErrNoSpinsRemaining, got %v", err)
	}

	// A rejected spin must not change anything
	xpAfter, _ := st.GetProgress(store.DemoUserID)
	if xpAfter.TotalXP != xpBefore.TotalXP {
		t.Errorf("rejected spin changed XP: %d -> %d", xpBefore.TotalXP, xpAfter.TotalXP)
	}
	spins, _ := st.GetDailySpins(store.DemoUserID, today())
	if spins.SpinsUsed != models.DailySpinCap {
		t.Errorf("rejected spin changed used count: %d", spins.SpinsUsed)
	}
}

func TestRecordGameResultUpdatesStatsAndSkill(t *testing.T) {
	svc, st := newTestProgressService(t)

	before, _ := st.GetProgress(store.DemoUserID)

	result, err := svc.RecordGameResult(store.DemoUserID, "math-ninja", 80, 50)
	if err != nil {
		t.Fatalf("RecordGameResult failed: %v", err)
	}
	if result.Stats.TimesPlayed != 1 || result.Stats.BestScore != 80 || result.Stats.TotalXPEarned != 50 {
		t.Errorf("unexpected stats: %+v", result.Stats)
	}

	after, _ := st.GetProgress(store.DemoUserID)
	if after.TotalXP != before.TotalXP+50 {
		t.Errorf("expected XP %d, got %d", before.TotalXP+50, after.TotalXP)
	}
	if after.MathSkills != before.MathSkills+GameSkillIncrement {
		t.Errorf("expected math %d, got %d", before.MathSkills+GameSkillIncrement, after.MathSkills)
	}
	// Only the trained skill moves
	if after.ArtSkills != before.ArtSkills {
		t.Errorf("art skill changed: %d -> %d", before.ArtSkills, after.ArtSkills)
	}
}

func TestRecordGameResultBestScoreMonotonic(t *testing.T) {
	svc, _ := newTestProgressService(t)

	if _, err := svc.RecordGameResult(store.DemoUserID, "memory-flip", 90, 30); err != nil {
		t.Fatalf("RecordGameResult failed: %v", err)
	}
	result, err := svc.RecordGameResult(store.DemoUserID, "memory-flip", 40, 30)
	if err != nil {
		t.Fatalf("RecordGameResult failed: %v", err)
	}
	if result.Stats.BestScore != 90 {
		t.Errorf("best score regressed: got %d, want 90", result.Stats.BestScore)
	}
	if result.Stats.TimesPlayed != 2 {
		t.Errorf("expected 2 plays, got %d", result.Stats.TimesPlayed)
	}
	if result.Stats.TotalXPEarned != 60 {
		t.Errorf("expected 60 XP earned, got %d", result.Stats.TotalXPEarned)
	}
}

func TestRecordGameResultSkillClampedAt100(t *testing.T) {
	svc, st := newTestProgressService(t)

	full := 100
	if _, err := st.UpdateProgress(store.DemoUserID, store.ProgressUpdate{MathSkills: &full}); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	if _, err := svc.RecordGameResult(store.DemoUserID, "math-ninja", 50, 20); err != nil {
		t.Fatalf("RecordGameResult failed: %v", err)
	}
	after, _ := st.GetProgress(store.DemoUserID)
	if after.MathSkills != 100 {
		t.Errorf("skill exceeded cap: %d", after.MathSkills)
	}
}

func TestRecordGameResultZeroXPLeavesProgressAlone(t *testing.T) {
	svc, st := newTestProgressService(t)

	before, _ := st.GetProgress(store.DemoUserID)
	if _, err := svc.RecordGameResult(store.DemoUserID, "math-ninja", 10, 0); err != nil {
		t.Fatalf("RecordGameResult failed: %v", err)
	}
	after, _ := st.GetProgress(store.DemoUserID)
	if after.TotalXP != before.TotalXP || after.MathSkills != before.MathSkills {
		t.Error("zero-XP play must not change progress")
	}
}

func TestContinueLearning(t *testing.T) {
	svc, st := newTestProgressService(t)

	before, _ := st.GetProgress(store.DemoUserID)

	progress, err := svc.ContinueLearning(store.DemoUserID)
	if err != nil {
		t.Fatalf("ContinueLearning failed: %v", err)
	}
	if progress.TotalXP != before.TotalXP+ContinueXPReward {
		t.Errorf("expected XP %d, got %d", before.TotalXP+ContinueXPReward, progress.TotalXP)
	}
	for _, skill := range models.AllSkills {
		want := models.ClampSkill(before.SkillLevel(skill) + ContinueSkillIncrement)
		if got := progress.SkillLevel(skill); got != want {
			t.Errorf("skill %s: got %d, want %d", skill, got, want)
		}
	}
	if progress.LastActiveDate == nil {
		t.Error("expected last active date to be stamped")
	}
}

func TestContinueLearningWithoutProgress(t *testing.T) {
	svc := NewProgressService(store.NewMemoryStore())

	_, err := svc.ContinueLearning("nobody")
	if !errors.Is(err, ErrProgressNotFound) {
		t.Errorf("expected ErrProgressNotFound, got %v", err)
	}
}

func TestSnapshotBundlesEverything(t *testing.T) {
	svc, _ := newTestProgressService(t)

	snapshot, err := svc.GetSnapshot(store.DemoUserID)
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if snapshot.User == nil || snapshot.User.ID != store.DemoUserID {
		t.Error("expected demo user in snapshot")
	}
	if snapshot.Progress == nil || snapshot.Progress.TotalXP != 1247 {
		t.Error("expected seeded progress in snapshot")
	}
	if snapshot.Spins == nil || snapshot.Spins.SpinsRemaining != models.DailySpinCap {
		t.Error("expected fresh spin allowance in snapshot")
	}
	if len(snapshot.UnlockedGames) != len(games.StarterGames) {
		t.Errorf("expected %d unlocks, got %d", len(games.StarterGames), len(snapshot.UnlockedGames))
	}
	if len(snapshot.Achievements) == 0 {
		t.Error("expected seeded achievements in snapshot")
	}
}
