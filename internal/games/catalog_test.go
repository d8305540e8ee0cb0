package games

import (
	"testing"

	"magilearn/internal/models"
)

func TestCatalogIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, g := range Catalog {
		if seen[g.ID] {
			t.Errorf("duplicate game id in catalog: %s", g.ID)
		}
		seen[g.ID] = true
	}
}

func TestStarterAndLockablePoolsAreInCatalog(t *testing.T) {
	for _, id := range StarterGames {
		if _, ok := Find(id); !ok {
			t.Errorf("starter game %s not in catalog", id)
		}
	}
	for _, id := range LockablePool {
		if _, ok := Find(id); !ok {
			t.Errorf("lockable game %s not in catalog", id)
		}
	}
}

func TestStarterGamesAreNotLockable(t *testing.T) {
	lockable := make(map[string]bool)
	for _, id := range LockablePool {
		lockable[id] = true
	}
	for _, id := range StarterGames {
		if lockable[id] {
			t.Errorf("game %s is both a starter game and in the lockable pool", id)
		}
	}
}

func TestLockablePoolSize(t *testing.T) {
	if len(LockablePool) != 8 {
		t.Errorf("lockable pool has %d games, want 8", len(LockablePool))
	}
}

func TestSkillForGame(t *testing.T) {
	tests := []struct {
		gameID string
		skill  string
		known  bool
	}{
		{gameID: "math-ninja", skill: models.SkillMath, known: true},
		{gameID: "number-crunch", skill: models.SkillMath, known: true},
		{gameID: "memory-flip", skill: models.SkillMemory, known: true},
		{gameID: "puzzle-portal", skill: models.SkillProblemSolving, known: true},
		{gameID: "word-builder", skill: models.SkillLanguage, known: true},
		{gameID: "code-runner", skill: models.SkillCoding, known: true},
		{gameID: "color-match", skill: models.SkillArt, known: true},
		{gameID: "mystery-game", known: false},
	}

	for _, tt := range tests {
		t.Run(tt.gameID, func(t *testing.T) {
			skill, ok := SkillForGame(tt.gameID)
			if ok != tt.known {
				t.Fatalf("SkillForGame(%s) known = %v, want %v", tt.gameID, ok, tt.known)
			}
			if ok && skill != tt.skill {
				t.Errorf("SkillForGame(%s) = %s, want %s", tt.gameID, skill, tt.skill)
			}
		})
	}
}

func TestEveryLockableGameTrainsASkill(t *testing.T) {
	for _, id := range LockablePool {
		if _, ok := SkillForGame(id); !ok {
			t.Errorf("lockable game %s has no skill mapping", id)
		}
	}
}
