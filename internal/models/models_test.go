package models

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "future expiration",
			expiresAt: time.Now().Add(1 * time.Hour),
			want:      false,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-1 * time.Second),
			want:      true,
		},
		{
			name:      "expired yesterday",
			expiresAt: time.Now().Add(-24 * time.Hour),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{
				ID:        "test-session",
				UserID:    "user-1",
				ExpiresAt: tt.expiresAt,
				CreatedAt: time.Now().Add(-1 * time.Hour),
			}
			result := session.IsExpired()
			if result != tt.want {
				t.Errorf("Session.IsExpired() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestRemainingSpins(t *testing.T) {
	tests := []struct {
		name string
		used int
		want int
	}{
		{name: "fresh allowance", used: 0, want: 3},
		{name: "one used", used: 1, want: 2},
		{name: "all used", used: 3, want: 0},
		{name: "over cap never negative", used: 5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemainingSpins(tt.used); got != tt.want {
				t.Errorf("RemainingSpins(%d) = %d, want %d", tt.used, got, tt.want)
			}
		})
	}
}

func TestClampSkill(t *testing.T) {
	tests := []struct {
		name  string
		value int
		want  int
	}{
		{name: "within range", value: 50, want: 50},
		{name: "at upper bound", value: 100, want: 100},
		{name: "above upper bound", value: 105, want: 100},
		{name: "below lower bound", value: -3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampSkill(tt.value); got != tt.want {
				t.Errorf("ClampSkill(%d) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestProgressSkillLevel(t *testing.T) {
	progress := Progress{
		MathSkills:     78,
		MemorySkills:   71,
		ProblemSolving: 82,
	}

	if got := progress.SkillLevel(SkillMath); got != 78 {
		t.Errorf("SkillLevel(math) = %d, want 78", got)
	}
	if got := progress.SkillLevel(SkillMemory); got != 71 {
		t.Errorf("SkillLevel(memory) = %d, want 71", got)
	}
	if got := progress.SkillLevel("unknown"); got != 0 {
		t.Errorf("SkillLevel(unknown) = %d, want 0", got)
	}
}
