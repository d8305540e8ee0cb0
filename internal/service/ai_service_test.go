package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"magilearn/internal/models"
)

// stubChat returns a fixed completion or error
type stubChat struct {
	content string
	err     error
}

func (s *stubChat) CompleteJSON(ctx context.Context, system, user string, temperature float64) (string, error) {
	return s.content, s.err
}

func testUser() *models.User {
	return &models.User{
		ID:            "u1",
		Name:          "Maya",
		Age:           9,
		Class:         "4th Grade",
		LearningStyle: "visual",
		CurrentMood:   "happy",
		Subjects:      []string{"math"},
	}
}

func TestGenerateLearningProfileFromModel(t *testing.T) {
	svc := NewAIService(&stubChat{content: `{
		"strengths": ["Quick with numbers"],
		"challenges": ["Reading stamina"],
		"recommendations": ["Daily story time"],
		"adaptiveDifficulty": 7,
		"preferredContentTypes": ["visual"],
		"lastAnalyzed": "2025-06-01T00:00:00Z"
	}`})

	profile := svc.GenerateLearningProfile(context.Background(), testUser(), nil, nil)
	if profile.AdaptiveDifficulty != 7 {
		t.Errorf("expected difficulty 7, got %d", profile.AdaptiveDifficulty)
	}
	if len(profile.Strengths) != 1 || profile.Strengths[0] != "Quick with numbers" {
		t.Errorf("unexpected strengths: %v", profile.Strengths)
	}
}

func TestGenerateLearningProfileFallsBack(t *testing.T) {
	svc := NewAIService(&stubChat{err: errors.New("model unavailable")})

	profile := svc.GenerateLearningProfile(context.Background(), testUser(), nil, nil)
	if profile == nil {
		t.Fatal("expected fallback profile, got nil")
	}

	want := fallbackProfile(profile.LastAnalyzed)
	if !reflect.DeepEqual(profile, want) {
		t.Errorf("fallback mismatch:\n got %+v\nwant %+v", profile, want)
	}
	if profile.LastAnalyzed == "" {
		t.Error("expected fallback to carry an analysis timestamp")
	}
}

func TestGenerateLearningProfileFallsBackOnBadJSON(t *testing.T) {
	svc := NewAIService(&stubChat{content: "not json"})

	profile := svc.GenerateLearningProfile(context.Background(), testUser(), nil, nil)
	if profile.AdaptiveDifficulty != 5 {
		t.Errorf("expected fallback difficulty 5, got %d", profile.AdaptiveDifficulty)
	}
}

func TestPersonalizedRecommendations(t *testing.T) {
	svc := NewAIService(&stubChat{content: `{"recommendations": ["Play Number Crunch", "Paint a planet", "Write a haiku"]}`})

	recs := svc.PersonalizedRecommendations(context.Background(), testUser(), &models.Progress{})
	if len(recs) != 3 || recs[0] != "Play Number Crunch" {
		t.Errorf("unexpected recommendations: %v", recs)
	}
}

func TestPersonalizedRecommendationsFallsBack(t *testing.T) {
	svc := NewAIService(&stubChat{err: errors.New("model unavailable")})

	recs := svc.PersonalizedRecommendations(context.Background(), testUser(), nil)
	if !reflect.DeepEqual(recs, fallbackRecommendations()) {
		t.Errorf("fallback mismatch: %v", recs)
	}
}

func TestAdaptDifficulty(t *testing.T) {
	svc := NewAIService(&stubChat{content: `{"difficulty": 8, "suggestions": ["Try the timed mode"]}`})

	advice := svc.AdaptDifficulty(context.Background(), "math-ninja", GamePerformance{Score: 95, TimeSpent: 120, Mistakes: 1})
	if advice.Difficulty != 8 {
		t.Errorf("expected difficulty 8, got %d", advice.Difficulty)
	}
}

func TestAdaptDifficultyFallsBack(t *testing.T) {
	svc := NewAIService(&stubChat{err: errors.New("model unavailable")})

	advice := svc.AdaptDifficulty(context.Background(), "math-ninja", GamePerformance{})
	if !reflect.DeepEqual(advice, fallbackDifficulty()) {
		t.Errorf("fallback mismatch: %+v", advice)
	}
}
