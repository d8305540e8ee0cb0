package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"magilearn/internal/models"
)

// AIService generates learner insights from the chat model. Every method
// degrades to a fixed, age-appropriate fallback when the model is
// unreachable or returns something unusable; callers never see an error.
type AIService struct {
	client ChatClient
}

// NewAIService creates an AI service over the given chat client
func NewAIService(client ChatClient) *AIService {
	return &AIService{client: client}
}

// GamePerformance is one play session's outcome used for difficulty advice
type GamePerformance struct {
	Score     int `json:"score"`
	TimeSpent int `json:"timeSpent"`
	Mistakes  int `json:"mistakes"`
}

// DifficultyAdvice is the model's recommended difficulty adjustment
type DifficultyAdvice struct {
	Difficulty  int      `json:"difficulty"`
	Suggestions []string `json:"suggestions"`
}

// GenerateLearningProfile analyzes a learner's account, progress, and play
// history into a personalized profile
func (s *AIService) GenerateLearningProfile(ctx context.Context, user *models.User, progress *models.Progress, stats []models.GameStats) *models.LearningProfile {
	now := time.Now().UTC().Format(time.RFC3339)

	prompt := fmt.Sprintf(`Analyze this student's learning data and create a personalized AI learning profile:

Student Info:
- Name: %s
- Age: %d
- Grade: %s
- Special Needs: %s
- Learning Style: %s
- Current Mood: %s
- Favorite Subjects: %s

Learning Progress:
- Total XP: %d
- Math Skills: %d%%
- English Skills: %d%%
- Science Skills: %d%%
- Coding Skills: %d%%
- Art Skills: %d%%
- Learning Streak: %d days

Recent Activity:
- Games Played: %d
- Current Streak: %d days

Please analyze this data and provide personalized learning insights in JSON format:
{
  "strengths": ["list of 2-3 key learning strengths"],
  "challenges": ["list of 2-3 areas needing improvement"],
  "recommendations": ["list of 3-4 specific actionable recommendations"],
  "adaptiveDifficulty": number from 1-10 (recommended difficulty level),
  "preferredContentTypes": ["list of recommended content types like visual, interactive, gamified"],
  "lastAnalyzed": "%s"
}`,
		user.Name, user.Age, user.Class,
		orNone(user.SpecialNeed), user.LearningStyle, user.CurrentMood,
		subjectsLine(user.Subjects, "none specified"),
		progressXP(progress),
		skillOrZero(progress, models.SkillMath),
		skillOrZero(progress, models.SkillEnglish),
		skillOrZero(progress, models.SkillScience),
		skillOrZero(progress, models.SkillCoding),
		skillOrZero(progress, models.SkillArt),
		streakOrZero(progress),
		len(stats), streakOrZero(progress), now)

	system := "You are an expert educational AI that analyzes student learning patterns and creates personalized learning profiles. Focus on being encouraging while providing actionable insights."

	content, err := s.client.CompleteJSON(ctx, system, prompt, 0.7)
	if err != nil {
		log.Printf("AI profile analysis failed for user %s: %v", user.ID, err)
		return fallbackProfile(now)
	}

	profile := &models.LearningProfile{}
	if err := json.Unmarshal([]byte(content), profile); err != nil {
		log.Printf("AI profile response unusable for user %s: %v", user.ID, err)
		return fallbackProfile(now)
	}
	if profile.LastAnalyzed == "" {
		profile.LastAnalyzed = now
	}
	return profile
}

// PersonalizedRecommendations suggests three learning activities for today
func (s *AIService) PersonalizedRecommendations(ctx context.Context, user *models.User, progress *models.Progress) []string {
	prompt := fmt.Sprintf(`Based on this student's profile, suggest 3 specific learning activities for today:

Student: %s, Age %d, %s
Current Mood: %s
Learning Style: %s
Special Needs: %s
Favorite Subjects: %s

Recent Progress:
- Math: %d%%
- English: %d%%
- Science: %d%%
- Coding: %d%%
- Art: %d%%

Respond with JSON array of 3 specific recommendations:
["activity 1", "activity 2", "activity 3"]`,
		user.Name, user.Age, user.Class,
		user.CurrentMood, user.LearningStyle,
		orNone(user.SpecialNeed),
		subjectsLine(user.Subjects, "various"),
		skillOrZero(progress, models.SkillMath),
		skillOrZero(progress, models.SkillEnglish),
		skillOrZero(progress, models.SkillScience),
		skillOrZero(progress, models.SkillCoding),
		skillOrZero(progress, models.SkillArt))

	system := "You are an educational AI that provides personalized, age-appropriate learning recommendations. Make suggestions fun and engaging."

	content, err := s.client.CompleteJSON(ctx, system, prompt, 0.8)
	if err != nil {
		log.Printf("AI recommendations failed for user %s: %v", user.ID, err)
		return fallbackRecommendations()
	}

	var parsed struct {
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil || len(parsed.Recommendations) == 0 {
		log.Printf("AI recommendations response unusable for user %s", user.ID)
		return fallbackRecommendations()
	}
	return parsed.Recommendations
}

// AdaptDifficulty recommends a difficulty adjustment from one play session
func (s *AIService) AdaptDifficulty(ctx context.Context, gameID string, performance GamePerformance) DifficultyAdvice {
	prompt := fmt.Sprintf(`Analyze this game performance and recommend difficulty adjustment:

Game: %s
Performance:
- Score: %d
- Time Spent: %d seconds
- Mistakes: %d

Provide recommendations in JSON format:
{
  "difficulty": number from 1-10 (recommended difficulty level),
  "suggestions": ["specific suggestions for the student"]
}`, gameID, performance.Score, performance.TimeSpent, performance.Mistakes)

	system := "You are an adaptive learning AI that adjusts game difficulty based on student performance. Balance challenge with encouragement."

	content, err := s.client.CompleteJSON(ctx, system, prompt, 0.6)
	if err != nil {
		log.Printf("AI difficulty adaptation failed for game %s: %v", gameID, err)
		return fallbackDifficulty()
	}

	var advice DifficultyAdvice
	if err := json.Unmarshal([]byte(content), &advice); err != nil || advice.Difficulty == 0 {
		log.Printf("AI difficulty response unusable for game %s", gameID)
		return fallbackDifficulty()
	}
	return advice
}

func fallbackProfile(analyzedAt string) *models.LearningProfile {
	return &models.LearningProfile{
		Strengths:             []string{"Consistent learning", "Good engagement"},
		Challenges:            []string{"Continue practicing", "Try new subjects"},
		Recommendations:       []string{"Keep up daily practice", "Explore challenging content", "Mix different learning styles"},
		AdaptiveDifficulty:    5,
		PreferredContentTypes: []string{"interactive", "visual"},
		LastAnalyzed:          analyzedAt,
	}
}

func fallbackRecommendations() []string {
	return []string{
		"Try a math puzzle game to boost problem-solving skills",
		"Read a short story and discuss it with someone",
		"Create art inspired by your favorite subject",
	}
}

func fallbackDifficulty() DifficultyAdvice {
	return DifficultyAdvice{
		Difficulty:  5,
		Suggestions: []string{"Keep practicing to improve your skills!"},
	}
}

func orNone(value string) string {
	if value == "" {
		return "none"
	}
	return value
}

func subjectsLine(subjects []string, empty string) string {
	if len(subjects) == 0 {
		return empty
	}
	return strings.Join(subjects, ", ")
}

func progressXP(p *models.Progress) int {
	if p == nil {
		return 0
	}
	return p.TotalXP
}

func skillOrZero(p *models.Progress, skill string) int {
	if p == nil {
		return 0
	}
	return p.SkillLevel(skill)
}

func streakOrZero(p *models.Progress) int {
	if p == nil {
		return 0
	}
	return p.LearningStreak
}
