package models

import "time"

// User represents a learner account in the system.
// PasswordHash is never serialized to API responses.
type User struct {
	ID                 string           `json:"id"`
	Username           string           `json:"username"`
	PasswordHash       string           `json:"-"`
	Email              string           `json:"email,omitempty"`
	Name               string           `json:"name"`
	Age                int              `json:"age"`
	Class              string           `json:"class"`
	SpecialNeed        string           `json:"specialNeed"`
	LearningStyle      string           `json:"learningStyle"`
	Interests          []string         `json:"interests"`
	Subjects           []string         `json:"subjects"`
	CurrentMood        string           `json:"currentMood"`
	AccessibilityNeeds []string         `json:"accessibilityNeeds"`
	LearningProfile    *LearningProfile `json:"aiLearningProfile,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// Session represents an authenticated session
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// LearningProfile is the AI-generated learner profile cached on the user
type LearningProfile struct {
	Strengths             []string `json:"strengths"`
	Challenges            []string `json:"challenges"`
	Recommendations       []string `json:"recommendations"`
	AdaptiveDifficulty    int      `json:"adaptiveDifficulty"`
	PreferredContentTypes []string `json:"preferredContentTypes"`
	LastAnalyzed          string   `json:"lastAnalyzed"`
}
