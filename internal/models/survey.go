package models

// SurveyData is a learning-profile survey submission
type SurveyData struct {
	Name               string   `json:"name"`
	Age                int      `json:"age"`
	Class              string   `json:"class"`
	SpecialNeed        string   `json:"specialNeed"`
	LearningStyle      string   `json:"learningStyle"`
	Subjects           []string `json:"subjects"`
	CurrentMood        string   `json:"currentMood"`
	AccessibilityNeeds []string `json:"accessibilityNeeds"`
}
