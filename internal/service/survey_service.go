package service

import (
	"errors"
	"fmt"
	"strings"

	"magilearn/internal/models"
	"magilearn/internal/store"
	"magilearn/internal/validation"
)

// ErrUserNotFound is returned when an operation targets a missing account
var ErrUserNotFound = errors.New("user not found")

// Accepted survey enum values
var (
	specialNeeds   = []string{"autism", "adhd", "dyslexia", "physical", "other", "none"}
	learningStyles = []string{"visual", "auditory", "kinesthetic"}
)

// SurveyService validates learning-profile survey submissions and applies
// them to the user's account
type SurveyService struct {
	store store.Store
}

// NewSurveyService creates a survey service over the given store
func NewSurveyService(s store.Store) *SurveyService {
	return &SurveyService{store: s}
}

// ValidateSurvey checks every field of a submission and reports all
// problems at once
func ValidateSurvey(data *models.SurveyData) error {
	var errs validation.Errors

	if strings.TrimSpace(data.Name) == "" {
		errs.Add("name", "name is required")
	}
	if data.Age < 6 || data.Age > 18 {
		errs.Add("age", "age must be between 6 and 18")
	}
	if strings.TrimSpace(data.Class) == "" {
		errs.Add("class", "class is required")
	}
	if !contains(specialNeeds, data.SpecialNeed) {
		errs.Add("specialNeed", "specialNeed must be one of: "+strings.Join(specialNeeds, ", "))
	}
	if !contains(learningStyles, data.LearningStyle) {
		errs.Add("learningStyle", "learningStyle must be one of: "+strings.Join(learningStyles, ", "))
	}
	if len(data.Subjects) == 0 {
		errs.Add("subjects", "at least one subject is required")
	}

	return errs.OrNil()
}

// SubmitSurvey validates a submission and merges it into the user's
// account. A rejected survey changes nothing.
func (s *SurveyService) SubmitSurvey(userID string, data *models.SurveyData) (*models.User, error) {
	if err := ValidateSurvey(data); err != nil {
		return nil, err
	}

	needs := data.AccessibilityNeeds
	if needs == nil {
		needs = []string{}
	}

	user, err := s.store.UpdateUser(userID, store.UserUpdate{
		Name:               &data.Name,
		Age:                &data.Age,
		Class:              &data.Class,
		SpecialNeed:        &data.SpecialNeed,
		LearningStyle:      &data.LearningStyle,
		Subjects:           &data.Subjects,
		CurrentMood:        &data.CurrentMood,
		AccessibilityNeeds: &needs,
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply survey: %w", err)
	}
	return user, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
