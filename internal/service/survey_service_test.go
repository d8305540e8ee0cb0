package service

import (
	"errors"
	"testing"

	"magilearn/internal/models"
	"magilearn/internal/store"
	"magilearn/internal/validation"
)

func validSurvey() *models.SurveyData {
	return &models.SurveyData{
		Name:          "Maya",
		Age:           9,
		Class:         "4th Grade",
		SpecialNeed:   "none",
		LearningStyle: "visual",
		Subjects:      []string{"math", "art"},
		CurrentMood:   "happy",
	}
}

func TestValidateSurvey(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.SurveyData)
		wantErr bool
	}{
		{
			name:    "valid submission",
			mutate:  func(d *models.SurveyData) {},
			wantErr: false,
		},
		{
			name:    "empty name",
			mutate:  func(d *models.SurveyData) { d.Name = "  " },
			wantErr: true,
		},
		{
			name:    "age below range",
			mutate:  func(d *models.SurveyData) { d.Age = 5 },
			wantErr: true,
		},
		{
			name:    "age above range",
			mutate:  func(d *models.SurveyData) { d.Age = 19 },
			wantErr: true,
		},
		{
			name:    "age at lower bound",
			mutate:  func(d *models.SurveyData) { d.Age = 6 },
			wantErr: false,
		},
		{
			name:    "age at upper bound",
			mutate:  func(d *models.SurveyData) { d.Age = 18 },
			wantErr: false,
		},
		{
			name:    "empty class",
			mutate:  func(d *models.SurveyData) { d.Class = "" },
			wantErr: true,
		},
		{
			name:    "unknown special need",
			mutate:  func(d *models.SurveyData) { d.SpecialNeed = "unknown" },
			wantErr: true,
		},
		{
			name:    "unknown learning style",
			mutate:  func(d *models.SurveyData) { d.LearningStyle = "osmosis" },
			wantErr: true,
		},
		{
			name:    "no subjects",
			mutate:  func(d *models.SurveyData) { d.Subjects = nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validSurvey()
			tt.mutate(data)
			err := ValidateSurvey(data)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSurvey() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSurveyReportsAllFields(t *testing.T) {
	data := validSurvey()
	data.Name = ""
	data.Age = 5
	data.Subjects = nil

	err := ValidateSurvey(data)
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation.Errors, got %T", err)
	}
	if len(errs) != 3 {
		t.Errorf("expected 3 field errors, got %d: %v", len(errs), errs)
	}
}

func TestSubmitSurveyAppliesFields(t *testing.T) {
	st := store.NewMemoryStore()
	if err := store.SeedDemo(st, "hash"); err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}
	svc := NewSurveyService(st)

	user, err := svc.SubmitSurvey(store.DemoUserID, validSurvey())
	if err != nil {
		t.Fatalf("SubmitSurvey failed: %v", err)
	}
	if user.Name != "Maya" || user.Age != 9 || user.Class != "4th Grade" {
		t.Errorf("survey fields not applied: %+v", user)
	}
	if user.AccessibilityNeeds == nil || len(user.AccessibilityNeeds) != 0 {
		t.Errorf("expected empty accessibility needs default, got %v", user.AccessibilityNeeds)
	}
	// Unrelated fields survive
	if user.Username != "Alex" {
		t.Errorf("username changed: %q", user.Username)
	}
}

func TestSubmitSurveyRejectedChangesNothing(t *testing.T) {
	st := store.NewMemoryStore()
	if err := store.SeedDemo(st, "hash"); err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}
	svc := NewSurveyService(st)

	bad := validSurvey()
	bad.Age = 5
	if _, err := svc.SubmitSurvey(store.DemoUserID, bad); err == nil {
		t.Fatal("expected validation error")
	}

	user, _ := st.GetUser(store.DemoUserID)
	if user.Name != "Alex Martinez" || user.Age != 10 {
		t.Errorf("rejected survey mutated user: %+v", user)
	}
}

func TestSubmitSurveyUnknownUser(t *testing.T) {
	svc := NewSurveyService(store.NewMemoryStore())

	_, err := svc.SubmitSurvey("nobody", validSurvey())
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
