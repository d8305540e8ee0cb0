package handlers

import (
	"errors"
	"log"
	"net/http"

	"magilearn/internal/models"
	"magilearn/internal/service"
	"magilearn/internal/validation"
)

// UserHandler serves the current user's profile, survey, progress,
// spins, unlocks, and achievements
type UserHandler struct {
	surveyService   *service.SurveyService
	progressService *service.ProgressService
}

// NewUserHandler creates a new user handler
func NewUserHandler(surveyService *service.SurveyService, progressService *service.ProgressService) *UserHandler {
	return &UserHandler{
		surveyService:   surveyService,
		progressService: progressService,
	}
}

// Current returns the resolved user for the request
func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Survey applies a learning-profile survey submission
func (h *UserHandler) Survey(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	var data models.SurveyData
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.surveyService.SubmitSurvey(user.ID, &data)
	if err != nil {
		var errs validation.Errors
		switch {
		case errors.As(err, &errs):
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid survey data", Errors: errs})
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			log.Printf("Survey error: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to update survey")
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Progress returns the user's progress record
func (h *UserHandler) Progress(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	progress, err := h.progressService.GetProgress(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			writeError(w, http.StatusNotFound, "Progress not found")
			return
		}
		log.Printf("Progress error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get progress")
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// Spins returns today's spin allowance, creating a fresh one on first use
func (h *UserHandler) Spins(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	spins, err := h.progressService.GetDailySpins(user.ID)
	if err != nil {
		log.Printf("Spins error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get spins")
		return
	}
	writeJSON(w, http.StatusOK, spins)
}

// Spin consumes one spin and returns the reward
func (h *UserHandler) Spin(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	result, err := h.progressService.ConsumeSpin(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNoSpinsRemaining) {
			writeError(w, http.StatusBadRequest, "No spins remaining")
			return
		}
		log.Printf("Spin error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to use spin")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Games lists the user's unlocked games
func (h *UserHandler) Games(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	games, err := h.progressService.GetUnlockedGames(user.ID)
	if err != nil {
		log.Printf("Games error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get games")
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// Achievements lists the user's earned achievements
func (h *UserHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	achievements, err := h.progressService.GetAchievements(user.ID)
	if err != nil {
		log.Printf("Achievements error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get achievements")
		return
	}
	writeJSON(w, http.StatusOK, achievements)
}

// ContinueLearning applies the daily practice bonus
func (h *UserHandler) ContinueLearning(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	progress, err := h.progressService.ContinueLearning(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			writeError(w, http.StatusNotFound, "Progress not found")
			return
		}
		log.Printf("Continue learning error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update progress")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"progress": progress,
		"message":  "Great progress! Keep learning!",
	})
}

// Snapshot returns the full dashboard state in one response
func (h *UserHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	snapshot, err := h.progressService.GetSnapshot(user.ID)
	if err != nil {
		log.Printf("Snapshot error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get snapshot")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
