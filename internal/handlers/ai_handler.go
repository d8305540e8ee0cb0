package handlers

import (
	"errors"
	"log"
	"net/http"

	"magilearn/internal/service"
	"magilearn/internal/store"
)

// AIHandler serves the AI-powered recommendation and analysis endpoints
type AIHandler struct {
	aiService       *service.AIService
	progressService *service.ProgressService
	store           store.Store
}

// NewAIHandler creates a new AI handler
func NewAIHandler(aiService *service.AIService, progressService *service.ProgressService, s store.Store) *AIHandler {
	return &AIHandler{
		aiService:       aiService,
		progressService: progressService,
		store:           s,
	}
}

// Recommendations suggests learning activities for today
func (h *AIHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	progress, err := h.progressService.GetProgress(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			writeError(w, http.StatusNotFound, "User data not found")
			return
		}
		log.Printf("AI recommendations error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get recommendations")
		return
	}

	recommendations := h.aiService.PersonalizedRecommendations(r.Context(), user, progress)
	writeJSON(w, http.StatusOK, map[string][]string{"recommendations": recommendations})
}

// AnalyzeProgress regenerates the user's AI learning profile from their
// latest progress and play history, and caches it on the account
func (h *AIHandler) AnalyzeProgress(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	progress, err := h.progressService.GetProgress(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			writeError(w, http.StatusNotFound, "User data not found")
			return
		}
		log.Printf("AI analysis error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to analyze progress")
		return
	}

	stats, err := h.store.ListGameStats(user.ID)
	if err != nil {
		log.Printf("AI analysis error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to analyze progress")
		return
	}

	profile := h.aiService.GenerateLearningProfile(r.Context(), user, progress, stats)
	if _, err := h.store.UpdateUser(user.ID, store.UserUpdate{LearningProfile: profile}); err != nil {
		log.Printf("AI analysis error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to analyze progress")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"profile": profile})
}

// AdaptDifficulty recommends a difficulty adjustment from one play session
func (h *AIHandler) AdaptDifficulty(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		GameID      string                  `json:"gameId"`
		Performance service.GamePerformance `json:"performance"`
	}
	if err := decodeJSON(r, &req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	advice := h.aiService.AdaptDifficulty(r.Context(), req.GameID, req.Performance)
	writeJSON(w, http.StatusOK, advice)
}
