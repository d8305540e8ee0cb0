package handlers

import (
	"log"
	"net/http"

	"magilearn/internal/games"
	"magilearn/internal/service"
)

// GameHandler serves the game catalog and play sessions
type GameHandler struct {
	progressService *service.ProgressService
}

// NewGameHandler creates a new game handler
func NewGameHandler(progressService *service.ProgressService) *GameHandler {
	return &GameHandler{progressService: progressService}
}

// Catalog lists every mini-game the dashboard knows about
func (h *GameHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, games.Catalog)
}

// Play records one play session for a game
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	gameID := r.PathValue("gameId")
	if _, ok := games.Find(gameID); !ok {
		writeError(w, http.StatusNotFound, "Game not found")
		return
	}

	var req struct {
		Score    int `json:"score"`
		XPEarned int `json:"xpEarned"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.progressService.RecordGameResult(user.ID, gameID, req.Score, req.XPEarned)
	if err != nil {
		log.Printf("Play error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update game stats")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
