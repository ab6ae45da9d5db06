package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/roadmaphq/roadmap/internal/ctxkeys"
	"github.com/roadmaphq/roadmap/internal/repository"
	"github.com/roadmaphq/roadmap/internal/service"
)

type SuggestionHandler struct {
	goalService       *service.GoalService
	suggestionService *service.SuggestionService
}

func NewSuggestionHandler(goalService *service.GoalService, suggestionService *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{
		goalService:       goalService,
		suggestionService: suggestionService,
	}
}

// Suggestions asks the AI assistant for action steps toward a goal.
// Failures arrive as placeholder strings with a 200, never as hard
// errors; only an overlapping call for the same goal is rejected.
func (h *SuggestionHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(user.ID, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		writeError(w, http.StatusNotFound, "Goal not found")
		return
	}
	if err != nil {
		slog.Error("failed to get goal", "error", err, "user_id", user.ID, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "Failed to load goal")
		return
	}

	suggestions, err := h.suggestionService.Suggestions(r.Context(), goal.ID, goal.Title)
	if errors.Is(err, service.ErrSuggestionInFlight) {
		writeError(w, http.StatusConflict, "A suggestion request for this goal is already running")
		return
	}
	if err != nil {
		slog.Error("suggestion request failed", "error", err, "user_id", user.ID, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "Failed to get suggestions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": suggestions,
	})
}
