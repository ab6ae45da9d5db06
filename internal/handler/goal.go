package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/roadmaphq/roadmap/internal/ctxkeys"
	"github.com/roadmaphq/roadmap/internal/model"
	"github.com/roadmaphq/roadmap/internal/repository"
	"github.com/roadmaphq/roadmap/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// Dashboard lists the top goals grouped by time horizon.
func (h *GoalHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	top, err := h.goalService.TopGoals(user.ID)
	if err != nil {
		slog.Error("failed to load top goals", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	byHorizon := make(map[string][]goalResponse, len(model.TimeHorizons))
	for _, horizon := range model.TimeHorizons {
		byHorizon[horizon] = []goalResponse{}
	}
	for _, g := range top {
		byHorizon[g.Horizon()] = append(byHorizon[g.Horizon()], toGoalResponse(g))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"topGoals":  toGoalResponses(top),
		"byHorizon": byHorizon,
	})
}

func (h *GoalHandler) GoalDetail(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, toGoalResponse(goal))
}

type horizonRequest struct {
	TimeHorizon *string `json:"timeHorizon"`
}

// UpdateHorizon assigns the goal to a time horizon. The categorize
// screen calls this on every drop; null sends the goal back to the
// uncategorized list.
func (h *GoalHandler) UpdateHorizon(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req horizonRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.goalService.UpdateHorizon(user.ID, goalID, req.TimeHorizon)
	if errors.Is(err, service.ErrInvalidHorizon) {
		writeError(w, http.StatusBadRequest, "Unknown time horizon")
		return
	}
	if errors.Is(err, repository.ErrGoalNotFound) {
		writeError(w, http.StatusNotFound, "Goal not found")
		return
	}
	if err != nil {
		slog.Error("failed to update horizon", "error", err, "user_id", user.ID, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "Failed to update goal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateDetails replaces the goal's details wholesale.
func (h *GoalHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var details model.GoalDetails
	if !decodeJSON(w, r, &details) {
		return
	}

	err := h.goalService.UpdateDetails(user.ID, goalID, details)
	if errors.Is(err, repository.ErrGoalNotFound) {
		writeError(w, http.StatusNotFound, "Goal not found")
		return
	}
	if err != nil {
		slog.Error("failed to update details", "error", err, "user_id", user.ID, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "Failed to save details")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
