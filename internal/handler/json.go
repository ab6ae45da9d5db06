package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/roadmaphq/roadmap/internal/model"
	"github.com/roadmaphq/roadmap/internal/wizard"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// goalResponse is the wire form of a goal.
type goalResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	TimeHorizon *string           `json:"timeHorizon"`
	IsTopGoal   bool              `json:"isTopGoal"`
	Details     model.GoalDetails `json:"details"`
	CreatedAt   string            `json:"createdAt"`
}

func toGoalResponse(g *model.Goal) goalResponse {
	return goalResponse{
		ID:          g.ID,
		Title:       g.Title,
		TimeHorizon: g.TimeHorizon,
		IsTopGoal:   g.IsTopGoal,
		Details:     g.Details,
		CreatedAt:   g.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toGoalResponses(goals []*model.Goal) []goalResponse {
	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	return out
}

// profileResponse is the wire form of the signed-in user.
type profileResponse struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Step        int    `json:"step"`
	StepName    string `json:"stepName"`
}

func toProfileResponse(user *model.User) profileResponse {
	step := wizard.FromInt(user.Step)
	return profileResponse{
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Step:        int(step),
		StepName:    step.String(),
	}
}
