package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/roadmaphq/roadmap/internal/ctxkeys"
	"github.com/roadmaphq/roadmap/internal/service"
	"github.com/roadmaphq/roadmap/internal/wizard"
)

type WizardHandler struct {
	wizardService *service.WizardService
	goalService   *service.GoalService
}

func NewWizardHandler(wizardService *service.WizardService, goalService *service.GoalService) *WizardHandler {
	return &WizardHandler{
		wizardService: wizardService,
		goalService:   goalService,
	}
}

// State returns the profile plus the full goal snapshot, everything a
// client needs to resume the wizard after a reload.
func (h *WizardHandler) State(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Goals(user.ID)
	if err != nil {
		slog.Error("failed to load goals", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to load goals")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"profile": toProfileResponse(user),
		"goals":   toGoalResponses(goals),
	})
}

type welcomeRequest struct {
	DisplayName string `json:"displayName"`
}

func (h *WizardHandler) CompleteWelcome(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req welcomeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, err := h.wizardService.CompleteWelcome(user, req.DisplayName)
	if errors.Is(err, service.ErrNameRequired) {
		writeError(w, http.StatusBadRequest, "Display name is required")
		return
	}
	if errors.Is(err, service.ErrInvalidTransition) {
		writeError(w, http.StatusConflict, "Welcome step is already complete")
		return
	}
	if err != nil {
		slog.Error("failed to complete welcome", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(user))
}

type brainstormRequest struct {
	Text string `json:"text"`
}

func (h *WizardHandler) FinishBrainstorm(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req brainstormRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, err := h.wizardService.FinishBrainstorm(user, req.Text)
	if errors.Is(err, service.ErrNoTitles) {
		writeError(w, http.StatusBadRequest, "Write down at least one goal first")
		return
	}
	if errors.Is(err, service.ErrInvalidTransition) {
		writeError(w, http.StatusConflict, "Brainstorm is not the current step")
		return
	}
	if err != nil {
		slog.Error("failed to save brainstorm", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to save goals")
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(user))
}

type stepRequest struct {
	To string `json:"to"`
}

// Advance moves to an adjacent step: back from any phase, or forward
// into prioritize once every goal is categorized.
func (h *WizardHandler) Advance(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req stepRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	to, err := wizard.ParseStep(req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown step")
		return
	}

	_, err = h.wizardService.Advance(user, to)
	if errors.Is(err, service.ErrInvalidTransition) {
		writeError(w, http.StatusConflict, "That move is not permitted from the current step")
		return
	}
	if errors.Is(err, service.ErrStepNotReady) {
		writeError(w, http.StatusConflict, "Categorize every goal before prioritizing")
		return
	}
	if err != nil {
		slog.Error("failed to advance step", "error", err, "user_id", user.ID, "to", to.String())
		writeError(w, http.StatusInternalServerError, "Failed to advance")
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(user))
}

type finalizeRequest struct {
	Selection wizard.Selection `json:"selection"`
	Confirmed bool             `json:"confirmed"`
}

// Finalize commits the top-goal selection after the checkpoint prompt
// and enters the dashboard.
func (h *WizardHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req finalizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, err := h.wizardService.Finalize(user, req.Selection, req.Confirmed)
	if errors.Is(err, service.ErrConfirmationRequired) {
		writeError(w, http.StatusBadRequest, "Confirm your selection to finalize")
		return
	}
	if errors.Is(err, service.ErrStepNotReady) {
		writeError(w, http.StatusConflict, "Select your top goals for every time frame first")
		return
	}
	if errors.Is(err, service.ErrInvalidTransition) {
		writeError(w, http.StatusConflict, "Prioritize is not the current step")
		return
	}
	if errors.Is(err, service.ErrHorizonMismatch) || errors.Is(err, service.ErrHorizonOverfull) || errors.Is(err, service.ErrInvalidHorizon) {
		writeError(w, http.StatusBadRequest, "Selection does not match your categorized goals")
		return
	}
	if err != nil {
		slog.Error("failed to finalize top goals", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to finalize")
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(user))
}
