package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roadmaphq/roadmap/internal/model"
	"github.com/roadmaphq/roadmap/internal/repository"
	"github.com/roadmaphq/roadmap/internal/wizard"
)

var (
	ErrNameRequired         = errors.New("display name is required")
	ErrInvalidTransition    = errors.New("transition not permitted from the current step")
	ErrStepNotReady         = errors.New("current step is not complete")
	ErrConfirmationRequired = errors.New("finalizing top goals requires confirmation")
)

// WizardService drives the user through the five phases. The step is
// persisted before the new state is reported back, so a reload always
// resumes exactly where the user left off.
type WizardService struct {
	users repository.UserRepository
	goals *GoalService
}

func NewWizardService(users repository.UserRepository, goals *GoalService) *WizardService {
	return &WizardService{
		users: users,
		goals: goals,
	}
}

// Step returns the user's current wizard step.
func (s *WizardService) Step(user *model.User) wizard.Step {
	return wizard.FromInt(user.Step)
}

// CompleteWelcome stores the display name and moves the user to the
// brainstorm phase as one write.
func (s *WizardService) CompleteWelcome(user *model.User, displayName string) (wizard.Step, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return s.Step(user), ErrNameRequired
	}

	from := s.Step(user)
	if !wizard.CanTransition(from, wizard.StepBrainstorm) {
		return from, ErrInvalidTransition
	}

	err := s.users.CompleteWelcome(user.ID, displayName, int(wizard.StepBrainstorm))
	if err != nil {
		return from, fmt.Errorf("failed to complete welcome: %w", err)
	}

	user.DisplayName = displayName
	user.Step = int(wizard.StepBrainstorm)
	return wizard.StepBrainstorm, nil
}

// FinishBrainstorm parses the brainstorm text into one goal per
// non-empty line, creates the new ones, then advances to categorize.
func (s *WizardService) FinishBrainstorm(user *model.User, rawText string) (wizard.Step, error) {
	from := s.Step(user)
	if !wizard.CanTransition(from, wizard.StepCategorize) {
		return from, ErrInvalidTransition
	}

	titles := ParseGoalLines(rawText)
	if len(titles) == 0 {
		return from, ErrNoTitles
	}

	_, err := s.goals.BulkCreate(user.ID, titles)
	if err != nil {
		return from, err
	}

	err = s.users.SetStep(user.ID, int(wizard.StepCategorize))
	if err != nil {
		return from, fmt.Errorf("failed to advance step: %w", err)
	}

	user.Step = int(wizard.StepCategorize)
	return wizard.StepCategorize, nil
}

// Advance moves the user to a requested step. Backward moves are always
// permitted; the only guarded forward move here is entering prioritize,
// which requires every goal to be categorized. Entering the dashboard
// goes through Finalize instead.
func (s *WizardService) Advance(user *model.User, to wizard.Step) (wizard.Step, error) {
	from := s.Step(user)
	if !to.Valid() || !wizard.CanTransition(from, to) {
		return from, ErrInvalidTransition
	}

	if !wizard.Backward(from, to) {
		switch to {
		case wizard.StepPrioritize:
			uncategorized, err := s.goals.Uncategorized(user.ID)
			if err != nil {
				return from, err
			}
			if len(uncategorized) > 0 {
				return from, ErrStepNotReady
			}
		default:
			// Welcome, brainstorm and dashboard entries have dedicated
			// operations carrying their own writes.
			return from, ErrInvalidTransition
		}
	}

	err := s.users.SetStep(user.ID, int(to))
	if err != nil {
		return from, fmt.Errorf("failed to advance step: %w", err)
	}

	user.Step = int(to)
	return to, nil
}

// Finalize commits the top-goal selection and enters the dashboard.
// The confirmed flag is the checkpoint prompt: without it nothing is
// written. The selection must be ready (min(4, available) picks per
// horizon).
func (s *WizardService) Finalize(user *model.User, selection wizard.Selection, confirmed bool) (wizard.Step, error) {
	from := s.Step(user)
	if !wizard.CanTransition(from, wizard.StepDashboard) {
		return from, ErrInvalidTransition
	}

	if !confirmed {
		return from, ErrConfirmationRequired
	}

	available, err := s.goals.AvailableByHorizon(user.ID)
	if err != nil {
		return from, err
	}
	if !wizard.Ready(selection, available) {
		return from, ErrStepNotReady
	}

	_, err = s.goals.FinalizeTopGoals(user.ID, selection)
	if err != nil {
		return from, err
	}

	err = s.users.SetStep(user.ID, int(wizard.StepDashboard))
	if err != nil {
		return from, fmt.Errorf("failed to advance step: %w", err)
	}

	user.Step = int(wizard.StepDashboard)
	return wizard.StepDashboard, nil
}

// ParseGoalLines splits brainstorm text into goal titles: one per
// non-empty line, whitespace trimmed.
func ParseGoalLines(rawText string) []string {
	var titles []string
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			titles = append(titles, line)
		}
	}
	return titles
}
