package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/roadmaphq/roadmap/internal/model"
	"github.com/roadmaphq/roadmap/internal/repository"
	"github.com/roadmaphq/roadmap/internal/wizard"
)

var (
	ErrInvalidHorizon  = errors.New("time horizon must be one of the four fixed values")
	ErrHorizonMismatch = errors.New("selected goal does not belong to that time horizon")
	ErrHorizonOverfull = errors.New("a time horizon holds more than the allowed top goals")
	ErrNoTitles        = errors.New("at least one goal title is required")
)

// GoalService owns the goal collection for each user: derived views,
// batch creation from brainstorm text, horizon assignment, top-goal
// finalization and detail edits. Every successful mutation publishes a
// fresh full snapshot through the notifier.
type GoalService struct {
	repo     repository.GoalRepository
	notifier *Notifier
}

func NewGoalService(repo repository.GoalRepository, notifier *Notifier) *GoalService {
	return &GoalService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *GoalService) Goals(userID string) ([]*model.Goal, error) {
	return s.repo.Goals(userID)
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(userID, goalID)
}

// Uncategorized returns the goals without a time horizon.
func (s *GoalService) Uncategorized(userID string) ([]*model.Goal, error) {
	goals, err := s.repo.Goals(userID)
	if err != nil {
		return nil, err
	}
	return filterGoals(goals, func(g *model.Goal) bool { return g.Uncategorized() }), nil
}

// ByHorizon returns the goals assigned to the given horizon.
func (s *GoalService) ByHorizon(userID, horizon string) ([]*model.Goal, error) {
	if !model.ValidHorizon(horizon) {
		return nil, ErrInvalidHorizon
	}
	goals, err := s.repo.Goals(userID)
	if err != nil {
		return nil, err
	}
	return filterGoals(goals, func(g *model.Goal) bool { return g.Horizon() == horizon }), nil
}

// TopGoals returns the goals marked as top goals, in horizon order.
func (s *GoalService) TopGoals(userID string) ([]*model.Goal, error) {
	goals, err := s.repo.Goals(userID)
	if err != nil {
		return nil, err
	}

	top := filterGoals(goals, func(g *model.Goal) bool { return g.IsTopGoal })

	ordered := make([]*model.Goal, 0, len(top))
	for _, horizon := range model.TimeHorizons {
		for _, g := range top {
			if g.Horizon() == horizon {
				ordered = append(ordered, g)
			}
		}
	}
	return ordered, nil
}

// BulkCreate makes one uncategorized goal per title that is not already
// present among the user's current uncategorized goals, in a single
// transaction. Dedup is by exact title match against the live
// collection, not by an operation id: re-running after a partial
// success recreates only the missing titles, and a title renamed or
// removed between calls can produce a duplicate. Accepted behavior.
func (s *GoalService) BulkCreate(userID string, titles []string) ([]*model.Goal, error) {
	existing, err := s.Uncategorized(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current goals: %w", err)
	}

	existingTitles := make(map[string]bool, len(existing))
	for _, g := range existing {
		existingTitles[g.Title] = true
	}

	now := time.Now()
	var created []*model.Goal
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" || existingTitles[title] {
			continue
		}
		existingTitles[title] = true
		created = append(created, &model.Goal{
			ID:        uuid.New().String(),
			UserID:    userID,
			Title:     title,
			CreatedAt: now,
		})
	}

	if len(created) > 0 {
		err = s.repo.CreateBatch(created)
		if err != nil {
			return nil, fmt.Errorf("failed to create goals: %w", err)
		}
		s.publishSnapshot(userID)
	}

	return created, nil
}

// UpdateHorizon assigns a goal to a time horizon, or back to the
// uncategorized pool when horizon is nil.
func (s *GoalService) UpdateHorizon(userID, goalID string, horizon *string) error {
	if horizon != nil && !model.ValidHorizon(*horizon) {
		return ErrInvalidHorizon
	}

	err := s.repo.UpdateHorizon(userID, goalID, horizon)
	if err != nil {
		return err
	}

	s.publishSnapshot(userID)
	return nil
}

// FinalizeTopGoals validates the selection against the collection and
// writes the symmetric difference against the current flags in one
// transaction. Calling it again with an unchanged selection issues no
// writes. Returns the number of goals whose flag changed.
func (s *GoalService) FinalizeTopGoals(userID string, selection wizard.Selection) (int, error) {
	goals, err := s.repo.Goals(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load goals: %w", err)
	}

	byID := make(map[string]*model.Goal, len(goals))
	for _, g := range goals {
		byID[g.ID] = g
	}

	for horizon, ids := range selection {
		if !model.ValidHorizon(horizon) {
			return 0, ErrInvalidHorizon
		}
		if len(ids) > model.MaxTopGoalsPerHorizon {
			return 0, ErrHorizonOverfull
		}
		for _, id := range ids {
			goal, ok := byID[id]
			if !ok {
				return 0, repository.ErrGoalNotFound
			}
			// A top goal must live in the horizon it was picked under.
			if goal.Horizon() != horizon {
				return 0, ErrHorizonMismatch
			}
		}
	}

	selected := selection.IDs()
	var mark, clear []string
	for _, g := range goals {
		shouldBeTop := selected[g.ID]
		if g.IsTopGoal == shouldBeTop {
			continue
		}
		if shouldBeTop {
			mark = append(mark, g.ID)
		} else {
			clear = append(clear, g.ID)
		}
	}

	if len(mark) == 0 && len(clear) == 0 {
		return 0, nil
	}

	err = s.repo.SetTopGoals(userID, mark, clear)
	if err != nil {
		return 0, fmt.Errorf("failed to finalize top goals: %w", err)
	}

	s.publishSnapshot(userID)
	return len(mark) + len(clear), nil
}

// CurrentSelection rebuilds the selection implied by the stored
// top-goal flags, used to seed the prioritize screen.
func (s *GoalService) CurrentSelection(userID string) (wizard.Selection, error) {
	goals, err := s.repo.Goals(userID)
	if err != nil {
		return nil, err
	}

	selection := wizard.Selection{}
	for _, g := range goals {
		if g.IsTopGoal && !g.Uncategorized() {
			selection[g.Horizon()] = append(selection[g.Horizon()], g.ID)
		}
	}
	return selection, nil
}

// AvailableByHorizon counts categorized goals per horizon, the input
// to the selection readiness rule.
func (s *GoalService) AvailableByHorizon(userID string) (map[string]int, error) {
	goals, err := s.repo.Goals(userID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(model.TimeHorizons))
	for _, g := range goals {
		if !g.Uncategorized() {
			counts[g.Horizon()]++
		}
	}
	return counts, nil
}

// UpdateDetails replaces the details mapping wholesale.
func (s *GoalService) UpdateDetails(userID, goalID string, details model.GoalDetails) error {
	err := s.repo.UpdateDetails(userID, goalID, details)
	if err != nil {
		return err
	}

	s.publishSnapshot(userID)
	return nil
}

// Subscribe hands out a live snapshot stream for the user's collection.
// The current snapshot is delivered immediately so consumers never
// start empty; the release func must be called on teardown.
func (s *GoalService) Subscribe(userID string) (<-chan []*model.Goal, func(), error) {
	goals, err := s.repo.Goals(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load initial snapshot: %w", err)
	}

	ch, release := s.notifier.Subscribe(userID)
	s.notifier.Publish(userID, goals)
	return ch, release, nil
}

func (s *GoalService) publishSnapshot(userID string) {
	if s.notifier.Subscribers(userID) == 0 {
		return
	}
	goals, err := s.repo.Goals(userID)
	if err != nil {
		// Subscribers keep their last-known-good snapshot.
		return
	}
	s.notifier.Publish(userID, goals)
}

func filterGoals(goals []*model.Goal, keep func(*model.Goal) bool) []*model.Goal {
	var out []*model.Goal
	for _, g := range goals {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}
