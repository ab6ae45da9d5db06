package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

var (
	ErrSuggestionInFlight = errors.New("a suggestion request for this goal is already running")
)

const (
	// PlaceholderNoSuggestions is returned when the model answers with
	// no usable candidates.
	PlaceholderNoSuggestions = "Sorry, the AI couldn't generate suggestions at this time. Please try again."
	// PlaceholderUnavailable is returned on transport or decode failure.
	PlaceholderUnavailable = "There was an error connecting to the AI assistant. Please check your connection."

	promptTemplate = `My main goal is %q. Based on this goal, break it down into 5 to 7 smaller, actionable steps a person can take. These steps should be specific and clear. The steps should be short, like a to-do list item.`
)

// TextGenerator produces free text for a prompt. Satisfied by
// suggest.Client.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// SuggestionService turns a goal title into a list of action-step
// strings. Output is advisory: displayed to the user, never persisted.
// Failures never surface as errors, only as placeholder strings.
// Overlapping requests for the same goal are rejected rather than
// racing; different goals may run concurrently.
type SuggestionService struct {
	generator TextGenerator

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewSuggestionService(generator TextGenerator) *SuggestionService {
	return &SuggestionService{
		generator: generator,
		inFlight:  make(map[string]bool),
	}
}

// Suggestions asks the model for action steps toward the goal title.
// goalID keys the in-flight guard.
func (s *SuggestionService) Suggestions(ctx context.Context, goalID, goalTitle string) ([]string, error) {
	s.mu.Lock()
	if s.inFlight[goalID] {
		s.mu.Unlock()
		return nil, ErrSuggestionInFlight
	}
	s.inFlight[goalID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, goalID)
		s.mu.Unlock()
	}()

	prompt := fmt.Sprintf(promptTemplate, goalTitle)

	text, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		slog.Error("suggestion request failed", "error", err, "goal_id", goalID)
		return []string{PlaceholderUnavailable}, nil
	}

	suggestions := ParseSuggestions(text)
	if len(suggestions) == 0 {
		return []string{PlaceholderNoSuggestions}, nil
	}

	return suggestions, nil
}

// ParseSuggestions splits model output into step strings: one per line,
// leading "-" or "*" bullet stripped, whitespace trimmed, empties
// dropped.
func ParseSuggestions(text string) []string {
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "-")
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}
