package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/roadmaphq/roadmap/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeGoals(userID string, titles ...string) []*model.Goal {
	now := time.Now()
	goals := make([]*model.Goal, 0, len(titles))
	for _, title := range titles {
		goals = append(goals, &model.Goal{
			ID:        uuid.New().String(),
			UserID:    userID,
			Title:     title,
			CreatedAt: now,
		})
	}
	return goals
}

func TestCreateBatchAndGoals(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	repo := NewGoalRepository(database)

	newTestUser(t, users, "u1")

	batch := makeGoals("u1", "Learn Rust", "Run a marathon")
	require.NoError(t, repo.CreateBatch(batch))

	goals, err := repo.Goals("u1")
	require.NoError(t, err)
	require.Len(t, goals, 2)
	for _, g := range goals {
		assert.True(t, g.Uncategorized())
		assert.False(t, g.IsTopGoal)
		assert.Equal(t, model.GoalDetails{}, g.Details)
	}
}

func TestCreateBatchEmptyIsNoOp(t *testing.T) {
	database := newTestDB(t)
	repo := NewGoalRepository(database)

	require.NoError(t, repo.CreateBatch(nil))
}

func TestGoalsScopedToUser(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	repo := NewGoalRepository(database)

	newTestUser(t, users, "u1")
	newTestUser(t, users, "u2")

	require.NoError(t, repo.CreateBatch(makeGoals("u1", "Mine")))
	require.NoError(t, repo.CreateBatch(makeGoals("u2", "Theirs")))

	goals, err := repo.Goals("u1")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Mine", goals[0].Title)

	// Cross-user lookup misses.
	_, err = repo.ByID("u1", mustID(t, repo, "u2", "Theirs"))
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestUpdateHorizon(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	repo := NewGoalRepository(database)

	newTestUser(t, users, "u1")
	require.NoError(t, repo.CreateBatch(makeGoals("u1", "Learn Rust")))
	goalID := mustID(t, repo, "u1", "Learn Rust")

	horizon := model.Horizon1Year
	require.NoError(t, repo.UpdateHorizon("u1", goalID, &horizon))

	goal, err := repo.ByID("u1", goalID)
	require.NoError(t, err)
	assert.Equal(t, model.Horizon1Year, goal.Horizon())

	// Back to uncategorized.
	require.NoError(t, repo.UpdateHorizon("u1", goalID, nil))
	goal, err = repo.ByID("u1", goalID)
	require.NoError(t, err)
	assert.True(t, goal.Uncategorized())

	assert.ErrorIs(t, repo.UpdateHorizon("u1", "missing", &horizon), ErrGoalNotFound)
}

func TestUpdateDetailsRoundTrip(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	repo := NewGoalRepository(database)

	newTestUser(t, users, "u1")
	require.NoError(t, repo.CreateBatch(makeGoals("u1", "Buy a car")))
	goalID := mustID(t, repo, "u1", "Buy a car")

	details := model.GoalDetails{
		Color:       "red",
		Size:        "compact",
		Much:        "$30k",
		Where:       "home garage",
		Month:       "June 2027",
		Description: "A red electric compact parked at home.",
	}
	require.NoError(t, repo.UpdateDetails("u1", goalID, details))

	goal, err := repo.ByID("u1", goalID)
	require.NoError(t, err)
	assert.Equal(t, details, goal.Details)

	// Wholesale replace: saving an emptier mapping clears old fields.
	require.NoError(t, repo.UpdateDetails("u1", goalID, model.GoalDetails{Color: "blue"}))
	goal, err = repo.ByID("u1", goalID)
	require.NoError(t, err)
	assert.Equal(t, model.GoalDetails{Color: "blue"}, goal.Details)
}

func TestSetTopGoals(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	repo := NewGoalRepository(database)

	newTestUser(t, users, "u1")
	require.NoError(t, repo.CreateBatch(makeGoals("u1", "A", "B", "C")))

	idA := mustID(t, repo, "u1", "A")
	idB := mustID(t, repo, "u1", "B")

	require.NoError(t, repo.SetTopGoals("u1", []string{idA, idB}, nil))

	goals, err := repo.Goals("u1")
	require.NoError(t, err)
	top := 0
	for _, g := range goals {
		if g.IsTopGoal {
			top++
		}
	}
	assert.Equal(t, 2, top)

	require.NoError(t, repo.SetTopGoals("u1", nil, []string{idB}))
	goal, err := repo.ByID("u1", idB)
	require.NoError(t, err)
	assert.False(t, goal.IsTopGoal)

	// A missing id rolls the whole transaction back.
	err = repo.SetTopGoals("u1", []string{idB, "missing"}, nil)
	assert.ErrorIs(t, err, ErrGoalNotFound)
	goal, err = repo.ByID("u1", idB)
	require.NoError(t, err)
	assert.False(t, goal.IsTopGoal)
}

func mustID(t *testing.T, repo GoalRepository, userID, title string) string {
	t.Helper()

	goals, err := repo.Goals(userID)
	require.NoError(t, err)
	for _, g := range goals {
		if g.Title == title {
			return g.ID
		}
	}
	t.Fatalf("goal %q not found for user %s", title, userID)
	return ""
}
