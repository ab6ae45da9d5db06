package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/roadmaphq/roadmap/internal/db"
	"github.com/roadmaphq/roadmap/internal/model"
	"github.com/roadmaphq/roadmap/internal/repository"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	users  repository.UserRepository
	goals  *GoalService
	wizard *WizardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init("sqlite", conn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	users := repository.NewUserRepository(database)
	goals := NewGoalService(repository.NewGoalRepository(database), NewNotifier())

	return &testEnv{
		users:  users,
		goals:  goals,
		wizard: NewWizardService(users, goals),
	}
}

func (e *testEnv) createUser(t *testing.T) *model.User {
	t.Helper()

	now := time.Now()
	user := &model.User{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.users.Create(user))
	return user
}

func (e *testEnv) categorizeAll(t *testing.T, userID, horizon string) {
	t.Helper()

	goals, err := e.goals.Uncategorized(userID)
	require.NoError(t, err)
	for _, g := range goals {
		h := horizon
		require.NoError(t, e.goals.UpdateHorizon(userID, g.ID, &h))
	}
}
