package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndByID(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)

	newTestUser(t, users, "u1")

	user, err := users.ByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, 0, user.Step)
	assert.Empty(t, user.DisplayName)
	assert.False(t, user.HasOnboarded())
}

func TestUserByIDNotFound(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)

	_, err := users.ByID("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCompleteWelcome(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)

	newTestUser(t, users, "u1")

	require.NoError(t, users.CompleteWelcome("u1", "Ada", 1))

	user, err := users.ByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.DisplayName)
	assert.Equal(t, 1, user.Step)
	assert.True(t, user.HasOnboarded())
}

func TestCompleteWelcomeNotFound(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)

	err := users.CompleteWelcome("missing", "Ada", 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetStep(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)

	newTestUser(t, users, "u1")

	require.NoError(t, users.SetStep("u1", 3))

	user, err := users.ByID("u1")
	require.NoError(t, err)
	assert.Equal(t, 3, user.Step)

	assert.ErrorIs(t, users.SetStep("missing", 2), ErrUserNotFound)
}
