package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/roadmaphq/roadmap/internal/db"
	"github.com/roadmaphq/roadmap/internal/model"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init("sqlite", conn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func newTestUser(t *testing.T, users UserRepository, id string) *model.User {
	t.Helper()

	now := time.Now()
	user := &model.User{ID: id, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, users.Create(user))
	return user
}
