package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/roadmaphq/roadmap/internal/app"
	"github.com/roadmaphq/roadmap/internal/config"
	"github.com/roadmaphq/roadmap/internal/db"
	"github.com/roadmaphq/roadmap/internal/repository"
	"github.com/roadmaphq/roadmap/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newTestServer(t *testing.T) *apiClient {
	t.Helper()

	conn := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init("sqlite", conn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	cfg := &config.Config{
		AppName:   "Roadmap",
		AppEnv:    "development",
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}

	userRepository := repository.NewUserRepository(database)
	notifier := service.NewNotifier()
	goalService := service.NewGoalService(repository.NewGoalRepository(database), notifier)

	a := &app.App{
		Cfg:               cfg,
		DB:                database,
		AuthService:       service.NewAuthService(userRepository, cfg.JWTSecret, false, cfg.JWTExpiry),
		UserService:       service.NewUserService(userRepository),
		GoalService:       goalService,
		WizardService:     service.NewWizardService(userRepository, goalService),
		SuggestionService: service.NewSuggestionService(staticGenerator("- Step one\n- Step two")),
	}

	server := httptest.NewServer(SetupRoutes(a))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &apiClient{
		t:      t,
		base:   server.URL,
		client: &http.Client{Jar: jar},
	}
}

type staticGenerator string

func (s staticGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	return string(s), nil
}

func (c *apiClient) do(method, path string, body any) (*http.Response, map[string]any) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestRequireAuth(t *testing.T) {
	c := newTestServer(t)

	resp, _ := c.do(http.MethodGet, "/app/state", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWizardFlowOverHTTP(t *testing.T) {
	c := newTestServer(t)

	// Anonymous sign-in creates a fresh profile at the welcome step.
	resp, body := c.do(http.MethodPost, "/auth/signin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["step"])
	assert.Empty(t, body["displayName"])

	resp, body = c.do(http.MethodPost, "/app/welcome", map[string]string{"displayName": "Ada"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ada", body["displayName"])
	assert.Equal(t, float64(1), body["step"])

	resp, body = c.do(http.MethodPost, "/app/brainstorm", map[string]string{"text": "Learn Rust\nRun a marathon"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["step"])

	// Collect the goal ids from the state snapshot.
	resp, body = c.do(http.MethodGet, "/app/state", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	goals := body["goals"].([]any)
	require.Len(t, goals, 2)

	var ids []string
	for _, g := range goals {
		goal := g.(map[string]any)
		assert.Nil(t, goal["timeHorizon"])
		ids = append(ids, goal["id"].(string))
	}

	// Prioritize before categorizing is rejected.
	resp, _ = c.do(http.MethodPost, "/app/step", map[string]string{"to": "prioritize"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	for _, id := range ids {
		resp, _ = c.do(http.MethodPost, fmt.Sprintf("/app/goals/%s/horizon", id), map[string]string{"timeHorizon": "1 Year"})
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	}

	resp, body = c.do(http.MethodPost, "/app/step", map[string]string{"to": "prioritize"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["step"])

	// The checkpoint prompt is required.
	finalize := map[string]any{
		"selection": map[string][]string{"1 Year": ids},
		"confirmed": false,
	}
	resp, _ = c.do(http.MethodPost, "/app/prioritize/finalize", finalize)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	finalize["confirmed"] = true
	resp, body = c.do(http.MethodPost, "/app/prioritize/finalize", finalize)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(4), body["step"])

	resp, body = c.do(http.MethodGet, "/app/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	topGoals := body["topGoals"].([]any)
	assert.Len(t, topGoals, 2)

	// Detail editing and suggestions on a top goal.
	details := map[string]string{"color": "orange", "description": "Crab-powered systems code"}
	resp, _ = c.do(http.MethodPut, fmt.Sprintf("/app/goals/%s/details", ids[0]), details)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = c.do(http.MethodPost, fmt.Sprintf("/app/goals/%s/suggestions", ids[0]), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	suggestions := body["suggestions"].([]any)
	assert.Equal(t, []any{"Step one", "Step two"}, suggestions)
}

func TestSignInKeepsExistingSession(t *testing.T) {
	c := newTestServer(t)

	_, first := c.do(http.MethodPost, "/auth/signin", nil)
	_, second := c.do(http.MethodPost, "/auth/signin", nil)
	assert.Equal(t, first["userId"], second["userId"])

	// Logout clears the cookie; the next sign-in mints a new identity.
	resp, _ := c.do(http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, third := c.do(http.MethodPost, "/auth/signin", nil)
	assert.NotEqual(t, first["userId"], third["userId"])
}
