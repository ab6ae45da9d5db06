package routes

import (
	"net/http"

	"github.com/roadmaphq/roadmap/internal/app"
	"github.com/roadmaphq/roadmap/internal/handler"
	"github.com/roadmaphq/roadmap/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	wiz := handler.NewWizardHandler(app.WizardService, app.GoalService)
	goal := handler.NewGoalHandler(app.GoalService)
	suggestion := handler.NewSuggestionHandler(app.GoalService, app.SuggestionService)
	stream := handler.NewStreamHandler(app.GoalService)

	mux := http.NewServeMux()

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /auth/signin", rateLimiter(auth.SignIn))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// Wizard
	mux.HandleFunc("GET /app/state", middleware.RequireAuth(wiz.State))
	mux.HandleFunc("POST /app/welcome", middleware.RequireAuth(wiz.CompleteWelcome))
	mux.HandleFunc("POST /app/brainstorm", middleware.RequireAuth(wiz.FinishBrainstorm))
	mux.HandleFunc("POST /app/step", middleware.RequireAuth(wiz.Advance))
	mux.HandleFunc("POST /app/prioritize/finalize", middleware.RequireAuth(wiz.Finalize))

	// Goals
	mux.HandleFunc("GET /app/dashboard", middleware.RequireAuth(goal.Dashboard))
	mux.HandleFunc("GET /app/goals/{id}", middleware.RequireAuth(goal.GoalDetail))
	mux.HandleFunc("POST /app/goals/{id}/horizon", middleware.RequireAuth(goal.UpdateHorizon))
	mux.HandleFunc("PUT /app/goals/{id}/details", middleware.RequireAuth(goal.UpdateDetails))
	mux.HandleFunc("POST /app/goals/{id}/suggestions", middleware.RequireAuth(suggestion.Suggestions))

	// Live snapshot stream
	mux.HandleFunc("GET /app/goals/stream", middleware.RequireAuth(stream.Stream))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)

	return handler
}
