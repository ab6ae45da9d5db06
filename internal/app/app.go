package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/roadmaphq/roadmap/internal/config"
	"github.com/roadmaphq/roadmap/internal/db"
	"github.com/roadmaphq/roadmap/internal/repository"
	"github.com/roadmaphq/roadmap/internal/service"
	"github.com/roadmaphq/roadmap/internal/suggest"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	AuthService       *service.AuthService
	UserService       *service.UserService
	GoalService       *service.GoalService
	WizardService     *service.WizardService
	SuggestionService *service.SuggestionService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)

	// Services
	notifier := service.NewNotifier()
	goalService := service.NewGoalService(goalRepository, notifier)
	wizardService := service.NewWizardService(userRepository, goalService)
	authService := service.NewAuthService(
		userRepository,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	userService := service.NewUserService(userRepository)

	suggestClient := suggest.NewClient(suggest.Config{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Timeout: cfg.SuggestTimeout,
	})
	suggestionService := service.NewSuggestionService(suggestClient)

	return &App{
		Cfg:               cfg,
		DB:                database,
		AuthService:       authService,
		UserService:       userService,
		GoalService:       goalService,
		WizardService:     wizardService,
		SuggestionService: suggestionService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
