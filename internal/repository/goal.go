package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/roadmaphq/roadmap/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	ByID(userID, goalID string) (*model.Goal, error)
	Goals(userID string) ([]*model.Goal, error)
	CreateBatch(goals []*model.Goal) error
	UpdateHorizon(userID, goalID string, horizon *string) error
	UpdateDetails(userID, goalID string, details model.GoalDetails) error
	SetTopGoals(userID string, mark, clear []string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) Goals(userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at ASC, id ASC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// CreateBatch inserts all goals inside one transaction so a partial
// failure never persists only some of a brainstorm batch.
func (r *goalRepository) CreateBatch(goals []*model.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO goals (id, user_id, title, time_horizon, is_top_goal, details, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, goal := range goals {
		_, err = tx.Exec(query,
			goal.ID,
			goal.UserID,
			goal.Title,
			goal.TimeHorizon,
			goal.IsTopGoal,
			goal.Details,
			goal.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert goal: %w", err)
		}
	}

	return tx.Commit()
}

func (r *goalRepository) UpdateHorizon(userID, goalID string, horizon *string) error {
	query := `UPDATE goals SET time_horizon = $1 WHERE id = $2 AND user_id = $3`

	result, err := r.db.Exec(query, horizon, goalID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) UpdateDetails(userID, goalID string, details model.GoalDetails) error {
	query := `UPDATE goals SET details = $1 WHERE id = $2 AND user_id = $3`

	result, err := r.db.Exec(query, details, goalID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// SetTopGoals flips is_top_goal for the given ids inside one
// transaction: mark gains the flag, clear loses it. Callers pass only
// the ids whose flag actually changes.
func (r *goalRepository) SetTopGoals(userID string, mark, clear []string) error {
	if len(mark) == 0 && len(clear) == 0 {
		return nil
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE goals SET is_top_goal = $1 WHERE id = $2 AND user_id = $3`

	for _, id := range mark {
		err = setTopGoal(tx, query, true, id, userID)
		if err != nil {
			return err
		}
	}
	for _, id := range clear {
		err = setTopGoal(tx, query, false, id, userID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func setTopGoal(tx *sqlx.Tx, query string, top bool, goalID, userID string) error {
	result, err := tx.Exec(query, top, goalID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
