package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/roadmaphq/roadmap/internal/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	SetStep(userID string, step int) error
	CompleteWelcome(userID, displayName string, step int) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (id, display_name, step, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, user.ID, user.DisplayName, user.Step, user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) SetStep(userID string, step int) error {
	query := `UPDATE users SET step = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, step, time.Now(), userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// CompleteWelcome writes the display name and the new step as one
// statement so a crash cannot leave a named user stuck on the welcome
// screen or an unnamed user past it.
func (r *userRepository) CompleteWelcome(userID, displayName string, step int) error {
	query := `UPDATE users SET display_name = $1, step = $2, updated_at = $3 WHERE id = $4`

	result, err := r.db.Exec(query, displayName, step, time.Now(), userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
