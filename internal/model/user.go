package model

import (
	"time"
)

type User struct {
	ID          string    `db:"id"`
	DisplayName string    `db:"display_name"`
	Step        int       `db:"step"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// HasOnboarded reports whether the user has submitted a display name.
// An empty name means the welcome screen has not been completed.
func (u *User) HasOnboarded() bool {
	return u.DisplayName != ""
}
