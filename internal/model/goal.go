package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	Horizon1Year   = "1 Year"
	Horizon3Years  = "3 Years"
	Horizon5Years  = "5 Years"
	Horizon10Years = "10+ Years"

	// MaxTopGoalsPerHorizon caps how many goals can be marked as top
	// goals within a single time horizon.
	MaxTopGoalsPerHorizon = 4
)

// TimeHorizons lists the four fixed buckets in display order.
var TimeHorizons = []string{Horizon1Year, Horizon3Years, Horizon5Years, Horizon10Years}

// ValidHorizon reports whether label is one of the four fixed buckets.
func ValidHorizon(label string) bool {
	for _, h := range TimeHorizons {
		if h == label {
			return true
		}
	}
	return false
}

// GoalDetails holds the free-form attributes a user fills in on the
// goal detail screen. The field set is fixed; values are plain strings.
// The whole mapping is replaced on save, never merged field by field.
type GoalDetails struct {
	Color       string `json:"color"`
	Size        string `json:"size"`
	Much        string `json:"much"`
	Where       string `json:"where"`
	Month       string `json:"month"`
	Description string `json:"description"`
}

// Value serializes details to JSON for storage in a single column.
func (d GoalDetails) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *GoalDetails) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = GoalDetails{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("cannot scan %T into GoalDetails", src)
	}
}

type Goal struct {
	ID          string      `db:"id"`
	UserID      string      `db:"user_id"`
	Title       string      `db:"title"`
	TimeHorizon *string     `db:"time_horizon"` // nil = uncategorized
	IsTopGoal   bool        `db:"is_top_goal"`
	Details     GoalDetails `db:"details"`
	CreatedAt   time.Time   `db:"created_at"`
}

// Uncategorized reports whether the goal has not yet been assigned a
// time horizon.
func (g *Goal) Uncategorized() bool {
	return g.TimeHorizon == nil
}

// Horizon returns the assigned time horizon or "" when uncategorized.
func (g *Goal) Horizon() string {
	if g.TimeHorizon == nil {
		return ""
	}
	return *g.TimeHorizon
}
