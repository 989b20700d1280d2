package domain

import "time"

// Event is the registration campaign participants sign up for.
// Exactly one event is active at any time; the public form only
// serves the active one.
type Event struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	RevenueGoal float64   `json:"revenue_goal"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
