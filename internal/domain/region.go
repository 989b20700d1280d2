package domain

import "time"

// Region is a pricing/organizational unit (a diocese in the original
// deployment). Registrations reference regions by name, and deleting a
// region leaves those references orphaned on purpose: already-created
// registrations keep their frozen price.
type Region struct {
	ID           uint      `json:"id"`
	EventID      uint      `json:"event_id"`
	Name         string    `json:"name"`
	BasePrice    float64   `json:"base_price"`
	LodgingPrice float64   `json:"lodging_price"`
	ContactEmail string    `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
