package domain

import "time"

type DiscountMethod string

const (
	DiscountPercentage DiscountMethod = "percentage"
	DiscountFixed      DiscountMethod = "fixed"
	DiscountNone       DiscountMethod = "none"
)

// RoleProfile is a participant category (bishop, seminarian, lay person...)
// carrying its own discount rule. ActiveMethod is the single authority for
// how the discount fields are interpreted; when it is DiscountNone the
// stored percentage/fixed values are ignored entirely.
type RoleProfile struct {
	ID                  uint           `json:"id"`
	EventID             uint           `json:"event_id"`
	Name                string         `json:"name"`
	ValueKey            string         `json:"value_key"`
	ActiveMethod        DiscountMethod `json:"active_method"`
	DiscountPercentage  float64        `json:"discount_percentage"`
	DiscountFixedAmount float64        `json:"discount_fixed_amount"`
	Capacity            *int           `json:"capacity,omitempty"`
	Color               string         `json:"color,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}
