package domain

import "time"

type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "pending"
	StatusApproved RegistrationStatus = "approved"
	StatusRejected RegistrationStatus = "rejected"
)

// Registration is one participant's submitted, priced, status-tracked
// sign-up. Every field except Status and AmountPaid is immutable after
// creation. AgreedPrice is the total resolved at submission time and is
// never recomputed, whatever happens to the pricing configuration later.
type Registration struct {
	ID           string             `json:"id"`
	EventID      uint               `json:"event_id"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	HealthEntity string             `json:"health_entity"`
	RegionName   string             `json:"region"`
	RoleKey      string             `json:"role"`
	WantsLodging bool               `json:"wants_lodging"`
	ReceiptURL   string             `json:"receipt_url"`
	AgreedPrice  float64            `json:"agreed_price"`
	AmountPaid   *float64           `json:"amount_paid,omitempty"`
	Status       RegistrationStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
