package response

import (
	"github.com/andescode/event-registration-api/internal/domain"
)

// ActiveEventResponse reports whether registration is open. Event is nil
// when it is closed.
type ActiveEventResponse struct {
	Open  bool          `json:"open"`
	Event *domain.Event `json:"event,omitempty"`
}

type RegistrationSubmittedResponse struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	AgreedPrice float64 `json:"agreed_price"`
	ReceiptURL  string  `json:"receipt_url"`
}
