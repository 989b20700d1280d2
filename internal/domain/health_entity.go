package domain

// HealthEntity is a global lookup row (EPS / health insurance provider)
// registrants pick from; it is not scoped to an event.
type HealthEntity struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
