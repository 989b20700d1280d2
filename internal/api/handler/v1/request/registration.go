package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// SubmitRegistrationRequest carries the public form fields. The receipt
// file arrives as a separate multipart part.
type SubmitRegistrationRequest struct {
	FirstName    string `form:"first_name"`
	LastName     string `form:"last_name"`
	Email        string `form:"email"`
	Phone        string `form:"phone"`
	HealthEntity string `form:"health_entity"`
	Region       string `form:"region"`
	Role         string `form:"role"`
	Lodging      string `form:"lodging"`
}

func (req *SubmitRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.LastName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Required, validation.Length(7, 20)),
		validation.Field(&req.HealthEntity, validation.Required),
		validation.Field(&req.Region, validation.Required),
		validation.Field(&req.Role, validation.Required),
		validation.Field(&req.Lodging, validation.Required, validation.In("si", "no")),
	)
}

func (req *SubmitRegistrationRequest) WantsLodging() bool {
	return req.Lodging == "si"
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("approved", "rejected")),
	)
}

type UpdateAmountPaidRequest struct {
	AmountPaid float64 `json:"amount_paid"`
}

func (req *UpdateAmountPaidRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AmountPaid, validation.Min(0.0)),
	)
}
