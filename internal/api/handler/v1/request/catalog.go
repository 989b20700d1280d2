package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type SaveRegionRequest struct {
	Name         string  `json:"name"`
	BasePrice    float64 `json:"base_price"`
	LodgingPrice float64 `json:"lodging_price"`
	ContactEmail string  `json:"contact_email"`
}

func (req *SaveRegionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.BasePrice, validation.Min(0.0)),
		validation.Field(&req.LodgingPrice, validation.Min(0.0)),
		validation.Field(&req.ContactEmail, is.Email),
	)
}

type SaveRoleProfileRequest struct {
	Name                string  `json:"name"`
	ValueKey            string  `json:"value_key"`
	ActiveMethod        string  `json:"active_method"`
	DiscountPercentage  float64 `json:"discount_percentage"`
	DiscountFixedAmount float64 `json:"discount_fixed_amount"`
	Capacity            *int    `json:"capacity"`
	Color               string  `json:"color"`
}

func (req *SaveRoleProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.ValueKey, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.ActiveMethod, validation.Required, validation.In("percentage", "fixed", "none")),
		validation.Field(&req.DiscountPercentage, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&req.DiscountFixedAmount, validation.Min(0.0)),
	)
}

type SavePricingConfigRequest struct {
	PricingMode        string  `json:"pricing_mode"`
	GlobalBasePrice    float64 `json:"global_base_price"`
	LodgingSource      string  `json:"lodging_source"`
	GlobalLodgingPrice float64 `json:"global_lodging_price"`
}

func (req *SavePricingConfigRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PricingMode, validation.Required, validation.In("global", "per_region")),
		validation.Field(&req.GlobalBasePrice, validation.Min(0.0)),
		validation.Field(&req.LodgingSource, validation.Required, validation.In("per_region", "global_flat")),
		validation.Field(&req.GlobalLodgingPrice, validation.Min(0.0)),
	)
}

type CreateEventRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	RevenueGoal float64 `json:"revenue_goal"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Slug, validation.Required, validation.Length(2, 100), is.DNSName),
		validation.Field(&req.StartDate, validation.Date("2006-01-02")),
		validation.Field(&req.RevenueGoal, validation.Min(0.0)),
	)
}
