package domain

import "time"

type PricingMode string

const (
	PricingGlobal    PricingMode = "global"
	PricingPerRegion PricingMode = "per_region"
)

type LodgingSource string

const (
	LodgingPerRegion  LodgingSource = "per_region"
	LodgingGlobalFlat LodgingSource = "global_flat"
)

// PricingConfig selects the pricing strategy for one event. One row per event.
type PricingConfig struct {
	ID                 uint          `json:"id"`
	EventID            uint          `json:"event_id"`
	PricingMode        PricingMode   `json:"pricing_mode"`
	GlobalBasePrice    float64       `json:"global_base_price"`
	LodgingSource      LodgingSource `json:"lodging_source"`
	GlobalLodgingPrice float64       `json:"global_lodging_price"`
	UpdatedAt          time.Time     `json:"updated_at"`
}
