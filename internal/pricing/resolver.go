// Package pricing derives a participant's price from the event's pricing
// configuration, the selected region, and the selected role profile.
//
// Resolve never fails: the public form computes previews while the user is
// still filling fields, so a missing region or role contributes zero instead
// of erroring out.
package pricing

import "github.com/andescode/event-registration-api/internal/domain"

// Quote is the price breakdown shown to the registrant and frozen into the
// registration record on submit.
type Quote struct {
	Base     float64 `json:"base"`
	Discount float64 `json:"discount"`
	Lodging  float64 `json:"lodging"`
	Total    float64 `json:"total"`
}

// Resolve computes the price breakdown for one (region, role, lodging)
// selection under the given configuration.
//
// The role's ActiveMethod is the single authority for discount
// interpretation. Percentage discounts only apply on a positive base;
// fixed discounts apply regardless and may exceed the base, in which
// case the total clamps at zero rather than going negative.
func Resolve(conf domain.PricingConfig, region *domain.Region, role *domain.RoleProfile, wantsLodging bool) Quote {
	var q Quote

	if conf.PricingMode == domain.PricingGlobal {
		q.Base = conf.GlobalBasePrice
	} else if region != nil {
		q.Base = region.BasePrice
	}

	if role != nil {
		switch role.ActiveMethod {
		case domain.DiscountPercentage:
			if q.Base > 0 {
				q.Discount = q.Base * role.DiscountPercentage / 100
			}
		case domain.DiscountFixed:
			q.Discount = role.DiscountFixedAmount
		}
	}

	if wantsLodging {
		if conf.LodgingSource == domain.LodgingPerRegion {
			if region != nil {
				q.Lodging = region.LodgingPrice
			}
		} else {
			q.Lodging = conf.GlobalLodgingPrice
		}
	}

	q.Total = q.Base - q.Discount + q.Lodging
	if q.Total < 0 {
		q.Total = 0
	}

	return q
}
