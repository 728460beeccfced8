// Package pricing resolves the effective unit price of a food item under the
// special offers that are active at a given instant. It is pure: callers
// supply the evaluation time explicitly and inputs are never mutated.
package pricing

import (
	"time"

	"cafe-backend/internal/model"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// EffectivePrice returns the unit price of a food item after applying at
// most one active offer from offers. Offers whose window does not cover now
// are ignored. When several offers are active at once, the highest
// discount wins; ties go to the offer with the earliest start date. With no
// active offer the base price is returned unchanged.
//
// The offer window is inclusive at both ends: an offer is active at its
// start instant and at its end instant.
func EffectivePrice(base decimal.Decimal, offers []model.SpecialOffer, now time.Time) decimal.Decimal {
	applied, ok := ActiveOffer(offers, now)
	if !ok {
		return base
	}

	discount := base.Mul(applied.DiscountPercentage).Div(oneHundred)
	return base.Sub(discount).Round(2)
}

// ActiveOffer selects the offer that applies at now, using the same
// deterministic tie-break as EffectivePrice. The second return value is
// false when no offer is active.
func ActiveOffer(offers []model.SpecialOffer, now time.Time) (model.SpecialOffer, bool) {
	var (
		applied model.SpecialOffer
		found   bool
	)

	for _, offer := range offers {
		if !offer.ActiveAt(now) {
			continue
		}
		if !found {
			applied = offer
			found = true
			continue
		}

		switch applied.DiscountPercentage.Cmp(offer.DiscountPercentage) {
		case -1:
			applied = offer
		case 0:
			if offer.StartDate.Before(applied.StartDate) {
				applied = offer
			}
		}
	}

	return applied, found
}
