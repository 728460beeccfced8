// Package loyalty holds the pure arithmetic of the loyalty-points scheme.
package loyalty

import "github.com/shopspring/decimal"

// EarnThreshold is the minimum order total required to earn any points.
// One point is awarded per full 100 currency units spent.
const EarnThreshold = 100

var pointUnit = decimal.NewFromInt(EarnThreshold)

// PointsForAmount returns the points earned for an order total:
// floor(total / 100). Totals below the earning threshold yield zero.
func PointsForAmount(total decimal.Decimal) int {
	if total.Sign() <= 0 {
		return 0
	}
	return int(total.Div(pointUnit).IntPart())
}
