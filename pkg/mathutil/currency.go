// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/invoice-roi/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Ties round half away from zero on the shortest decimal representation of
// val, so 1.005 becomes 1.01 even though its binary value is slightly below.
// Non-finite values are returned unchanged.
func Round(val float64) float64 {
	if !IsFinite(val) {
		return val
	}
	return decimal.NewFromFloat(val).Round(constants.DecimalPlaces).InexactFloat64()
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// FiniteOrZero maps NaN and infinities to zero.
func FiniteOrZero(val float64) float64 {
	if !IsFinite(val) {
		return 0
	}
	return val
}

// CalculatePercentage calculates what percentage value is of total. A
// non-positive total yields zero.
func CalculatePercentage(value, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}
