// Package money provides two-decimal currency arithmetic helpers.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Allocate splits total into parts values rounded to 2 decimals whose sum
// reconstructs total exactly. Every part is the floor-rounded equal share;
// the last part receives total minus the sum of the previous parts, so the
// residual cents from rounding end up in the last part instead of being lost.
func Allocate(total decimal.Decimal, parts int) ([]decimal.Decimal, error) {
	if parts < 1 {
		return nil, fmt.Errorf("parts must be >= 1, got %d", parts)
	}

	if parts == 1 {
		return []decimal.Decimal{total}, nil
	}

	share := total.Div(decimal.NewFromInt(int64(parts))).RoundDown(2)

	result := make([]decimal.Decimal, parts)
	allocated := decimal.Zero
	for i := 0; i < parts-1; i++ {
		result[i] = share
		allocated = allocated.Add(share)
	}
	result[parts-1] = total.Sub(allocated)

	return result, nil
}

// Round2 rounds a value to 2 decimal places (half away from zero).
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// Sum adds up a list of values.
func Sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
