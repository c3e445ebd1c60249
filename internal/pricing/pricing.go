// Package pricing derives booking totals. All currency values are fixed-point
// decimals; binary floats never touch the stored amounts.
package pricing

import "github.com/shopspring/decimal"

// Total returns pricePerPerson multiplied by guestCount, rounded to two
// decimal places. Pure function; validation of inputs is the caller's job.
func Total(pricePerPerson decimal.Decimal, guestCount int) decimal.Decimal {
	return pricePerPerson.Mul(decimal.NewFromInt(int64(guestCount))).Round(2)
}
