// Package finance implements the aggregation and projection engine.
//
// Everything in this package is a pure derivation over already fetched
// collections. The functions never fail and never touch the database,
// empty inputs produce zero valued outputs.
package finance

import (
	"github.com/centavo-app/backend/internal/models"
	"github.com/shopspring/decimal"
)

var (
	twelve = decimal.NewFromInt(12)

	// A month has 365.25/12/7 ≈ 4.345 weeks on average.
	weeksPerMonth = decimal.NewFromFloat(4.345)

	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// MonthlyFactor returns the multiplier that converts an amount with the
// given recurrence into its canonical monthly equivalent.
//
// Unknown recurrences fail closed and are treated as monthly so that
// aggregate sums stay defined.
func MonthlyFactor(r models.Recurrence) decimal.Decimal {
	switch r {
	case models.RecurrenceYearly:
		return decimal.NewFromInt(1).Div(twelve)
	case models.RecurrenceWeekly:
		return weeksPerMonth
	case models.RecurrenceBiweekly:
		return two
	default:
		// monthly, once and anything unknown count as one month
		return decimal.NewFromInt(1)
	}
}

// amountScale is the scale of the DECIMAL(20,8) amount columns. All
// normalized amounts are rounded to it so that applying MonthlyFactor
// and dividing directly give the same result, a yearly 120 comes out
// as exactly 10.
const amountScale = 8

// ToMonthly converts an amount with the given recurrence into its
// canonical monthly equivalent by applying MonthlyFactor, rounded to
// the amount column scale.
func ToMonthly(amount decimal.Decimal, r models.Recurrence) decimal.Decimal {
	return amount.Mul(MonthlyFactor(r)).Round(amountScale)
}
