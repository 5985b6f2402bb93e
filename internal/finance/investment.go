package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// maxForwardPoints bounds the projected value series.
const maxForwardPoints = 8

// Window is the length of a comparison period for investment charts.
type Window string

const (
	WindowDay     Window = "1d"
	WindowWeek    Window = "7d"
	WindowMonth   Window = "1m"
	WindowQuarter Window = "3m"
	WindowYear    Window = "1y"
	WindowAll     Window = "all"
)

var windowMultipliers = map[Window]decimal.Decimal{
	WindowDay:     decimal.Zero,
	WindowWeek:    decimal.NewFromFloat(0.25),
	WindowMonth:   decimal.NewFromInt(1),
	WindowQuarter: decimal.NewFromInt(3),
	WindowYear:    decimal.NewFromInt(12),
}

// ForwardSeries projects the value of an investment forward: starting
// from the current amount, the monthly contribution is added once per
// point. The series stops as soon as a point reaches the target (that
// point is clamped to exactly the target) or after eight points.
//
// Without a positive contribution no points are produced: the engine
// never fabricates a trajectory it cannot justify.
func ForwardSeries(current, target decimal.Decimal, contribution *decimal.Decimal) []decimal.Decimal {
	if contribution == nil || !contribution.IsPositive() {
		return nil
	}

	series := make([]decimal.Decimal, 0, maxForwardPoints)

	value := current
	for len(series) < maxForwardPoints {
		if value.GreaterThanOrEqual(target) {
			series = append(series, target)
			break
		}

		series = append(series, value)
		value = value.Add(*contribution)
	}

	return series
}

// PeriodMultiplier returns how many monthly contributions a comparison
// window spans. For the all-time window the number of months until the
// end date is used, clamped to [6, 24]; without an end date it defaults
// to twelve months.
func PeriodMultiplier(w Window, endDate *time.Time, now time.Time) decimal.Decimal {
	if m, ok := windowMultipliers[w]; ok {
		return m
	}

	if endDate == nil {
		return decimal.NewFromInt(12)
	}

	months := monthsBetween(now, *endDate)
	if months < 6 {
		months = 6
	}
	if months > 24 {
		months = 24
	}

	return decimal.NewFromInt(int64(months))
}

// StartEstimate is the estimated value at the start of a comparison
// window: the current value minus the contributions of the window,
// floored at zero. This is a visualization aid, not a reconstruction of
// real history.
func StartEstimate(current decimal.Decimal, contribution *decimal.Decimal, multiplier decimal.Decimal) decimal.Decimal {
	if contribution == nil || !contribution.IsPositive() {
		return current
	}

	start := current.Sub(contribution.Mul(multiplier))
	if start.IsNegative() {
		return decimal.Zero
	}

	return start
}

// MonthsToGoal is the number of monthly contributions still needed to
// reach the target. The second return value is false when no positive
// contribution rate exists; a time to goal is never reported without
// one.
func MonthsToGoal(current, target decimal.Decimal, contribution *decimal.Decimal) (decimal.Decimal, bool) {
	if contribution == nil || !contribution.IsPositive() {
		return decimal.Zero, false
	}

	remaining := target.Sub(current)
	if remaining.IsNegative() {
		return decimal.Zero, true
	}

	return remaining.Div(*contribution), true
}

func monthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}

	months := int(to.Month()) - int(from.Month()) + 12*(to.Year()-from.Year())
	if to.Day() < from.Day() {
		months--
	}

	return months
}
