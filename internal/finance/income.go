package finance

import (
	"time"

	"github.com/centavo-app/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var (
	volatilityModerate = decimal.NewFromFloat(0.3)
	volatilityHigh     = decimal.NewFromFloat(0.5)
)

// IsFixedKind reports whether an income kind counts as fixed income.
// Salaries and company income are fixed, everything else is variable.
func IsFixedKind(k models.IncomeKind) bool {
	return k == models.IncomeSalary || k == models.IncomeCompany
}

// MonthlyIncome normalizes all sources active at the given time into
// one monthly figure. One-time amounts count as a single month's
// contribution, they are never annualized.
func MonthlyIncome(sources []models.IncomeSource, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sources {
		if !s.ActiveAt(now) {
			continue
		}

		total = total.Add(ToMonthly(s.Amount, s.Recurrence))
	}

	return total
}

// FixedIncome is the monthly income restricted to fixed kinds.
func FixedIncome(sources []models.IncomeSource, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sources {
		if !s.ActiveAt(now) || !IsFixedKind(s.Kind) {
			continue
		}

		total = total.Add(ToMonthly(s.Amount, s.Recurrence))
	}

	return total
}

// VariableIncome is the monthly income restricted to variable kinds.
func VariableIncome(sources []models.IncomeSource, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sources {
		if !s.ActiveAt(now) || IsFixedKind(s.Kind) {
			continue
		}

		total = total.Add(ToMonthly(s.Amount, s.Recurrence))
	}

	return total
}

// AverageMonthly is the arithmetic mean over all snapshot totals.
func AverageMonthly(snapshots []models.IncomeSnapshot) decimal.Decimal {
	if len(snapshots) == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, s := range snapshots {
		sum = sum.Add(s.Total)
	}

	return sum.Div(decimal.NewFromInt(int64(len(snapshots))))
}

// VariationPercent is the month-over-month change of the two most
// recent snapshots in percent. With fewer than two snapshots, or when
// the previous total is zero, the variation is zero.
func VariationPercent(snapshots []models.IncomeSnapshot) decimal.Decimal {
	if len(snapshots) < 2 {
		return decimal.Zero
	}

	ordered := slices.Clone(snapshots)
	slices.SortStableFunc(ordered, func(a, b models.IncomeSnapshot) int {
		switch {
		case a.Month.Before(b.Month):
			return -1
		case a.Month.After(b.Month):
			return 1
		default:
			return 0
		}
	})

	latest := ordered[len(ordered)-1]
	previous := ordered[len(ordered)-2]

	if previous.Total.IsZero() {
		return decimal.Zero
	}

	return latest.Total.Sub(previous.Total).Div(previous.Total).Mul(hundred)
}

// SavingsSuggestionPercent is the volatility driven savings
// recommendation: 10% as the base, 15% when more than 30% of the income
// is variable, 20% when more than half of it is. The suggestion never
// decreases as volatility rises.
func SavingsSuggestionPercent(fixed, variable decimal.Decimal) decimal.Decimal {
	total := fixed.Add(variable)
	if !total.IsPositive() {
		return decimal.NewFromInt(10)
	}

	ratio := variable.Div(total)
	switch {
	case ratio.GreaterThan(volatilityHigh):
		return decimal.NewFromInt(20)
	case ratio.GreaterThan(volatilityModerate):
		return decimal.NewFromInt(15)
	default:
		return decimal.NewFromInt(10)
	}
}

// SuggestedSavingsValue is the monthly amount the suggestion percent
// translates to.
func SuggestedSavingsValue(monthlyIncome, suggestionPercent decimal.Decimal) decimal.Decimal {
	return monthlyIncome.Mul(suggestionPercent).Div(hundred)
}

// GoalFundingMonths estimates how many months of suggested savings are
// needed to fund the remaining amount of a goal. The second return
// value is false when the suggested value is not positive.
func GoalFundingMonths(remaining, suggestedValue decimal.Decimal) (decimal.Decimal, bool) {
	if !suggestedValue.IsPositive() {
		return decimal.Zero, false
	}

	return remaining.Div(suggestedValue), true
}
