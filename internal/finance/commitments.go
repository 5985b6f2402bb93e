package finance

import (
	"time"

	"github.com/centavo-app/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// ImpactBand classifies how much a single subscription weighs on the
// total monthly commitments.
type ImpactBand string

const (
	ImpactHealthy   ImpactBand = "healthy"
	ImpactAttention ImpactBand = "attention"
	ImpactCritical  ImpactBand = "critical"
)

var (
	impactAttentionThreshold = decimal.NewFromFloat(0.07)
	impactCriticalThreshold  = decimal.NewFromFloat(0.15)

	// Budgets can be exceeded far past 100%, but the usage percentage
	// is capped so that the value stays representable.
	limitUsageCap = decimal.NewFromInt(300)
)

// CommitmentSummary is the consolidated view over all subscriptions.
type CommitmentSummary struct {
	MonthlyTotal     decimal.Decimal
	AnnualTotal      decimal.Decimal
	UpcomingRenewals []models.Subscription
}

// Commitments aggregates all subscriptions into monthly and annual
// totals and lists the ones renewing within the next seven days,
// ascending by billing date.
func Commitments(subscriptions []models.Subscription, now time.Time) CommitmentSummary {
	total := decimal.Zero
	for _, s := range subscriptions {
		total = total.Add(ToMonthly(s.Price, s.Recurrence))
	}

	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowEnd := windowStart.AddDate(0, 0, 8).Add(-time.Nanosecond)

	upcoming := make([]models.Subscription, 0)
	for _, s := range subscriptions {
		if s.NextBilling.Before(windowStart) || s.NextBilling.After(windowEnd) {
			continue
		}
		upcoming = append(upcoming, s)
	}

	slices.SortStableFunc(upcoming, func(a, b models.Subscription) int {
		return a.NextBilling.Compare(b.NextBilling)
	})

	return CommitmentSummary{
		MonthlyTotal:     total,
		AnnualTotal:      total.Mul(twelve),
		UpcomingRenewals: upcoming,
	}
}

// ImpactRatio is the share a single subscription has of the total
// monthly commitments. It is zero when there are no commitments.
func ImpactRatio(s models.Subscription, monthlyTotal decimal.Decimal) decimal.Decimal {
	if !monthlyTotal.IsPositive() {
		return decimal.Zero
	}

	return ToMonthly(s.Price, s.Recurrence).Div(monthlyTotal)
}

// ImpactBandFor bands an impact ratio for display.
func ImpactBandFor(ratio decimal.Decimal) ImpactBand {
	switch {
	case ratio.GreaterThanOrEqual(impactCriticalThreshold):
		return ImpactCritical
	case ratio.GreaterThanOrEqual(impactAttentionThreshold):
		return ImpactAttention
	default:
		return ImpactHealthy
	}
}

// LimitUsagePercent is the share of the combined category limits that
// has been spent, in percent. It is zero when no limits are set and is
// capped at 300% so that "blown past the limit by 2x" stays
// distinguishable from "essentially on limit".
func LimitUsagePercent(spent, limitTotal decimal.Decimal) decimal.Decimal {
	if !limitTotal.IsPositive() {
		return decimal.Zero
	}

	percent := spent.Div(limitTotal).Mul(hundred)
	if percent.GreaterThan(limitUsageCap) {
		return limitUsageCap
	}
	if percent.IsNegative() {
		return decimal.Zero
	}

	return percent
}
