package v1

import (
	"github.com/centavo-app/backend/internal/finance"
	"github.com/centavo-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

// FinanceSummary is the consolidated month view: income against
// outflows. Outflows combine the booked expenses of the month with the
// monthly subscription total.
type FinanceSummary struct {
	Month    types.Month     `json:"month"`
	Income   decimal.Decimal `json:"income" example:"5400"`
	Outflows decimal.Decimal `json:"outflows" example:"3870.5"`
	Balance  decimal.Decimal `json:"balance" example:"1529.5"`

	Expenses      decimal.Decimal `json:"expenses" example:"3820.6"`
	Subscriptions decimal.Decimal `json:"subscriptions" example:"49.9"`

	GoalCount         int `json:"goalCount" example:"3"`
	SubscriptionCount int `json:"subscriptionCount" example:"2"`
}

type FinanceSummaryResponse struct {
	Error *string         `json:"error"`
	Data  *FinanceSummary `json:"data"`
}

// InsightReport is the generated insight list, optionally accompanied
// by the natural language summary of the external analyzer.
type InsightReport struct {
	Insights []finance.Insight `json:"insights"`
	Summary  *string           `json:"summary,omitempty"`
}

type InsightReportResponse struct {
	Error *string        `json:"error"`
	Data  *InsightReport `json:"data"`
}
