package v1

import (
	"fmt"
	"time"

	"github.com/centavo-app/backend/internal/finance"
	"github.com/centavo-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type GoalEditable struct {
	Kind          models.GoalKind `json:"kind" example:"debt"`
	Title         string          `json:"title" example:"Car financing" default:""`
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"400" default:"0"`
	TargetAmount  decimal.Decimal `json:"targetAmount" example:"1200" minimum:"0.01"`

	// Debt only
	Style models.DebtStyle `json:"style,omitempty" example:"financing"`

	// Investment only
	Contribution *decimal.Decimal `json:"contribution,omitempty" example:"500"`
	EndDate      *time.Time       `json:"endDate,omitempty" example:"2027-12-01T00:00:00Z"`
}

// model returns the database resource for the API representation
func (editable GoalEditable) model(userID string) models.Goal {
	return models.Goal{
		UserID:        userID,
		Kind:          editable.Kind,
		Title:         editable.Title,
		CurrentAmount: editable.CurrentAmount,
		TargetAmount:  editable.TargetAmount,
		Style:         editable.Style,
		Contribution:  editable.Contribution,
		EndDate:       editable.EndDate,
	}
}

// DebtView is the ledger view of a debt goal, derived from its
// installments on every read.
type DebtView struct {
	PaidCount           int                 `json:"paidCount" example:"3"`
	TotalCount          int                 `json:"totalCount" example:"12"`
	NextInstallment     *models.Installment `json:"nextInstallment"`
	NextIsLate          bool                `json:"nextIsLate" example:"false"`
	EstimatedCompletion *time.Time          `json:"estimatedCompletion"`
}

// InvestmentView is the projection view of an investment goal.
type InvestmentView struct {
	ForwardSeries []decimal.Decimal          `json:"forwardSeries"`
	MonthsToGoal  *decimal.Decimal           `json:"monthsToGoal"`
	WindowStarts  map[string]decimal.Decimal `json:"windowStarts"`
}

// SavingsView carries the funding estimate of a savings goal, based on
// the volatility driven savings suggestion.
type SavingsView struct {
	FundingMonths *decimal.Decimal `json:"fundingMonths"`
}

type GoalLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/goals/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`
	Installments string `json:"installments,omitempty" example:"https://example.com/api/v1/goals/438cc6c0-9baf-49fd-a75a-d76bd5cab19c/installments"`
}

type Goal struct {
	models.DefaultModel
	GoalEditable

	RemainingAmount decimal.Decimal `json:"remainingAmount" example:"800"`
	ProgressPercent decimal.Decimal `json:"progressPercent" example:"33.33"`

	Debt       *DebtView       `json:"debt,omitempty"`
	Investment *InvestmentView `json:"investment,omitempty"`
	Savings    *SavingsView    `json:"savings,omitempty"`

	Links GoalLinks `json:"links"`
}

// newGoal returns the API representation of the resource. The derived
// views are computed by the caller, only debt goals carry an
// installments link.
func newGoal(c *gin.Context, model models.Goal, debt *DebtView, investment *InvestmentView, savings *SavingsView) Goal {
	url := requestHost(c)

	links := GoalLinks{
		Self: fmt.Sprintf("%s/v1/goals/%s", url, model.ID),
	}
	if model.Kind == models.GoalDebt {
		links.Installments = fmt.Sprintf("%s/v1/goals/%s/installments", url, model.ID)
	}

	return Goal{
		DefaultModel: model.DefaultModel,
		GoalEditable: GoalEditable{
			Kind:          model.Kind,
			Title:         model.Title,
			CurrentAmount: model.CurrentAmount,
			TargetAmount:  model.TargetAmount,
			Style:         model.Style,
			Contribution:  model.Contribution,
			EndDate:       model.EndDate,
		},
		RemainingAmount: model.RemainingAmount(),
		ProgressPercent: model.ProgressPercent(),
		Debt:            debt,
		Investment:      investment,
		Savings:         savings,
		Links:           links,
	}
}

// newDebtView builds the debt view from the derived summary.
func newDebtView(summary finance.DebtSummary) *DebtView {
	view := &DebtView{
		PaidCount:       summary.PaidCount,
		TotalCount:      summary.TotalCount,
		NextInstallment: summary.NextInstallment,
		NextIsLate:      summary.NextIsLate,
	}

	return view
}

// newInvestmentView builds the projection view of an investment goal.
func newInvestmentView(goal models.Goal, now time.Time) *InvestmentView {
	view := &InvestmentView{
		ForwardSeries: finance.ForwardSeries(goal.CurrentAmount, goal.TargetAmount, goal.Contribution),
		WindowStarts:  make(map[string]decimal.Decimal),
	}

	if months, ok := finance.MonthsToGoal(goal.CurrentAmount, goal.TargetAmount, goal.Contribution); ok {
		view.MonthsToGoal = &months
	}

	for _, w := range []finance.Window{
		finance.WindowDay,
		finance.WindowWeek,
		finance.WindowMonth,
		finance.WindowQuarter,
		finance.WindowYear,
		finance.WindowAll,
	} {
		multiplier := finance.PeriodMultiplier(w, goal.EndDate, now)
		view.WindowStarts[string(w)] = finance.StartEstimate(goal.CurrentAmount, goal.Contribution, multiplier)
	}

	return view
}

type GoalResponse struct {
	Error *string `json:"error"` // The error, if any occurred
	Data  *Goal   `json:"data"`  // The resource
}

type GoalListResponse struct {
	Data       []Goal      `json:"data"`
	Error      *string     `json:"error"`
	Pagination *Pagination `json:"pagination"`
}

type GoalQueryFilter struct {
	Kind   string `form:"kind"`   // By kind: savings, debt or investment
	Offset uint   `form:"offset"` // The offset of the first goal returned. Defaults to 0.
	Limit  int    `form:"limit"`  // Maximum number of goals to return. Defaults to 50.
}
