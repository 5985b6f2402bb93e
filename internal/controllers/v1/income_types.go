package v1

import (
	"fmt"
	"time"

	"github.com/centavo-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type IncomeSourceEditable struct {
	Kind       models.IncomeKind `json:"kind" example:"salary"`
	Name       string            `json:"name" example:"Day job" default:""`
	Amount     decimal.Decimal   `json:"amount" example:"4200" minimum:"0.01"`
	Recurrence models.Recurrence `json:"recurrence" example:"monthly" default:"monthly"`
	StartDate  time.Time         `json:"startDate" example:"2024-01-01T00:00:00Z"`
	EndDate    *time.Time        `json:"endDate,omitempty"`
}

// model returns the database resource for the API representation
func (editable IncomeSourceEditable) model(userID string) models.IncomeSource {
	return models.IncomeSource{
		UserID:     userID,
		Kind:       editable.Kind,
		Name:       editable.Name,
		Amount:     editable.Amount,
		Recurrence: editable.Recurrence,
		StartDate:  editable.StartDate,
		EndDate:    editable.EndDate,
	}
}

type IncomeSourceLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/income/sources/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`
}

type IncomeSource struct {
	models.DefaultModel
	IncomeSourceEditable

	// MonthlyAmount is the amount normalized to one month
	MonthlyAmount decimal.Decimal `json:"monthlyAmount" example:"4200"`

	// Fixed reports whether the source counts as fixed income
	Fixed bool `json:"fixed" example:"true"`

	Links IncomeSourceLinks `json:"links"`
}

// newIncomeSource returns the API representation of the resource
func newIncomeSource(c *gin.Context, model models.IncomeSource, monthly decimal.Decimal, fixed bool) IncomeSource {
	url := requestHost(c)

	return IncomeSource{
		DefaultModel: model.DefaultModel,
		IncomeSourceEditable: IncomeSourceEditable{
			Kind:       model.Kind,
			Name:       model.Name,
			Amount:     model.Amount,
			Recurrence: model.Recurrence,
			StartDate:  model.StartDate,
			EndDate:    model.EndDate,
		},
		MonthlyAmount: monthly,
		Fixed:         fixed,
		Links: IncomeSourceLinks{
			Self: fmt.Sprintf("%s/v1/income/sources/%s", url, model.ID),
		},
	}
}

type IncomeSourceResponse struct {
	Error *string       `json:"error"` // The error, if any occurred
	Data  *IncomeSource `json:"data"`  // The resource
}

type IncomeSourceListResponse struct {
	Data       []IncomeSource `json:"data"`
	Error      *string        `json:"error"`
	Pagination *Pagination    `json:"pagination"`
}

type IncomeSourceQueryFilter struct {
	Kind   string `form:"kind"`   // By kind: salary, company, service, variable or extra
	Offset uint   `form:"offset"` // The offset of the first source returned. Defaults to 0.
	Limit  int    `form:"limit"`  // Maximum number of sources to return. Defaults to 50.
}

// IncomeAnalytics is the derived income report: all figures are
// recomputed from the raw sources and snapshots on every request.
type IncomeAnalytics struct {
	MonthlyTotal             decimal.Decimal `json:"monthlyTotal" example:"5400"`
	FixedIncome              decimal.Decimal `json:"fixedIncome" example:"4200"`
	VariableIncome           decimal.Decimal `json:"variableIncome" example:"1200"`
	AverageMonthly           decimal.Decimal `json:"averageMonthly" example:"5210.33"`
	VariationPercent         decimal.Decimal `json:"variationPercent" example:"3.64"`
	SavingsSuggestionPercent decimal.Decimal `json:"savingsSuggestionPercent" example:"10"`
	SuggestedSavingsValue    decimal.Decimal `json:"suggestedSavingsValue" example:"540"`
}

type IncomeAnalyticsResponse struct {
	Error *string          `json:"error"`
	Data  *IncomeAnalytics `json:"data"`
}

type IncomeHistoryResponse struct {
	Data  []models.IncomeSnapshot `json:"data"`
	Error *string                 `json:"error"`
}

type IncomeSnapshotResponse struct {
	Error *string                `json:"error"`
	Data  *models.IncomeSnapshot `json:"data"`
}
