package v1

import (
	"fmt"
	"time"

	"github.com/centavo-app/backend/internal/finance"
	"github.com/centavo-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type SubscriptionEditable struct {
	Name        string            `json:"name" example:"Video streaming" default:""`
	Price       decimal.Decimal   `json:"price" example:"39.9" minimum:"0.01" default:"0"`
	Recurrence  models.Recurrence `json:"recurrence" example:"monthly" default:"monthly"`
	NextBilling time.Time         `json:"nextBilling" example:"2025-09-05T00:00:00Z"`
}

// model returns the database resource for the API representation
func (editable SubscriptionEditable) model(userID string) models.Subscription {
	return models.Subscription{
		UserID:      userID,
		Name:        editable.Name,
		Price:       editable.Price,
		Recurrence:  editable.Recurrence,
		NextBilling: editable.NextBilling,
	}
}

type SubscriptionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/subscriptions/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`
}

type Subscription struct {
	models.DefaultModel
	SubscriptionEditable

	// Derived fields, recomputed on every read
	MonthlyPrice decimal.Decimal    `json:"monthlyPrice" example:"10"`
	ImpactRatio  decimal.Decimal    `json:"impactRatio" example:"0.2"`
	ImpactBand   finance.ImpactBand `json:"impactBand" example:"critical"`

	Links SubscriptionLinks `json:"links"`
}

// newSubscription returns the API representation of the resource. The
// impact fields are derived against the monthly total of all
// subscriptions of the user.
func newSubscription(c *gin.Context, model models.Subscription, monthlyTotal decimal.Decimal) Subscription {
	ratio := finance.ImpactRatio(model, monthlyTotal)

	return Subscription{
		DefaultModel: model.DefaultModel,
		SubscriptionEditable: SubscriptionEditable{
			Name:        model.Name,
			Price:       model.Price,
			Recurrence:  model.Recurrence,
			NextBilling: model.NextBilling,
		},
		MonthlyPrice: finance.ToMonthly(model.Price, model.Recurrence),
		ImpactRatio:  ratio,
		ImpactBand:   finance.ImpactBandFor(ratio),
		Links: SubscriptionLinks{
			Self: fmt.Sprintf("%s/v1/subscriptions/%s", requestHost(c), model.ID),
		},
	}
}

type SubscriptionResponse struct {
	Error *string       `json:"error"` // The error, if any occurred
	Data  *Subscription `json:"data"`  // The resource
}

type SubscriptionListResponse struct {
	Data       []Subscription `json:"data"`
	Error      *string        `json:"error"`
	Pagination *Pagination    `json:"pagination"`
}

type SubscriptionSummary struct {
	MonthlyTotal     decimal.Decimal `json:"monthlyTotal" example:"49.9"`
	AnnualTotal      decimal.Decimal `json:"annualTotal" example:"598.8"`
	UpcomingRenewals []Subscription  `json:"upcomingRenewals"`
}

type SubscriptionSummaryResponse struct {
	Error *string              `json:"error"`
	Data  *SubscriptionSummary `json:"data"`
}

type SubscriptionQueryFilter struct {
	Name   string `form:"name"`   // Filter by name
	Offset uint   `form:"offset"` // The offset of the first subscription returned. Defaults to 0.
	Limit  int    `form:"limit"`  // Maximum number of subscriptions to return. Defaults to 50.
}
