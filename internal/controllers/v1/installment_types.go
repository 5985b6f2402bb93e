package v1

import (
	"fmt"

	"github.com/centavo-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// InstallmentEditable registers a payment on a debt. The date is
// textual since it comes straight from user input, unparseable dates
// fall back to today.
type InstallmentEditable struct {
	Amount decimal.Decimal `json:"amount" example:"400" minimum:"0.01"`
	Date   string          `json:"date" example:"2025-09-10"`
	Paid   bool            `json:"paid" example:"false" default:"false"`
}

type InstallmentLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/installments/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`
	Goal string `json:"goal" example:"https://example.com/api/v1/goals/f81566d9-af4d-4f13-9830-c62c4b5e4c7e"`
	Pay  string `json:"pay,omitempty" example:"https://example.com/api/v1/installments/438cc6c0-9baf-49fd-a75a-d76bd5cab19c/pay"`
}

type InstallmentDetail struct {
	models.Installment
	Links InstallmentLinks `json:"links"`
}

// newInstallment returns the API representation of the resource. Only
// unpaid installments carry a pay link.
func newInstallment(c *gin.Context, model models.Installment) InstallmentDetail {
	url := requestHost(c)

	links := InstallmentLinks{
		Self: fmt.Sprintf("%s/v1/installments/%s", url, model.ID),
		Goal: fmt.Sprintf("%s/v1/goals/%s", url, model.GoalID),
	}
	if model.Status != models.InstallmentPaid {
		links.Pay = fmt.Sprintf("%s/v1/installments/%s/pay", url, model.ID)
	}

	return InstallmentDetail{
		Installment: model,
		Links:       links,
	}
}

type InstallmentResponse struct {
	Error *string            `json:"error"` // The error, if any occurred
	Data  *InstallmentDetail `json:"data"`  // The resource
}

type InstallmentListResponse struct {
	Data  []InstallmentDetail `json:"data"`
	Error *string             `json:"error"`
}

// PayAllResult reports the outcome of settling all open installments
// of a debt in one request.
type PayAllResult struct {
	PaidCount  int             `json:"paidCount" example:"4"`
	PaidAmount decimal.Decimal `json:"paidAmount" example:"1600"`
	Goal       *Goal           `json:"goal"`
}

type PayAllResponse struct {
	Error *string       `json:"error"`
	Data  *PayAllResult `json:"data"`
}
