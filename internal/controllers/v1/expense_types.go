package v1

import (
	"fmt"
	"time"

	"github.com/centavo-app/backend/internal/models"
	ct_uuid "github.com/centavo-app/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenseEditable struct {
	CategoryID  uuid.UUID       `json:"categoryId" example:"f81566d9-af4d-4f13-9830-c62c4b5e4c7e"`
	Amount      decimal.Decimal `json:"amount" example:"54.3" minimum:"0.01" default:"0"`
	Date        time.Time       `json:"date" example:"2025-08-12T00:00:00Z"`
	Description string          `json:"description" example:"Street market" default:""`
}

// model returns the database resource for the API representation
func (editable ExpenseEditable) model(userID string) models.BudgetExpense {
	return models.BudgetExpense{
		UserID:      userID,
		CategoryID:  editable.CategoryID,
		Amount:      editable.Amount,
		Date:        editable.Date,
		Description: editable.Description,
	}
}

type ExpenseLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/expenses/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`
	Category string `json:"category" example:"https://example.com/api/v1/categories/f81566d9-af4d-4f13-9830-c62c4b5e4c7e"`
}

type Expense struct {
	models.DefaultModel
	ExpenseEditable
	Links ExpenseLinks `json:"links"`
}

// newExpense returns the API representation of the resource
func newExpense(c *gin.Context, model models.BudgetExpense) Expense {
	url := requestHost(c)

	return Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			CategoryID:  model.CategoryID,
			Amount:      model.Amount,
			Date:        model.Date,
			Description: model.Description,
		},
		Links: ExpenseLinks{
			Self:     fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}
}

type ExpenseResponse struct {
	Error *string  `json:"error"` // The error, if any occurred
	Data  *Expense `json:"data"`  // The resource
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`
	Error      *string     `json:"error"`
	Pagination *Pagination `json:"pagination"`
}

type ExpenseQueryFilter struct {
	CategoryID ct_uuid.UUID `form:"category"` // By category ID
	Month      string       `form:"month"`    // Expenses of this month, as YYYY-MM
	Offset     uint         `form:"offset"`   // The offset of the first expense returned. Defaults to 0.
	Limit      int          `form:"limit"`    // Maximum number of expenses to return. Defaults to 50.
}
