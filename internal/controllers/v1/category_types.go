package v1

import (
	"fmt"

	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// syntheticCategoryTitle is the title of the non-persisted pseudo
// category that carries the subscription total in month views.
const syntheticCategoryTitle = "Assinaturas"

type CategoryEditable struct {
	Title string          `json:"title" example:"Groceries" default:""`
	Limit decimal.Decimal `json:"limit" example:"800" minimum:"0" default:"0"`
	Month types.Month     `json:"month" example:"2025-08-01T00:00:00Z"`
}

// model returns the database resource for the API representation
func (editable CategoryEditable) model(userID string) models.BudgetCategory {
	return models.BudgetCategory{
		UserID: userID,
		Title:  editable.Title,
		Limit:  editable.Limit,
		Month:  editable.Month,
	}
}

type CategoryLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/categories/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`
	Expenses string `json:"expenses" example:"https://example.com/api/v1/expenses?category=438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`
}

type Category struct {
	models.DefaultModel
	CategoryEditable

	// Spent is derived from the expenses of the category
	Spent decimal.Decimal `json:"spent" example:"512.43"`

	// Synthetic categories are computed per request and can not be
	// edited or deleted
	Synthetic bool `json:"synthetic" example:"false"`

	Links CategoryLinks `json:"links"`
}

// newCategory returns the API representation of the resource
func newCategory(c *gin.Context, model models.BudgetCategory) Category {
	url := requestHost(c)

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Title: model.Title,
			Limit: model.Limit,
			Month: model.Month,
		},
		Spent: model.Spent,
		Links: CategoryLinks{
			Self:     fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Expenses: fmt.Sprintf("%s/v1/expenses?category=%s", url, model.ID),
		},
	}
}

// newSyntheticCategory returns the subscriptions pseudo category. It is
// always prepended to month views, has no limit and is never persisted.
func newSyntheticCategory(spent decimal.Decimal, month types.Month) Category {
	return Category{
		CategoryEditable: CategoryEditable{
			Title: syntheticCategoryTitle,
			Month: month,
		},
		Spent:     spent,
		Synthetic: true,
	}
}

type CategoryResponse struct {
	Error *string   `json:"error"` // The error, if any occurred
	Data  *Category `json:"data"`  // The resource
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`
	Error      *string     `json:"error"`
	Pagination *Pagination `json:"pagination"`
}

type BudgetMonth struct {
	Month             types.Month     `json:"month"`
	Categories        []Category      `json:"categories"`
	TotalSpent        decimal.Decimal `json:"totalSpent" example:"1712.43"`
	TotalLimit        decimal.Decimal `json:"totalLimit" example:"2300"`
	LimitUsagePercent decimal.Decimal `json:"limitUsagePercent" example:"74.45"`
}

type BudgetMonthResponse struct {
	Error *string      `json:"error"`
	Data  *BudgetMonth `json:"data"`
}

type CategoryQueryFilter struct {
	Month  string `form:"month"`  // Categories of this month, as YYYY-MM
	Offset uint   `form:"offset"` // The offset of the first category returned. Defaults to 0.
	Limit  int    `form:"limit"`  // Maximum number of categories to return. Defaults to 50.
}
