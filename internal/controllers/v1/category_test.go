package v1_test

import (
	"net/http"

	v1 "github.com/centavo-app/backend/internal/controllers/v1"
	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/types"
	"github.com/centavo-app/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestCategory(editable v1.CategoryEditable, expectedStatus ...int) v1.CategoryResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/categories", editable)
	suite.assertHTTPStatus(&r, expectedStatus...)

	var response v1.CategoryResponse
	suite.decodeResponse(&r, &response)

	return response
}

func (suite *TestSuiteStandard) TestCategoryCRUD() {
	created := suite.createTestCategory(v1.CategoryEditable{
		Title: "Groceries",
		Limit: decimal.NewFromInt(800),
		Month: types.NewMonth(2025, 8),
	})

	r := test.Request(suite.T(), http.MethodGet, created.Data.Links.Self, "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPatch, created.Data.Links.Self, v1.CategoryEditable{
		Title: "Food",
		Limit: decimal.NewFromInt(900),
	})
	suite.assertHTTPStatus(&r, http.StatusOK)

	var updated v1.CategoryResponse
	suite.decodeResponse(&r, &updated)
	assert.Equal(suite.T(), "Food", updated.Data.Title)

	r = test.Request(suite.T(), http.MethodDelete, created.Data.Links.Self, "")
	suite.assertHTTPStatus(&r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestCategoryPartialUpdate() {
	created := suite.createTestCategory(v1.CategoryEditable{
		Title: "Groceries",
		Limit: decimal.NewFromInt(800),
		Month: types.NewMonth(2025, 8),
	})

	// A new title must not reset the limit or move the month
	r := test.Request(suite.T(), http.MethodPatch, created.Data.Links.Self, `{"title": "Food"}`)
	suite.assertHTTPStatus(&r, http.StatusOK)

	var updated v1.CategoryResponse
	suite.decodeResponse(&r, &updated)
	assert.Equal(suite.T(), "Food", updated.Data.Title)
	assert.True(suite.T(), updated.Data.Limit.Equal(decimal.NewFromInt(800)), "limit is %s", updated.Data.Limit)
	assert.Equal(suite.T(), types.NewMonth(2025, 8), updated.Data.Month)
}

func (suite *TestSuiteStandard) TestCategoryNegativeLimit() {
	suite.createTestCategory(v1.CategoryEditable{
		Title: "Impossible",
		Limit: decimal.NewFromInt(-100),
	}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategorySpentIsDerived() {
	category := suite.createTestCategory(v1.CategoryEditable{
		Title: "Groceries",
		Limit: decimal.NewFromInt(800),
		Month: types.NewMonth(2025, 8),
	})

	suite.createTestExpense(v1.ExpenseEditable{
		CategoryID: category.Data.ID,
		Amount:     decimal.NewFromFloat(54.30),
		Date:       types.NewMonth(2025, 8).Start().AddDate(0, 0, 11),
	})

	r := test.Request(suite.T(), http.MethodGet, category.Data.Links.Self, "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	var fetched v1.CategoryResponse
	suite.decodeResponse(&r, &fetched)
	assert.True(suite.T(), fetched.Data.Spent.Equal(decimal.NewFromFloat(54.30)), "spent is %s", fetched.Data.Spent)
}

func (suite *TestSuiteStandard) TestBudgetMonth() {
	month := types.MonthOf(timeNowUTC())

	category := suite.createTestCategory(v1.CategoryEditable{
		Title: "Groceries",
		Limit: decimal.NewFromInt(800),
		Month: month,
	})

	suite.createTestExpense(v1.ExpenseEditable{
		CategoryID: category.Data.ID,
		Amount:     decimal.NewFromInt(400),
		Date:       timeNowUTC(),
	})

	suite.createTestSubscription(v1.SubscriptionEditable{
		Name:  "Streaming",
		Price: decimal.NewFromFloat(39.90),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories/month", "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	var response v1.BudgetMonthResponse
	suite.decodeResponse(&r, &response)

	// The synthetic subscriptions category is always first
	if assert.Len(suite.T(), response.Data.Categories, 2) {
		assert.True(suite.T(), response.Data.Categories[0].Synthetic)
		assert.Equal(suite.T(), "Assinaturas", response.Data.Categories[0].Title)
		assert.True(suite.T(), response.Data.Categories[0].Spent.Equal(decimal.NewFromFloat(39.90)))

		assert.False(suite.T(), response.Data.Categories[1].Synthetic)
		assert.Equal(suite.T(), "Groceries", response.Data.Categories[1].Title)
	}

	// The synthetic category has no limit and does not count into totals
	assert.True(suite.T(), response.Data.TotalSpent.Equal(decimal.NewFromInt(400)))
	assert.True(suite.T(), response.Data.TotalLimit.Equal(decimal.NewFromInt(800)))
	assert.True(suite.T(), response.Data.LimitUsagePercent.Equal(decimal.NewFromInt(50)), "usage is %s", response.Data.LimitUsagePercent)
}

func (suite *TestSuiteStandard) TestBudgetMonthInvalidMonth() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories/month?month=2025-13-01", "")
	suite.assertHTTPStatus(&r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoryDeleteRemovesExpenses() {
	category := suite.createTestCategory(v1.CategoryEditable{
		Title: "Groceries",
		Month: types.NewMonth(2025, 8),
	})

	expense := suite.createTestExpense(v1.ExpenseEditable{
		CategoryID: category.Data.ID,
		Amount:     decimal.NewFromInt(100),
		Date:       types.NewMonth(2025, 8).Start(),
	})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	suite.assertHTTPStatus(&r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, expense.Data.Links.Self, "")
	suite.assertHTTPStatus(&r, http.StatusNotFound)

	var count int64
	assert.Nil(suite.T(), models.DB.Model(&models.BudgetExpense{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}
