package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/centavo-app/backend/internal/controllers/v1"
	"github.com/centavo-app/backend/internal/types"
	"github.com/centavo-app/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestExpense(editable v1.ExpenseEditable, expectedStatus ...int) v1.ExpenseResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/expenses", editable)
	suite.assertHTTPStatus(&r, expectedStatus...)

	var response v1.ExpenseResponse
	suite.decodeResponse(&r, &response)

	return response
}

func (suite *TestSuiteStandard) TestExpenseCreateAndDelete() {
	category := suite.createTestCategory(v1.CategoryEditable{
		Title: "Groceries",
		Month: types.NewMonth(2025, 8),
	})

	expense := suite.createTestExpense(v1.ExpenseEditable{
		CategoryID:  category.Data.ID,
		Amount:      decimal.NewFromFloat(54.30),
		Date:        types.NewMonth(2025, 8).Start().AddDate(0, 0, 11),
		Description: "Street market",
	})

	r := test.Request(suite.T(), http.MethodGet, expense.Data.Links.Self, "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	var fetched v1.ExpenseResponse
	suite.decodeResponse(&r, &fetched)
	assert.Equal(suite.T(), "Street market", fetched.Data.Description)

	r = test.Request(suite.T(), http.MethodDelete, expense.Data.Links.Self, "")
	suite.assertHTTPStatus(&r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, expense.Data.Links.Self, "")
	suite.assertHTTPStatus(&r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestExpenseIsImmutable() {
	category := suite.createTestCategory(v1.CategoryEditable{
		Title: "Groceries",
		Month: types.NewMonth(2025, 8),
	})

	expense := suite.createTestExpense(v1.ExpenseEditable{
		CategoryID: category.Data.ID,
		Amount:     decimal.NewFromInt(100),
		Date:       types.NewMonth(2025, 8).Start(),
	})

	// There is no update for expenses, only create and delete
	r := test.Request(suite.T(), http.MethodPatch, expense.Data.Links.Self, v1.ExpenseEditable{})
	suite.assertHTTPStatus(&r, http.StatusMethodNotAllowed)
}

func (suite *TestSuiteStandard) TestExpenseNeedsExistingCategory() {
	suite.createTestExpense(v1.ExpenseEditable{
		CategoryID: uuid.New(),
		Amount:     decimal.NewFromInt(100),
	}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestExpenseCategoryOfOtherUser() {
	category := suite.createTestCategory(v1.CategoryEditable{
		Title: "Groceries",
		Month: types.NewMonth(2025, 8),
	})

	// Booking onto a category of another user fails like the category
	// does not exist
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/expenses", v1.ExpenseEditable{
		CategoryID: category.Data.ID,
		Amount:     decimal.NewFromInt(999),
	}, map[string]string{"X-User-ID": "11111111-aaaa-4678-b5a6-5cf368a00b32"})
	suite.assertHTTPStatus(&r, http.StatusNotFound)

	// The owner's spent amount stays untouched
	r = test.Request(suite.T(), http.MethodGet, category.Data.Links.Self, "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	var fetched v1.CategoryResponse
	suite.decodeResponse(&r, &fetched)
	assert.True(suite.T(), fetched.Data.Spent.IsZero(), "spent is %s", fetched.Data.Spent)
}

func (suite *TestSuiteStandard) TestExpenseFilters() {
	groceries := suite.createTestCategory(v1.CategoryEditable{
		Title: "Groceries",
		Month: types.NewMonth(2025, 8),
	})
	transport := suite.createTestCategory(v1.CategoryEditable{
		Title: "Transport",
		Month: types.NewMonth(2025, 8),
	})

	suite.createTestExpense(v1.ExpenseEditable{
		CategoryID: groceries.Data.ID,
		Amount:     decimal.NewFromInt(100),
		Date:       types.NewMonth(2025, 8).Start(),
	})
	suite.createTestExpense(v1.ExpenseEditable{
		CategoryID: transport.Data.ID,
		Amount:     decimal.NewFromInt(50),
		Date:       types.NewMonth(2025, 7).Start(),
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses?category=%s", groceries.Data.ID), "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	var list v1.ExpenseListResponse
	suite.decodeResponse(&r, &list)
	assert.Len(suite.T(), list.Data, 1)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/expenses?month=2025-07", "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	suite.decodeResponse(&r, &list)
	if assert.Len(suite.T(), list.Data, 1) {
		assert.Equal(suite.T(), transport.Data.ID, list.Data[0].CategoryID)
	}

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/expenses?month=NotAMonth", "")
	suite.assertHTTPStatus(&r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestExpenseNoSession() {
	r := test.AnonymousRequest(suite.T(), http.MethodGet, "http://example.com/v1/expenses", "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	var list v1.ExpenseListResponse
	suite.decodeResponse(&r, &list)
	assert.Empty(suite.T(), list.Data)

	r = test.AnonymousRequest(suite.T(), http.MethodPost, "http://example.com/v1/expenses", v1.ExpenseEditable{
		CategoryID: uuid.New(),
		Amount:     decimal.NewFromInt(100),
	})
	suite.assertHTTPStatus(&r, http.StatusUnauthorized)
}
