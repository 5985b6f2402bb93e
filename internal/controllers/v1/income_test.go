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

func (suite *TestSuiteStandard) createTestIncomeSource(editable v1.IncomeSourceEditable, expectedStatus ...int) v1.IncomeSourceResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	if editable.StartDate.IsZero() {
		editable.StartDate = timeNowUTC().AddDate(-1, 0, 0)
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/income/sources", editable)
	suite.assertHTTPStatus(&r, expectedStatus...)

	var response v1.IncomeSourceResponse
	suite.decodeResponse(&r, &response)

	return response
}

func (suite *TestSuiteStandard) TestIncomeSourceCRUD() {
	created := suite.createTestIncomeSource(v1.IncomeSourceEditable{
		Kind:   models.IncomeSalary,
		Name:   "Day job",
		Amount: decimal.NewFromInt(4200),
	})

	assert.True(suite.T(), created.Data.Fixed)
	assert.Equal(suite.T(), models.RecurrenceMonthly, created.Data.Recurrence)
	assert.True(suite.T(), created.Data.MonthlyAmount.Equal(decimal.NewFromInt(4200)))

	r := test.Request(suite.T(), http.MethodPatch, created.Data.Links.Self, v1.IncomeSourceEditable{
		Kind:      models.IncomeService,
		Name:      "Freelance",
		Amount:    decimal.NewFromInt(300),
		StartDate: created.Data.StartDate,
	})
	suite.assertHTTPStatus(&r, http.StatusOK)

	var updated v1.IncomeSourceResponse
	suite.decodeResponse(&r, &updated)
	assert.Equal(suite.T(), "Freelance", updated.Data.Name)
	assert.False(suite.T(), updated.Data.Fixed)

	r = test.Request(suite.T(), http.MethodDelete, created.Data.Links.Self, "")
	suite.assertHTTPStatus(&r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, created.Data.Links.Self, "")
	suite.assertHTTPStatus(&r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestIncomeSourceWeeklyNormalization() {
	created := suite.createTestIncomeSource(v1.IncomeSourceEditable{
		Kind:       models.IncomeService,
		Name:       "Gigs",
		Amount:     decimal.NewFromInt(300),
		Recurrence: models.RecurrenceWeekly,
	})

	// 300 per week times the 4.345 weeks of an average month
	assert.True(suite.T(), created.Data.MonthlyAmount.Equal(decimal.NewFromFloat(1303.5)), "monthly amount is %s", created.Data.MonthlyAmount)
}

func (suite *TestSuiteStandard) TestIncomeSourcePartialUpdate() {
	created := suite.createTestIncomeSource(v1.IncomeSourceEditable{
		Kind:   models.IncomeSalary,
		Name:   "Day job",
		Amount: decimal.NewFromInt(4200),
	})

	// A raise: only the amount changes, everything else stays
	r := test.Request(suite.T(), http.MethodPatch, created.Data.Links.Self, `{"amount": 5000}`)
	suite.assertHTTPStatus(&r, http.StatusOK)

	var updated v1.IncomeSourceResponse
	suite.decodeResponse(&r, &updated)
	assert.True(suite.T(), updated.Data.Amount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(suite.T(), models.IncomeSalary, updated.Data.Kind)
	assert.Equal(suite.T(), "Day job", updated.Data.Name)
	assert.Equal(suite.T(), models.RecurrenceMonthly, updated.Data.Recurrence)
	assert.False(suite.T(), updated.Data.StartDate.IsZero())
}

func (suite *TestSuiteStandard) TestIncomeSourceValidation() {
	suite.createTestIncomeSource(v1.IncomeSourceEditable{
		Kind:   "inheritance",
		Amount: decimal.NewFromInt(100),
	}, http.StatusBadRequest)

	suite.createTestIncomeSource(v1.IncomeSourceEditable{
		Kind: models.IncomeSalary,
	}, http.StatusBadRequest)

	suite.createTestIncomeSource(v1.IncomeSourceEditable{
		Kind:       models.IncomeSalary,
		Amount:     decimal.NewFromInt(100),
		Recurrence: models.RecurrenceYearly,
	}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestIncomeSourceFilterByKind() {
	suite.createTestIncomeSource(v1.IncomeSourceEditable{Kind: models.IncomeSalary, Name: "A", Amount: decimal.NewFromInt(4200)})
	suite.createTestIncomeSource(v1.IncomeSourceEditable{Kind: models.IncomeExtra, Name: "B", Amount: decimal.NewFromInt(500)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/income/sources?kind=extra", "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	var list v1.IncomeSourceListResponse
	suite.decodeResponse(&r, &list)

	if assert.Len(suite.T(), list.Data, 1) {
		assert.Equal(suite.T(), models.IncomeExtra, list.Data[0].Kind)
	}
}

func (suite *TestSuiteStandard) TestIncomeAnalytics() {
	suite.createTestIncomeSource(v1.IncomeSourceEditable{
		Kind:   models.IncomeSalary,
		Name:   "Day job",
		Amount: decimal.NewFromInt(4200),
	})
	suite.createTestIncomeSource(v1.IncomeSourceEditable{
		Kind:   models.IncomeVariable,
		Name:   "Commissions",
		Amount: decimal.NewFromInt(1800),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/income/analytics", "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	var response v1.IncomeAnalyticsResponse
	suite.decodeResponse(&r, &response)

	assert.True(suite.T(), response.Data.MonthlyTotal.Equal(decimal.NewFromInt(6000)))
	assert.True(suite.T(), response.Data.FixedIncome.Equal(decimal.NewFromInt(4200)))
	assert.True(suite.T(), response.Data.VariableIncome.Equal(decimal.NewFromInt(1800)))

	// 30% of the income is variable, the suggestion stays at the base
	assert.True(suite.T(), response.Data.SavingsSuggestionPercent.Equal(decimal.NewFromInt(10)))
	assert.True(suite.T(), response.Data.SuggestedSavingsValue.Equal(decimal.NewFromInt(600)))
}

func (suite *TestSuiteStandard) TestIncomeSnapshotReplacesSameMonth() {
	source := suite.createTestIncomeSource(v1.IncomeSourceEditable{
		Kind:   models.IncomeSalary,
		Name:   "Day job",
		Amount: decimal.NewFromInt(4200),
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/income/history", "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	var snapshot v1.IncomeSnapshotResponse
	suite.decodeResponse(&r, &snapshot)
	assert.True(suite.T(), snapshot.Data.Total.Equal(decimal.NewFromInt(4200)))
	assert.True(suite.T(), snapshot.Data.Month.Equal(types.MonthOf(timeNowUTC())))

	// Snapshotting again after a raise replaces the month instead of
	// adding a second row
	r = test.Request(suite.T(), http.MethodPatch, source.Data.Links.Self, v1.IncomeSourceEditable{
		Kind:      models.IncomeSalary,
		Name:      "Day job",
		Amount:    decimal.NewFromInt(5000),
		StartDate: source.Data.StartDate,
	})
	suite.assertHTTPStatus(&r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/income/history", "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/income/history", "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	var history v1.IncomeHistoryResponse
	suite.decodeResponse(&r, &history)

	if assert.Len(suite.T(), history.Data, 1) {
		assert.True(suite.T(), history.Data[0].Total.Equal(decimal.NewFromInt(5000)))
	}
}

func (suite *TestSuiteStandard) TestIncomeNoSession() {
	r := test.AnonymousRequest(suite.T(), http.MethodGet, "http://example.com/v1/income/analytics", "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	var analytics v1.IncomeAnalyticsResponse
	suite.decodeResponse(&r, &analytics)
	assert.True(suite.T(), analytics.Data.MonthlyTotal.IsZero())

	r = test.AnonymousRequest(suite.T(), http.MethodPost, "http://example.com/v1/income/history", "")
	suite.assertHTTPStatus(&r, http.StatusUnauthorized)
}
