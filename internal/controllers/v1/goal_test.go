package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/centavo-app/backend/internal/controllers/v1"
	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestGoal(editable v1.GoalEditable, expectedStatus ...int) v1.GoalResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/goals", editable)
	suite.assertHTTPStatus(&r, expectedStatus...)

	var response v1.GoalResponse
	suite.decodeResponse(&r, &response)

	return response
}

func (suite *TestSuiteStandard) TestGoalCRUD() {
	created := suite.createTestGoal(v1.GoalEditable{
		Kind:          models.GoalSavings,
		Title:         "Emergency fund",
		TargetAmount:  decimal.NewFromInt(10000),
		CurrentAmount: decimal.NewFromInt(2500),
	})

	assert.True(suite.T(), created.Data.RemainingAmount.Equal(decimal.NewFromInt(7500)))
	assert.True(suite.T(), created.Data.ProgressPercent.Equal(decimal.NewFromInt(25)))

	r := test.Request(suite.T(), http.MethodPatch, created.Data.Links.Self, v1.GoalEditable{
		Title:         "Emergency fund",
		TargetAmount:  decimal.NewFromInt(10000),
		CurrentAmount: decimal.NewFromInt(5000),
	})
	suite.assertHTTPStatus(&r, http.StatusOK)

	var updated v1.GoalResponse
	suite.decodeResponse(&r, &updated)
	assert.True(suite.T(), updated.Data.ProgressPercent.Equal(decimal.NewFromInt(50)))

	r = test.Request(suite.T(), http.MethodDelete, created.Data.Links.Self, "")
	suite.assertHTTPStatus(&r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestGoalKindIsFixed() {
	created := suite.createTestGoal(v1.GoalEditable{
		Kind:         models.GoalSavings,
		Title:        "Trip",
		TargetAmount: decimal.NewFromInt(3000),
	})

	// Attempting to change the kind is ignored
	r := test.Request(suite.T(), http.MethodPatch, created.Data.Links.Self, v1.GoalEditable{
		Kind:         models.GoalInvestment,
		Title:        "Trip",
		TargetAmount: decimal.NewFromInt(3000),
	})
	suite.assertHTTPStatus(&r, http.StatusOK)

	var updated v1.GoalResponse
	suite.decodeResponse(&r, &updated)
	assert.Equal(suite.T(), models.GoalSavings, updated.Data.Kind)
}

func (suite *TestSuiteStandard) TestGoalPartialUpdate() {
	goal := suite.createTestGoal(v1.GoalEditable{
		Kind:          models.GoalDebt,
		Style:         models.DebtFinancing,
		Title:         "Car financing",
		CurrentAmount: decimal.NewFromInt(400),
		TargetAmount:  decimal.NewFromInt(1200),
	})

	// Fields absent from the body keep their stored values
	r := test.Request(suite.T(), http.MethodPatch, goal.Data.Links.Self, `{"targetAmount": 1500}`)
	suite.assertHTTPStatus(&r, http.StatusOK)

	var updated v1.GoalResponse
	suite.decodeResponse(&r, &updated)
	assert.True(suite.T(), updated.Data.TargetAmount.Equal(decimal.NewFromInt(1500)))
	assert.True(suite.T(), updated.Data.CurrentAmount.Equal(decimal.NewFromInt(400)), "current amount is %s", updated.Data.CurrentAmount)
	assert.Equal(suite.T(), models.DebtFinancing, updated.Data.Style)
	assert.Equal(suite.T(), "Car financing", updated.Data.Title)
}

func (suite *TestSuiteStandard) TestGoalValidation() {
	suite.createTestGoal(v1.GoalEditable{
		Kind:         "retirement",
		TargetAmount: decimal.NewFromInt(100),
	}, http.StatusBadRequest)

	suite.createTestGoal(v1.GoalEditable{
		Kind: models.GoalSavings,
	}, http.StatusBadRequest)

	// Debts need a valid style
	suite.createTestGoal(v1.GoalEditable{
		Kind:         models.GoalDebt,
		TargetAmount: decimal.NewFromInt(100),
	}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGoalSavingsView() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/income/sources", v1.IncomeSourceEditable{
		Kind:      models.IncomeSalary,
		Name:      "Day job",
		Amount:    decimal.NewFromInt(5000),
		StartDate: timeNowUTC().AddDate(-1, 0, 0),
	})
	suite.assertHTTPStatus(&r, http.StatusCreated)

	created := suite.createTestGoal(v1.GoalEditable{
		Kind:         models.GoalSavings,
		Title:        "Trip",
		TargetAmount: decimal.NewFromInt(3000),
	})

	// All income is fixed: 10% of 5000 fund 500 per month, so the
	// goal takes six months
	if assert.NotNil(suite.T(), created.Data.Savings) && assert.NotNil(suite.T(), created.Data.Savings.FundingMonths) {
		assert.True(suite.T(), created.Data.Savings.FundingMonths.Equal(decimal.NewFromInt(6)), "funding months is %s", created.Data.Savings.FundingMonths)
	}

	assert.Nil(suite.T(), created.Data.Debt)
	assert.Nil(suite.T(), created.Data.Investment)
}

func (suite *TestSuiteStandard) TestGoalInvestmentView() {
	contribution := decimal.NewFromInt(500)

	created := suite.createTestGoal(v1.GoalEditable{
		Kind:          models.GoalInvestment,
		Title:         "Index fund",
		CurrentAmount: decimal.NewFromInt(1000),
		TargetAmount:  decimal.NewFromInt(5000),
		Contribution:  &contribution,
	})

	investment := created.Data.Investment
	if !assert.NotNil(suite.T(), investment) {
		return
	}

	if assert.Len(suite.T(), investment.ForwardSeries, 8) {
		assert.True(suite.T(), investment.ForwardSeries[0].Equal(decimal.NewFromInt(1000)))
		assert.True(suite.T(), investment.ForwardSeries[7].Equal(decimal.NewFromInt(4500)))
	}

	if assert.NotNil(suite.T(), investment.MonthsToGoal) {
		assert.True(suite.T(), investment.MonthsToGoal.Equal(decimal.NewFromInt(8)))
	}

	// One start estimate per comparison window
	assert.Len(suite.T(), investment.WindowStarts, 6)
	assert.True(suite.T(), investment.WindowStarts["1m"].Equal(decimal.NewFromInt(500)))
	assert.True(suite.T(), investment.WindowStarts["1d"].Equal(decimal.NewFromInt(1000)))
}

func (suite *TestSuiteStandard) TestGoalInvestmentWithoutContribution() {
	created := suite.createTestGoal(v1.GoalEditable{
		Kind:          models.GoalInvestment,
		Title:         "Dormant",
		CurrentAmount: decimal.NewFromInt(1000),
		TargetAmount:  decimal.NewFromInt(5000),
	})

	investment := created.Data.Investment
	if !assert.NotNil(suite.T(), investment) {
		return
	}

	// No contribution rate: no trajectory and no time to goal
	assert.Empty(suite.T(), investment.ForwardSeries)
	assert.Nil(suite.T(), investment.MonthsToGoal)
}

func (suite *TestSuiteStandard) TestGoalDebtView() {
	created := suite.createTestGoal(v1.GoalEditable{
		Kind:          models.GoalDebt,
		Style:         models.DebtFinancing,
		Title:         "Car",
		CurrentAmount: decimal.NewFromInt(400),
		TargetAmount:  decimal.NewFromInt(1200),
	})

	if assert.NotNil(suite.T(), created.Data.Debt) {
		assert.Equal(suite.T(), 0, created.Data.Debt.TotalCount)
		assert.Nil(suite.T(), created.Data.Debt.NextInstallment)
		assert.Nil(suite.T(), created.Data.Debt.EstimatedCompletion)
	}

	assert.NotEmpty(suite.T(), created.Data.Links.Installments)

	// Register two upcoming installments
	for _, due := range []string{"2025-09-10", "2025-10-10"} {
		r := test.Request(suite.T(), http.MethodPost, created.Data.Links.Installments, v1.InstallmentEditable{
			Amount: decimal.NewFromInt(400),
			Date:   due,
		})
		suite.assertHTTPStatus(&r, http.StatusCreated)
	}

	r := test.Request(suite.T(), http.MethodGet, created.Data.Links.Self, "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	var fetched v1.GoalResponse
	suite.decodeResponse(&r, &fetched)

	if assert.NotNil(suite.T(), fetched.Data.Debt) {
		assert.Equal(suite.T(), 2, fetched.Data.Debt.TotalCount)
		assert.Equal(suite.T(), 0, fetched.Data.Debt.PaidCount)

		if assert.NotNil(suite.T(), fetched.Data.Debt.NextInstallment) {
			assert.True(suite.T(), fetched.Data.Debt.NextInstallment.DueDate.Equal(time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)))
		}

		// Two monthly installments: completion is one month after the first
		if assert.NotNil(suite.T(), fetched.Data.Debt.EstimatedCompletion) {
			assert.True(suite.T(), fetched.Data.Debt.EstimatedCompletion.Equal(time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)))
		}
	}
}

func (suite *TestSuiteStandard) TestGoalFilterByKind() {
	suite.createTestGoal(v1.GoalEditable{Kind: models.GoalSavings, Title: "A", TargetAmount: decimal.NewFromInt(100)})
	suite.createTestGoal(v1.GoalEditable{Kind: models.GoalDebt, Style: models.DebtLoan, Title: "B", TargetAmount: decimal.NewFromInt(100)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/goals?kind=debt", "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	var list v1.GoalListResponse
	suite.decodeResponse(&r, &list)

	if assert.Len(suite.T(), list.Data, 1) {
		assert.Equal(suite.T(), models.GoalDebt, list.Data[0].Kind)
	}
}

func (suite *TestSuiteStandard) TestGoalNoSession() {
	r := test.AnonymousRequest(suite.T(), http.MethodPost, "http://example.com/v1/goals", v1.GoalEditable{
		Kind:         models.GoalSavings,
		TargetAmount: decimal.NewFromInt(100),
	})
	suite.assertHTTPStatus(&r, http.StatusUnauthorized)

	r = test.AnonymousRequest(suite.T(), http.MethodGet, "http://example.com/v1/goals", "")
	suite.assertHTTPStatus(&r, http.StatusOK)

	var list v1.GoalListResponse
	suite.decodeResponse(&r, &list)
	assert.Empty(suite.T(), list.Data)
}
