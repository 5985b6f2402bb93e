package models_test

import (
	"time"

	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestCategory(category models.BudgetCategory) models.BudgetCategory {
	if category.UserID == "" {
		category.UserID = "user"
	}
	if category.Month.IsZero() {
		category.Month = types.NewMonth(2025, 8)
	}

	err := models.DB.Create(&category).Error
	if err != nil {
		suite.Assert().FailNowf("Category could not be saved", "Error: %s, Category: %#v", err.Error(), category)
	}

	return category
}

func (suite *TestSuiteStandard) TestCategoryLimitMustNotBeNegative() {
	err := models.DB.Create(&models.BudgetCategory{
		UserID: "user",
		Title:  "Groceries",
		Limit:  decimal.NewFromInt(-1),
		Month:  types.NewMonth(2025, 8),
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryLimitNegative)

	// A limit of zero means "track only" and is allowed
	suite.createTestCategory(models.BudgetCategory{Title: "Track only"})
}

func (suite *TestSuiteStandard) TestCategorySpentAmount() {
	category := suite.createTestCategory(models.BudgetCategory{
		Title: "Groceries",
		Limit: decimal.NewFromInt(800),
		Month: types.NewMonth(2025, 8),
	})

	inMonth := time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC)
	outOfMonth := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	for _, expense := range []models.BudgetExpense{
		{UserID: "user", CategoryID: category.ID, Amount: decimal.NewFromFloat(54.30), Date: inMonth},
		{UserID: "user", CategoryID: category.ID, Amount: decimal.NewFromFloat(45.70), Date: inMonth},
		// A different month does not count
		{UserID: "user", CategoryID: category.ID, Amount: decimal.NewFromInt(500), Date: outOfMonth},
	} {
		expense := expense
		assert.Nil(suite.T(), models.DB.Create(&expense).Error)
	}

	spent, err := category.SpentAmount(models.DB)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), spent.Equal(decimal.NewFromInt(100)), "spent is %s", spent)
}

func (suite *TestSuiteStandard) TestCategorySpentAmountIgnoresDeleted() {
	category := suite.createTestCategory(models.BudgetCategory{
		Title: "Groceries",
		Month: types.NewMonth(2025, 8),
	})

	expense := models.BudgetExpense{
		UserID:     "user",
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(100),
		Date:       time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC),
	}
	assert.Nil(suite.T(), models.DB.Create(&expense).Error)
	assert.Nil(suite.T(), models.DB.Delete(&expense).Error)

	spent, err := category.SpentAmount(models.DB)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), spent.IsZero(), "spent is %s", spent)
}

func (suite *TestSuiteStandard) TestCategoryDeleteCascadesToExpenses() {
	category := suite.createTestCategory(models.BudgetCategory{Title: "Groceries"})

	expense := models.BudgetExpense{
		UserID:     "user",
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(100),
		Date:       time.Now(),
	}
	assert.Nil(suite.T(), models.DB.Create(&expense).Error)

	assert.Nil(suite.T(), models.DB.Delete(&category).Error)

	var count int64
	assert.Nil(suite.T(), models.DB.Model(&models.BudgetExpense{}).Where("category_id = ?", category.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestExpenseNeedsCategory() {
	err := models.DB.Create(&models.BudgetExpense{
		UserID: "user",
		Amount: decimal.NewFromInt(100),
		Date:   time.Now(),
	}).Error
	assert.NotNil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestExpenseAmountMustBePositive() {
	category := suite.createTestCategory(models.BudgetCategory{Title: "Groceries"})

	err := models.DB.Create(&models.BudgetExpense{
		UserID:     "user",
		CategoryID: category.ID,
		Amount:     decimal.Zero,
		Date:       time.Now(),
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrExpenseAmountNotPositive)
}
