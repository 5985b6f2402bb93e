package models_test

import (
	"github.com/centavo-app/backend/internal/models"
	"github.com/centavo-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestUpsertIncomeSnapshot() {
	month := types.NewMonth(2025, 8)

	first := models.IncomeSnapshot{
		UserID:   "user",
		Month:    month,
		Total:    decimal.NewFromInt(5000),
		Fixed:    decimal.NewFromInt(4000),
		Variable: decimal.NewFromInt(1000),
	}
	assert.Nil(suite.T(), models.UpsertIncomeSnapshot(models.DB, &first))

	// A second snapshot for the same month replaces the amounts
	second := models.IncomeSnapshot{
		UserID:   "user",
		Month:    month,
		Total:    decimal.NewFromInt(5400),
		Fixed:    decimal.NewFromInt(4200),
		Variable: decimal.NewFromInt(1200),
	}
	assert.Nil(suite.T(), models.UpsertIncomeSnapshot(models.DB, &second))

	var snapshots []models.IncomeSnapshot
	assert.Nil(suite.T(), models.DB.Where("user_id = ?", "user").Find(&snapshots).Error)

	if assert.Len(suite.T(), snapshots, 1) {
		assert.True(suite.T(), snapshots[0].Total.Equal(decimal.NewFromInt(5400)), "total is %s", snapshots[0].Total)
	}
}

func (suite *TestSuiteStandard) TestIncomeSnapshotPerUser() {
	month := types.NewMonth(2025, 8)

	for _, userID := range []string{"user-a", "user-b"} {
		snapshot := models.IncomeSnapshot{
			UserID: userID,
			Month:  month,
			Total:  decimal.NewFromInt(5000),
		}
		assert.Nil(suite.T(), models.UpsertIncomeSnapshot(models.DB, &snapshot))
	}

	var count int64
	assert.Nil(suite.T(), models.DB.Model(&models.IncomeSnapshot{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(2), count)
}

func (suite *TestSuiteStandard) TestUpsertFinanceSnapshot() {
	month := types.NewMonth(2025, 8)

	first := models.FinanceSnapshot{
		UserID:   "user",
		Month:    month,
		Income:   decimal.NewFromInt(5000),
		Outflows: decimal.NewFromInt(3000),
		Balance:  decimal.NewFromInt(2000),
	}
	assert.Nil(suite.T(), models.UpsertFinanceSnapshot(models.DB, &first))

	second := models.FinanceSnapshot{
		UserID:   "user",
		Month:    month,
		Income:   decimal.NewFromInt(5400),
		Outflows: decimal.NewFromInt(3400),
		Balance:  decimal.NewFromInt(2000),
	}
	assert.Nil(suite.T(), models.UpsertFinanceSnapshot(models.DB, &second))

	var snapshots []models.FinanceSnapshot
	assert.Nil(suite.T(), models.DB.Where("user_id = ?", "user").Find(&snapshots).Error)

	if assert.Len(suite.T(), snapshots, 1) {
		assert.True(suite.T(), snapshots[0].Income.Equal(decimal.NewFromInt(5400)))
		assert.True(suite.T(), snapshots[0].Outflows.Equal(decimal.NewFromInt(3400)))
	}
}
