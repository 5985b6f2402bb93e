package models_test

import (
	"time"

	"github.com/centavo-app/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestGoal(goal models.Goal) models.Goal {
	if goal.UserID == "" {
		goal.UserID = "user"
	}

	err := models.DB.Create(&goal).Error
	if err != nil {
		suite.Assert().FailNowf("Goal could not be saved", "Error: %s, Goal: %#v", err.Error(), goal)
	}

	return goal
}

func (suite *TestSuiteStandard) TestGoalKindValidation() {
	err := models.DB.Create(&models.Goal{
		UserID:       "user",
		Kind:         "retirement",
		TargetAmount: decimal.NewFromInt(100),
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGoalKindInvalid)
}

func (suite *TestSuiteStandard) TestGoalDebtNeedsStyle() {
	err := models.DB.Create(&models.Goal{
		UserID:       "user",
		Kind:         models.GoalDebt,
		TargetAmount: decimal.NewFromInt(100),
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrDebtStyleInvalid)

	suite.createTestGoal(models.Goal{
		Kind:         models.GoalDebt,
		Style:        models.DebtLoan,
		TargetAmount: decimal.NewFromInt(100),
	})
}

func (suite *TestSuiteStandard) TestGoalTargetMustBePositive() {
	err := models.DB.Create(&models.Goal{
		UserID: "user",
		Kind:   models.GoalSavings,
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGoalTargetNotPositive)
}

func (suite *TestSuiteStandard) TestGoalProgress() {
	goal := models.Goal{
		CurrentAmount: decimal.NewFromInt(400),
		TargetAmount:  decimal.NewFromInt(1200),
	}

	assert.True(suite.T(), goal.RemainingAmount().Equal(decimal.NewFromInt(800)))

	progress := goal.ProgressPercent()
	expected := decimal.NewFromInt(400).Div(decimal.NewFromInt(1200)).Mul(decimal.NewFromInt(100))
	assert.True(suite.T(), progress.Equal(expected), "progress is %s", progress)
}

func (suite *TestSuiteStandard) TestGoalProgressClamped() {
	overshot := models.Goal{
		CurrentAmount: decimal.NewFromInt(1500),
		TargetAmount:  decimal.NewFromInt(1200),
	}

	assert.True(suite.T(), overshot.ProgressPercent().Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), overshot.RemainingAmount().IsZero())

	// A target of zero never divides
	assert.True(suite.T(), models.Goal{CurrentAmount: decimal.NewFromInt(10)}.ProgressPercent().IsZero())
}

func (suite *TestSuiteStandard) TestGoalDeleteCascadesToInstallments() {
	goal := suite.createTestGoal(models.Goal{
		Kind:         models.GoalDebt,
		Style:        models.DebtFinancing,
		TargetAmount: decimal.NewFromInt(1200),
	})

	installment := models.Installment{
		GoalID:  goal.ID,
		Amount:  decimal.NewFromInt(400),
		DueDate: time.Now(),
	}
	assert.Nil(suite.T(), models.DB.Create(&installment).Error)

	assert.Nil(suite.T(), models.DB.Delete(&goal).Error)

	var count int64
	assert.Nil(suite.T(), models.DB.Model(&models.Installment{}).Where("goal_id = ?", goal.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}
