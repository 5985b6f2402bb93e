package models_test

import (
	"strings"
	"time"

	"github.com/centavo-app/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestSubscriptionTrimWhitespace() {
	subscription := models.Subscription{
		UserID:      "user",
		Name:        "  Streaming service \t",
		Price:       decimal.NewFromFloat(39.90),
		NextBilling: time.Now(),
	}

	err := models.DB.Create(&subscription).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), strings.TrimSpace("  Streaming service \t"), subscription.Name)
}

func (suite *TestSuiteStandard) TestSubscriptionDefaultsToMonthly() {
	subscription := models.Subscription{
		UserID:      "user",
		Name:        "Cloud",
		Price:       decimal.NewFromInt(10),
		NextBilling: time.Now(),
	}

	err := models.DB.Create(&subscription).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.RecurrenceMonthly, subscription.Recurrence)
}

func (suite *TestSuiteStandard) TestSubscriptionPriceMustBePositive() {
	subscription := models.Subscription{
		UserID:      "user",
		Name:        "Freebie",
		Price:       decimal.Zero,
		NextBilling: time.Now(),
	}

	err := models.DB.Create(&subscription).Error
	assert.ErrorIs(suite.T(), err, models.ErrSubscriptionPriceNotPositive)
}

func (suite *TestSuiteStandard) TestSubscriptionRecurrenceSubset() {
	for _, recurrence := range []models.Recurrence{models.RecurrenceMonthly, models.RecurrenceYearly, models.RecurrenceWeekly} {
		subscription := models.Subscription{
			UserID:      "user",
			Name:        "ok-" + string(recurrence),
			Price:       decimal.NewFromInt(10),
			Recurrence:  recurrence,
			NextBilling: time.Now(),
		}

		assert.Nil(suite.T(), models.DB.Create(&subscription).Error)
	}

	for _, recurrence := range []models.Recurrence{models.RecurrenceBiweekly, models.RecurrenceOnce, "daily"} {
		subscription := models.Subscription{
			UserID:      "user",
			Name:        "invalid-" + string(recurrence),
			Price:       decimal.NewFromInt(10),
			Recurrence:  recurrence,
			NextBilling: time.Now(),
		}

		err := models.DB.Create(&subscription).Error
		assert.ErrorIs(suite.T(), err, models.ErrSubscriptionRecurrenceInvalid, "recurrence %s", recurrence)
	}
}
