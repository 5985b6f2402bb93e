package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Subscription is a recurring commitment to a paid service.
type Subscription struct {
	DefaultModel
	UserID      string          `json:"-" gorm:"index"`
	Name        string          `json:"name" example:"Video streaming"`
	Price       decimal.Decimal `json:"price" gorm:"type:DECIMAL(20,8)" example:"39.9"`
	Recurrence  Recurrence      `json:"recurrence" example:"monthly"`
	NextBilling time.Time       `json:"nextBilling" example:"2025-09-05T00:00:00Z"`
}

func (s *Subscription) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)

	if s.Recurrence == "" {
		s.Recurrence = RecurrenceMonthly
	}

	switch s.Recurrence {
	case RecurrenceMonthly, RecurrenceYearly, RecurrenceWeekly:
	default:
		return ErrSubscriptionRecurrenceInvalid
	}

	if s.NextBilling.IsZero() {
		s.NextBilling = time.Now().In(time.UTC)
	} else {
		s.NextBilling = s.NextBilling.In(time.UTC)
	}

	return nil
}

func (s *Subscription) AfterSave(_ *gorm.DB) error {
	if !s.Price.IsPositive() {
		return ErrSubscriptionPriceNotPositive
	}

	return nil
}

func (s *Subscription) AfterFind(_ *gorm.DB) error {
	s.NextBilling = s.NextBilling.In(time.UTC)
	return nil
}
