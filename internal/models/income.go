package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeKind is the origin of an income source.
type IncomeKind string

const (
	IncomeSalary   IncomeKind = "salary"
	IncomeCompany  IncomeKind = "company"
	IncomeService  IncomeKind = "service"
	IncomeVariable IncomeKind = "variable"
	IncomeExtra    IncomeKind = "extra"
)

// IncomeSource is one stream of income, fixed or variable.
type IncomeSource struct {
	DefaultModel
	UserID     string          `json:"-" gorm:"index"`
	Kind       IncomeKind      `json:"kind" example:"salary"`
	Name       string          `json:"name" example:"Day job"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"4200"`
	Recurrence Recurrence      `json:"recurrence" example:"monthly"`
	StartDate  time.Time       `json:"startDate" example:"2024-01-01T00:00:00Z"`
	EndDate    *time.Time      `json:"endDate,omitempty"`
}

// ActiveAt reports whether the source pays out at the given time.
func (s IncomeSource) ActiveAt(t time.Time) bool {
	if s.StartDate.After(t) {
		return false
	}

	return s.EndDate == nil || !s.EndDate.Before(t)
}

func (s *IncomeSource) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)

	switch s.Kind {
	case IncomeSalary, IncomeCompany, IncomeService, IncomeVariable, IncomeExtra:
	default:
		return ErrIncomeKindInvalid
	}

	if s.Recurrence == "" {
		s.Recurrence = RecurrenceMonthly
	}

	switch s.Recurrence {
	case RecurrenceMonthly, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceOnce:
	default:
		return ErrIncomeRecurrenceInvalid
	}

	if !s.Amount.IsPositive() {
		return ErrIncomeAmountNotPositive
	}

	if s.StartDate.IsZero() {
		s.StartDate = time.Now().In(time.UTC)
	} else {
		s.StartDate = s.StartDate.In(time.UTC)
	}

	if s.EndDate != nil {
		end := s.EndDate.In(time.UTC)
		if end.Before(s.StartDate) {
			return ErrIncomeEndBeforeStart
		}
		s.EndDate = &end
	}

	return nil
}

func (s *IncomeSource) AfterFind(_ *gorm.DB) error {
	s.StartDate = s.StartDate.In(time.UTC)

	if s.EndDate != nil {
		end := s.EndDate.In(time.UTC)
		s.EndDate = &end
	}

	return nil
}
