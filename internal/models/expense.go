package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetExpense is a single expense booked on a category.
// Expenses are immutable, they are only ever created and deleted.
type BudgetExpense struct {
	DefaultModel
	UserID      string          `json:"-" gorm:"index"`
	CategoryID  uuid.UUID       `json:"categoryId" gorm:"index"`
	Category    BudgetCategory  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"54.3"`
	Date        time.Time       `json:"date" example:"2025-08-12T00:00:00Z"`
	Description string          `json:"description" example:"Street market"`
}

func (e *BudgetExpense) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	// The category must exist and belong to the same user. A category
	// of another user behaves like a category that does not exist, so
	// foreign writes can never show up in the owner's spent amount.
	return tx.First(&BudgetCategory{}, "id = ? AND user_id = ?", e.CategoryID, e.UserID).Error
}

func (e *BudgetExpense) BeforeSave(_ *gorm.DB) error {
	e.Description = strings.TrimSpace(e.Description)

	if !e.Amount.IsPositive() {
		return ErrExpenseAmountNotPositive
	}

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	return nil
}

func (e *BudgetExpense) AfterFind(_ *gorm.DB) error {
	e.Date = e.Date.In(time.UTC)
	return nil
}
