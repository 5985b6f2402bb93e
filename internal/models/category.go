package models

import (
	"strings"

	"github.com/centavo-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetCategory groups the expenses of one month under a spending limit.
type BudgetCategory struct {
	DefaultModel
	UserID string          `json:"-" gorm:"index"`
	Title  string          `json:"title" example:"Groceries"`
	Limit  decimal.Decimal `json:"limit" gorm:"type:DECIMAL(20,8)" example:"800"`
	Month  types.Month     `json:"month"`

	// Spent is derived from the expenses of the category, it is never stored.
	Spent decimal.Decimal `json:"spent" gorm:"-" example:"512.43"`
}

func (c *BudgetCategory) BeforeSave(_ *gorm.DB) error {
	c.Title = strings.TrimSpace(c.Title)

	if c.Limit.IsNegative() {
		return ErrCategoryLimitNegative
	}

	return nil
}

// AfterDelete removes the expenses of a deleted category. Soft deletes
// do not trigger the ON DELETE CASCADE of the schema, so the cascade
// has to be replayed here.
func (c *BudgetCategory) AfterDelete(tx *gorm.DB) error {
	return tx.Where("category_id = ?", c.ID).Delete(&BudgetExpense{}).Error
}

// SpentAmount sums all expenses booked on the category in its month.
func (c BudgetCategory) SpentAmount(db *gorm.DB) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Table("budget_expenses").
		Select("SUM(amount)").
		Where("category_id = ?", c.ID).
		Where("date >= ? AND date < ?", c.Month.Start(), c.Month.AddDate(0, 1).Start()).
		Where("deleted_at IS NULL").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return sum.Decimal, nil
}

// WithSpent returns the category with the derived spent amount set.
func (c BudgetCategory) WithSpent(db *gorm.DB) (BudgetCategory, error) {
	spent, err := c.SpentAmount(db)
	if err != nil {
		return BudgetCategory{}, err
	}

	c.Spent = spent
	return c, nil
}
