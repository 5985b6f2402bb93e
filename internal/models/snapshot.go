package models

import (
	"github.com/centavo-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IncomeSnapshot is the persisted income history for one month.
// There is at most one snapshot per user and month.
type IncomeSnapshot struct {
	DefaultModel
	UserID   string          `json:"-" gorm:"uniqueIndex:income_snapshot_user_month"`
	Month    types.Month     `json:"month" gorm:"uniqueIndex:income_snapshot_user_month"`
	Total    decimal.Decimal `json:"total" gorm:"type:DECIMAL(20,8)" example:"5400"`
	Fixed    decimal.Decimal `json:"fixed" gorm:"type:DECIMAL(20,8)" example:"4200"`
	Variable decimal.Decimal `json:"variable" gorm:"type:DECIMAL(20,8)" example:"1200"`
}

// FinanceSnapshot is the persisted monthly summary of the finance facade.
// There is at most one snapshot per user and month.
type FinanceSnapshot struct {
	DefaultModel
	UserID   string          `json:"-" gorm:"uniqueIndex:finance_snapshot_user_month"`
	Month    types.Month     `json:"month" gorm:"uniqueIndex:finance_snapshot_user_month"`
	Income   decimal.Decimal `json:"income" gorm:"type:DECIMAL(20,8)" example:"5400"`
	Outflows decimal.Decimal `json:"outflows" gorm:"type:DECIMAL(20,8)" example:"3870.5"`
	Balance  decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)" example:"1529.5"`
}

// UpsertIncomeSnapshot creates the snapshot for its user and month or,
// if one already exists, replaces its amounts.
func UpsertIncomeSnapshot(db *gorm.DB, snapshot *IncomeSnapshot) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"total", "fixed", "variable", "updated_at"}),
	}).Create(snapshot).Error
}

// UpsertFinanceSnapshot creates the snapshot for its user and month or,
// if one already exists, replaces its amounts.
func UpsertFinanceSnapshot(db *gorm.DB, snapshot *FinanceSnapshot) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"income", "outflows", "balance", "updated_at"}),
	}).Create(snapshot).Error
}
