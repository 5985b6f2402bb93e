package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GoalKind discriminates the goal variants.
type GoalKind string

const (
	GoalSavings    GoalKind = "savings"
	GoalDebt       GoalKind = "debt"
	GoalInvestment GoalKind = "investment"
)

// DebtStyle describes what kind of debt a debt goal tracks.
type DebtStyle string

const (
	DebtLoan       DebtStyle = "loan"
	DebtCreditCard DebtStyle = "credit_card"
	DebtFinancing  DebtStyle = "financing"
)

// Goal is a savings goal, a debt or an investment. The Kind field
// discriminates the variants, variant specific fields are only set
// for their kind.
type Goal struct {
	DefaultModel
	UserID        string          `json:"-" gorm:"index"`
	Kind          GoalKind        `json:"kind" gorm:"index" example:"debt"`
	Title         string          `json:"title" example:"Car financing"`
	CurrentAmount decimal.Decimal `json:"currentAmount" gorm:"type:DECIMAL(20,8)" example:"400"`
	TargetAmount  decimal.Decimal `json:"targetAmount" gorm:"type:DECIMAL(20,8)" example:"1200"`

	// Debt only
	Style DebtStyle `json:"style,omitempty" example:"financing"`

	// Investment only
	Contribution *decimal.Decimal `json:"contribution,omitempty" gorm:"type:DECIMAL(20,8)" example:"500"`
	EndDate      *time.Time       `json:"endDate,omitempty" example:"2027-12-01T00:00:00Z"`

	Installments []Installment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

var hundred = decimal.NewFromInt(100)

// RemainingAmount is the amount still missing to reach the target.
// It is never negative, overshooting the target clamps to zero.
func (g Goal) RemainingAmount() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}

	return remaining
}

// ProgressPercent is the progress towards the target, clamped to [0, 100].
func (g Goal) ProgressPercent() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}

	percent := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
	if percent.IsNegative() {
		return decimal.Zero
	}
	if percent.GreaterThan(hundred) {
		return hundred
	}

	return percent
}

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Title = strings.TrimSpace(g.Title)

	switch g.Kind {
	case GoalSavings, GoalInvestment:
	case GoalDebt:
		switch g.Style {
		case DebtLoan, DebtCreditCard, DebtFinancing:
		default:
			return ErrDebtStyleInvalid
		}
	default:
		return ErrGoalKindInvalid
	}

	return nil
}

func (g *Goal) AfterSave(_ *gorm.DB) error {
	if !g.TargetAmount.IsPositive() {
		return ErrGoalTargetNotPositive
	}

	return nil
}

// AfterDelete removes the installments of a deleted debt. Soft deletes
// do not trigger the ON DELETE CASCADE of the schema, so the cascade
// has to be replayed here.
func (g *Goal) AfterDelete(tx *gorm.DB) error {
	return tx.Where("goal_id = ?", g.ID).Delete(&Installment{}).Error
}
