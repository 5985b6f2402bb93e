package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InstallmentStatus is the payment status of an installment.
type InstallmentStatus string

const (
	InstallmentUpcoming InstallmentStatus = "upcoming"
	InstallmentPaid     InstallmentStatus = "paid"
)

// Installment is one payment of a debt goal. It can be registered as
// already paid or scheduled as upcoming.
type Installment struct {
	DefaultModel
	GoalID  uuid.UUID         `json:"goalId" gorm:"index"`
	Amount  decimal.Decimal   `json:"amount" gorm:"type:DECIMAL(20,8)" example:"400"`
	DueDate time.Time         `json:"dueDate" example:"2025-09-10T00:00:00Z"`
	Status  InstallmentStatus `json:"status" example:"upcoming"`
}

func (i *Installment) BeforeCreate(tx *gorm.DB) error {
	_ = i.DefaultModel.BeforeCreate(tx)

	var goal Goal
	err := tx.First(&goal, "id = ?", i.GoalID).Error
	if err != nil {
		return err
	}

	if goal.Kind != GoalDebt {
		return ErrInstallmentNotOnDebt
	}

	return nil
}

func (i *Installment) BeforeSave(_ *gorm.DB) error {
	if i.Status == "" {
		i.Status = InstallmentUpcoming
	}

	switch i.Status {
	case InstallmentUpcoming, InstallmentPaid:
	default:
		return ErrInstallmentStatusInvalid
	}

	if !i.Amount.IsPositive() {
		return ErrInstallmentAmountNotPositive
	}

	if i.DueDate.IsZero() {
		i.DueDate = time.Now().In(time.UTC)
	} else {
		i.DueDate = i.DueDate.In(time.UTC)
	}

	return nil
}

func (i *Installment) AfterFind(_ *gorm.DB) error {
	i.DueDate = i.DueDate.In(time.UTC)
	return nil
}
