package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrSubscriptionPriceNotPositive  = errors.New("subscription prices must be larger than zero")
	ErrSubscriptionRecurrenceInvalid = errors.New("subscriptions can only recur monthly, yearly or weekly")

	ErrCategoryLimitNegative    = errors.New("the spending limit of a category can not be negative")
	ErrExpenseAmountNotPositive = errors.New("expense amounts must be larger than zero")

	ErrGoalKindInvalid       = errors.New("the goal kind must be one of: savings, debt, investment")
	ErrGoalTargetNotPositive = errors.New("goal target amounts must be larger than zero")
	ErrDebtStyleInvalid      = errors.New("the debt style must be one of: loan, credit_card, financing")

	ErrInstallmentAmountNotPositive = errors.New("installment amounts must be larger than zero")
	ErrInstallmentStatusInvalid     = errors.New("the installment status must be either upcoming or paid")
	ErrInstallmentNotOnDebt         = errors.New("installments can only be added to debt goals")
	ErrInstallmentAlreadyPaid       = errors.New("this installment is already paid")

	ErrIncomeKindInvalid       = errors.New("the income kind must be one of: salary, company, service, variable, extra")
	ErrIncomeAmountNotPositive = errors.New("income amounts must be larger than zero")
	ErrIncomeRecurrenceInvalid = errors.New("income can only recur monthly, weekly, biweekly or once")
	ErrIncomeEndBeforeStart    = errors.New("the end date of an income source can not be before its start date")
	ErrSnapshotMonthNotUnique  = errors.New("you can not create multiple snapshots for the same month")
)
