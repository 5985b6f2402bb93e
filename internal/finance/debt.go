package finance

import (
	"time"

	"github.com/centavo-app/backend/internal/models"
	"github.com/shopspring/decimal"
)

// DebtSummary is the derived state of a debt and its installments.
type DebtSummary struct {
	PaidCount       int
	TotalCount      int
	NextInstallment *models.Installment
	NextIsLate      bool
	RemainingAmount decimal.Decimal
	ProgressPercent decimal.Decimal
}

// Debt derives the ledger view of a debt goal from its installments.
//
// The next installment is the unpaid one with the earliest due date. It
// is late when its due date lies strictly before now.
func Debt(goal models.Goal, installments []models.Installment, now time.Time) DebtSummary {
	summary := DebtSummary{
		TotalCount:      len(installments),
		RemainingAmount: goal.RemainingAmount(),
		ProgressPercent: goal.ProgressPercent(),
	}

	for i := range installments {
		if installments[i].Status == models.InstallmentPaid {
			summary.PaidCount++
			continue
		}

		if summary.NextInstallment == nil || installments[i].DueDate.Before(summary.NextInstallment.DueDate) {
			summary.NextInstallment = &installments[i]
		}
	}

	if summary.NextInstallment != nil {
		summary.NextIsLate = summary.NextInstallment.DueDate.Before(now)
	}

	return summary
}

// CompletionDate estimates when a debt with the given number of
// installments is paid off: the first due date advanced by count-1
// calendar months. Months keep their natural length, there is no fixed
// 30 day increment.
func CompletionDate(firstDue time.Time, count int) time.Time {
	if count < 1 {
		return firstDue
	}

	return firstDue.AddDate(0, count-1, 0)
}

// ParsePaymentDate parses a manually entered payment date. Both ISO
// dates and the day/month/year form are accepted, anything unparseable
// falls back to now.
func ParsePaymentDate(value string, now time.Time) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	return now
}
