package models

// Recurrence is the interval in which an amount repeats.
type Recurrence string

const (
	RecurrenceMonthly  Recurrence = "monthly"
	RecurrenceYearly   Recurrence = "yearly"
	RecurrenceWeekly   Recurrence = "weekly"
	RecurrenceBiweekly Recurrence = "biweekly"
	RecurrenceOnce     Recurrence = "once"
)
