// Package calculator holds the pure fee arithmetic: elapsed and pending
// month counts and per-student payment summaries.
package calculator

import (
	"time"

	"tuitiontrack/internal/models"
)

// periodLayout formats a time as a period label, e.g. "Nov 2025".
const periodLayout = "Jan 2006"

// PeriodLabel returns the period label for the month t falls in.
func PeriodLabel(t time.Time) string {
	return t.Format(periodLayout)
}

// ElapsedMonths returns the number of calendar months from start through
// now, inclusive on both ends: a start date in the current month counts
// as one elapsed month. Day-of-month is ignored. The result is negative
// when start is in a future month.
func ElapsedMonths(start, now time.Time) int {
	return (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month()) + 1
}

// PendingMonths returns how many elapsed months have no payment,
// clamped at zero so overpayment or a future start date reads as fully
// paid rather than a negative balance.
func PendingMonths(elapsed, monthsPaid int) int {
	pending := elapsed - monthsPaid
	if pending < 0 {
		return 0
	}
	return pending
}

// Summarize computes a student's payment standing as of now.
// payments is the student's full history; its order is preserved.
func Summarize(student *models.Student, payments []*models.Payment, now time.Time) *models.StudentSummary {
	var total int64
	for _, p := range payments {
		total += p.AmountPaid
	}

	elapsed := ElapsedMonths(student.StartDate, now)
	pending := PendingMonths(elapsed, len(payments))

	return &models.StudentSummary{
		Student:       student,
		Payments:      payments,
		TotalPaid:     total,
		MonthsPaid:    len(payments),
		ElapsedMonths: elapsed,
		PendingMonths: pending,
		FullyPaid:     pending == 0,
	}
}
