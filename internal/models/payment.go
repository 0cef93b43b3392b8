package models

import "time"

// PaymentMode is the method a payment was made with.
type PaymentMode string

const (
	ModeCash         PaymentMode = "Cash"
	ModeUPI          PaymentMode = "UPI"
	ModeBankTransfer PaymentMode = "Bank Transfer"
)

// PaymentModes lists every accepted payment mode.
func PaymentModes() []PaymentMode {
	return []PaymentMode{ModeCash, ModeUPI, ModeBankTransfer}
}

// Valid reports whether m is one of the accepted payment modes.
func (m PaymentMode) Valid() bool {
	switch m {
	case ModeCash, ModeUPI, ModeBankTransfer:
		return true
	}
	return false
}

// Payment represents one month's fee payment for a student.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format),
	// assigned by the store on creation.
	ID string

	// StudentID references the student this payment is for.
	StudentID string

	// Month is the free-text period label the payment covers
	// (e.g. "Nov 2025"). Not a validated date.
	Month string

	// AmountPaid is the paid amount in whole currency units.
	AmountPaid int64

	// PaymentDate is the date the payment was recorded.
	PaymentDate time.Time

	// Mode is how the payment was made.
	Mode PaymentMode

	// CreatedAt is the Unix timestamp when the record was created.
	CreatedAt int64
}

// PaymentRecord is one row of the payment ledger: a payment joined with
// the student it belongs to. Rows are ordered by payment date, newest
// first.
type PaymentRecord struct {
	StudentName string
	Month       string
	AmountPaid  int64
	Mode        PaymentMode
	PaymentDate time.Time
}

// StudentSummary is the computed payment standing for one student.
type StudentSummary struct {
	Student *Student

	// Payments is the student's payment history, ordered by month label.
	Payments []*Payment

	// TotalPaid is the sum of AmountPaid across the history.
	TotalPaid int64

	// MonthsPaid is the number of payments recorded.
	MonthsPaid int

	// ElapsedMonths is the number of calendar months from the student's
	// start date through the current date, inclusive on both ends.
	ElapsedMonths int

	// PendingMonths is the number of elapsed months with no payment,
	// never negative.
	PendingMonths int

	// FullyPaid reports whether no months are pending.
	FullyPaid bool
}
