package models

import "time"

// Student represents an enrolled tuition student.
type Student struct {
	// ID is the unique identifier for the student (UUID format),
	// assigned by the store on creation.
	ID string

	// Name is the student's display name. Must be non-empty.
	Name string

	// Grade is the student's grade or class (free text, optional).
	Grade string

	// MonthlyFee is the monthly tuition fee in whole currency units.
	// Must be non-negative.
	MonthlyFee int64

	// StartDate is the date fee obligations begin. Only the calendar
	// date matters; time-of-day is ignored.
	StartDate time.Time

	// Contact is optional contact information (phone, email).
	Contact string

	// CreatedAt is the Unix timestamp when the record was created.
	CreatedAt int64
}
