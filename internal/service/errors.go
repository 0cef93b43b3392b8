package service

import (
	"fmt"

	"tuitiontrack/internal/storage"
)

// ValidationError reports missing or invalid input to a domain operation.
// No write is performed when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DuplicatePaymentError reports that a payment already exists for the
// (student, month) pair. The existing record is left untouched.
type DuplicatePaymentError struct {
	StudentID string
	Month     string
}

func (e *DuplicatePaymentError) Error() string {
	return fmt.Sprintf("payment for student %s already recorded for %q", e.StudentID, e.Month)
}

// Unwrap lets callers match with errors.Is(err, storage.ErrDuplicatePayment).
func (e *DuplicatePaymentError) Unwrap() error {
	return storage.ErrDuplicatePayment
}
