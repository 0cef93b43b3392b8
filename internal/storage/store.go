// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"tuitiontrack/internal/models"
)

// ErrStudentNotFound is returned when an operation references a student
// that does not exist in the store.
var ErrStudentNotFound = errors.New("student not found")

// ErrDuplicatePayment is returned when a payment already exists for the
// same (student, month) pair.
var ErrDuplicatePayment = errors.New("payment already recorded for this month")

// Store defines the interface for student and payment storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateStudent persists a new student and populates its ID.
	CreateStudent(ctx context.Context, student *models.Student) error

	// GetStudent retrieves a student by ID.
	// Returns ErrStudentNotFound if no such student exists.
	GetStudent(ctx context.Context, studentID string) (*models.Student, error)

	// ListStudents retrieves all students in insertion order.
	ListStudents(ctx context.Context) ([]*models.Student, error)

	// CreatePayment persists a new payment and populates its ID.
	// Returns ErrStudentNotFound if the referenced student does not
	// exist, and ErrDuplicatePayment if a payment for the same
	// (student, month) pair is already recorded.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListPayments retrieves all payments in insertion order.
	ListPayments(ctx context.Context) ([]*models.Payment, error)

	// FindPayments retrieves the payments matching both studentID and
	// month exactly. Used for duplicate detection.
	FindPayments(ctx context.Context, studentID, month string) ([]*models.Payment, error)

	// ListPaymentsByStudent retrieves a student's payments ordered by
	// month label.
	ListPaymentsByStudent(ctx context.Context, studentID string) ([]*models.Payment, error)

	// ListPaymentRecords retrieves payments joined with their students,
	// ordered by payment date descending.
	ListPaymentRecords(ctx context.Context) ([]*models.PaymentRecord, error)

	// TotalCollected returns the sum of all payment amounts, 0 if none.
	TotalCollected(ctx context.Context) (int64, error)

	// UnpaidStudents retrieves the students with no payment recorded
	// for the given month label, in insertion order.
	UnpaidStudents(ctx context.Context, month string) ([]*models.Student, error)

	// Close releases any resources held by the store.
	Close() error
}
