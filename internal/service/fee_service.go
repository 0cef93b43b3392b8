// Package service implements the domain operations of the fee tracker:
// enrolling students, recording payments, and the aggregate views the
// presentation layer displays.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tuitiontrack/internal/calculator"
	"tuitiontrack/internal/models"
	"tuitiontrack/internal/storage"
)

// FeeService implements the domain operations over a storage backend.
type FeeService struct {
	store storage.Store

	// now supplies the wall clock for payment dates, the current period
	// and elapsed-month counts. Tests substitute a fixed clock.
	now func() time.Time
}

// NewFeeService creates a new FeeService with the given storage backend.
func NewFeeService(store storage.Store) *FeeService {
	return &FeeService{store: store, now: time.Now}
}

// AddStudentInput holds the fields for enrolling a student.
type AddStudentInput struct {
	Name       string
	Grade      string
	MonthlyFee int64
	StartDate  time.Time
	Contact    string
}

// AddStudent enrolls a new student and returns the stored record with
// its assigned ID.
func (s *FeeService) AddStudent(ctx context.Context, in AddStudentInput) (*models.Student, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.MonthlyFee < 0 {
		return nil, &ValidationError{Field: "monthly fee", Reason: "must not be negative"}
	}
	if in.StartDate.IsZero() {
		return nil, &ValidationError{Field: "start date", Reason: "must be set"}
	}

	student := &models.Student{
		Name:       strings.TrimSpace(in.Name),
		Grade:      in.Grade,
		MonthlyFee: in.MonthlyFee,
		StartDate:  in.StartDate,
		Contact:    in.Contact,
	}

	if err := s.store.CreateStudent(ctx, student); err != nil {
		slog.Error("AddStudent failed", "name", student.Name, "error", err)
		return nil, err
	}

	slog.Info("Student added", "student_id", student.ID, "name", student.Name)
	return student, nil
}

// GetStudent retrieves a student by ID.
func (s *FeeService) GetStudent(ctx context.Context, studentID string) (*models.Student, error) {
	return s.store.GetStudent(ctx, studentID)
}

// ListStudents retrieves all students in enrollment order.
func (s *FeeService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return s.store.ListStudents(ctx)
}

// RecordPaymentInput holds the fields for recording a payment.
type RecordPaymentInput struct {
	StudentID string
	Month     string
	Amount    int64
	Mode      models.PaymentMode
}

// RecordPayment records one month's payment for a student. A payment
// already recorded for the same (student, month) pair fails with
// DuplicatePaymentError and leaves the existing record untouched.
// The payment date is the current date at call time.
func (s *FeeService) RecordPayment(ctx context.Context, in RecordPaymentInput) (*models.Payment, error) {
	if strings.TrimSpace(in.Month) == "" {
		return nil, &ValidationError{Field: "month", Reason: "must not be empty"}
	}
	if in.Amount < 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if !in.Mode.Valid() {
		return nil, &ValidationError{Field: "payment mode", Reason: "must be Cash, UPI or Bank Transfer"}
	}

	// Referential check at the operation boundary; the store re-checks
	// inside the insert transaction.
	if _, err := s.store.GetStudent(ctx, in.StudentID); err != nil {
		return nil, err
	}

	// Pre-insert duplicate query.
	existing, err := s.store.FindPayments(ctx, in.StudentID, in.Month)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		slog.Warn("Duplicate payment rejected", "student_id", in.StudentID, "month", in.Month)
		return nil, &DuplicatePaymentError{StudentID: in.StudentID, Month: in.Month}
	}

	payment := &models.Payment{
		StudentID:   in.StudentID,
		Month:       in.Month,
		AmountPaid:  in.Amount,
		PaymentDate: s.now(),
		Mode:        in.Mode,
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		if errors.Is(err, storage.ErrDuplicatePayment) {
			// Lost the race between the pre-insert query and the insert.
			return nil, &DuplicatePaymentError{StudentID: in.StudentID, Month: in.Month}
		}
		slog.Error("RecordPayment failed", "student_id", in.StudentID, "month", in.Month, "error", err)
		return nil, err
	}

	slog.Info("Payment recorded",
		"payment_id", payment.ID,
		"student_id", payment.StudentID,
		"month", payment.Month,
		"amount", payment.AmountPaid,
	)
	return payment, nil
}

// DefaultPaymentInput returns a RecordPaymentInput prefilled for the
// presentation layer: the current period label and the student's monthly
// fee. Both remain overridable by the caller.
func (s *FeeService) DefaultPaymentInput(ctx context.Context, studentID string) (RecordPaymentInput, error) {
	student, err := s.store.GetStudent(ctx, studentID)
	if err != nil {
		return RecordPaymentInput{}, err
	}
	return RecordPaymentInput{
		StudentID: student.ID,
		Month:     s.CurrentPeriod(),
		Amount:    student.MonthlyFee,
		Mode:      models.ModeCash,
	}, nil
}

// ListPayments retrieves the full payment ledger joined with student
// names, newest payment first.
func (s *FeeService) ListPayments(ctx context.Context) ([]*models.PaymentRecord, error) {
	return s.store.ListPaymentRecords(ctx)
}

// CurrentPeriod returns the period label of the current month,
// e.g. "Nov 2025".
func (s *FeeService) CurrentPeriod() string {
	return calculator.PeriodLabel(s.now())
}

// UnpaidForPeriod retrieves the students with no payment recorded for
// the given period label. Returns an empty slice when every student has
// paid or no students exist.
func (s *FeeService) UnpaidForPeriod(ctx context.Context, period string) ([]*models.Student, error) {
	return s.store.UnpaidStudents(ctx, period)
}

// UnpaidForCurrentPeriod retrieves the students with no payment recorded
// for the current month.
func (s *FeeService) UnpaidForCurrentPeriod(ctx context.Context) ([]*models.Student, error) {
	return s.UnpaidForPeriod(ctx, s.CurrentPeriod())
}

// TotalCollected returns the all-time sum of recorded payments.
func (s *FeeService) TotalCollected(ctx context.Context) (int64, error) {
	return s.store.TotalCollected(ctx)
}

// StudentSummary computes a student's payment history and standing:
// total paid, months paid, and months still pending since the start
// date. History is ordered by month label.
func (s *FeeService) StudentSummary(ctx context.Context, studentID string) (*models.StudentSummary, error) {
	student, err := s.store.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	payments, err := s.store.ListPaymentsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return calculator.Summarize(student, payments, s.now()), nil
}
