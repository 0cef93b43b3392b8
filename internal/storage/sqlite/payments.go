package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tuitiontrack/internal/models"
	"tuitiontrack/internal/storage"
)

// CreatePayment inserts a new payment to the database.
//
// The referenced student must exist and no payment may already be
// recorded for the same (student, month) pair. Both checks run inside
// the insert transaction so a concurrent writer cannot slip a second
// payment in between check and insert.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	// Generate ID if not set
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Referential check
	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM students WHERE id = ?", payment.StudentID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", storage.ErrStudentNotFound, payment.StudentID)
	}
	if err != nil {
		return fmt.Errorf("failed to check student existence: %w", err)
	}

	// Duplicate check
	var count int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM payments WHERE student_id = ? AND month = ?",
		payment.StudentID, payment.Month,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate payment: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: student %s, month %q", storage.ErrDuplicatePayment, payment.StudentID, payment.Month)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (id, student_id, month, amount_paid, payment_date, payment_mode, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.StudentID, payment.Month, payment.AmountPaid,
		formatDate(payment.PaymentDate), string(payment.Mode), payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListPayments retrieves all payments in insertion order.
func (s *SQLiteStore) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, student_id, month, amount_paid, payment_date, payment_mode, created_at
		 FROM payments ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

// FindPayments retrieves the payments matching both studentID and month
// exactly.
func (s *SQLiteStore) FindPayments(ctx context.Context, studentID, month string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, student_id, month, amount_paid, payment_date, payment_mode, created_at
		 FROM payments WHERE student_id = ? AND month = ?`,
		studentID, month,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find payments: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

// ListPaymentsByStudent retrieves a student's payments ordered by month
// label. The order is lexical on the free-text label, not calendar order.
func (s *SQLiteStore) ListPaymentsByStudent(ctx context.Context, studentID string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, student_id, month, amount_paid, payment_date, payment_mode, created_at
		 FROM payments WHERE student_id = ? ORDER BY month`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by student: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

// ListPaymentRecords retrieves payments joined with their students,
// newest payment date first.
func (s *SQLiteStore) ListPaymentRecords(ctx context.Context) ([]*models.PaymentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.name, p.month, p.amount_paid, p.payment_mode, p.payment_date
		 FROM payments p
		 JOIN students s ON p.student_id = s.id
		 ORDER BY p.payment_date DESC, p.rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment records: %w", err)
	}
	defer rows.Close()

	var records []*models.PaymentRecord
	for rows.Next() {
		record := &models.PaymentRecord{}
		var mode, paymentDate string
		if err := rows.Scan(&record.StudentName, &record.Month, &record.AmountPaid, &mode, &paymentDate); err != nil {
			return nil, fmt.Errorf("failed to scan payment record: %w", err)
		}
		date, err := parseDate(paymentDate)
		if err != nil {
			return nil, err
		}
		record.Mode = models.PaymentMode(mode)
		record.PaymentDate = date
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment records: %w", err)
	}

	return records, nil
}

// TotalCollected returns the sum of all payment amounts.
func (s *SQLiteStore) TotalCollected(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount_paid), 0) FROM payments",
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return total, nil
}

func collectPayments(rows *sql.Rows) ([]*models.Payment, error) {
	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		var mode, paymentDate string
		if err := rows.Scan(&payment.ID, &payment.StudentID, &payment.Month,
			&payment.AmountPaid, &paymentDate, &mode, &payment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		date, err := parseDate(paymentDate)
		if err != nil {
			return nil, err
		}
		payment.PaymentDate = date
		payment.Mode = models.PaymentMode(mode)
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
