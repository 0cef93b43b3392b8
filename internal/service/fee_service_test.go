package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tuitiontrack/internal/models"
	"tuitiontrack/internal/storage"
	"tuitiontrack/internal/storage/sqlite"
)

// newTestService returns a service over a fresh database with the clock
// pinned to 2025-04-15.
func newTestService(t *testing.T) *FeeService {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	svc := NewFeeService(store)
	svc.now = func() time.Time {
		return time.Date(2025, time.April, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func addTestStudent(t *testing.T, svc *FeeService, name string) *models.Student {
	t.Helper()

	student, err := svc.AddStudent(context.Background(), AddStudentInput{
		Name:       name,
		Grade:      "Grade 5",
		MonthlyFee: 1500,
		StartDate:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		Contact:    "9999999999",
	})
	if err != nil {
		t.Fatalf("AddStudent failed: %v", err)
	}
	return student
}

func TestAddStudent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("valid input returns a stored student", func(t *testing.T) {
		first := addTestStudent(t, svc, "Asha")
		if first.ID == "" {
			t.Fatal("expected an assigned ID")
		}

		second := addTestStudent(t, svc, "Ravi")
		if second.ID == first.ID {
			t.Errorf("expected distinct IDs, both got %s", first.ID)
		}

		got, err := svc.GetStudent(ctx, first.ID)
		if err != nil {
			t.Fatalf("GetStudent failed: %v", err)
		}
		if got.Name != "Asha" {
			t.Errorf("Name = %s, want Asha", got.Name)
		}
	})

	t.Run("invalid input is rejected", func(t *testing.T) {
		start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		tests := []struct {
			name string
			in   AddStudentInput
		}{
			{"empty name", AddStudentInput{Name: "", MonthlyFee: 1500, StartDate: start}},
			{"blank name", AddStudentInput{Name: "   ", MonthlyFee: 1500, StartDate: start}},
			{"negative fee", AddStudentInput{Name: "Asha", MonthlyFee: -1, StartDate: start}},
			{"missing start date", AddStudentInput{Name: "Asha", MonthlyFee: 1500}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.AddStudent(ctx, tt.in)
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Errorf("expected ValidationError, got %v", err)
				}
			})
		}
	})
}

func TestRecordPayment(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	student := addTestStudent(t, svc, "Asha")

	t.Run("first payment succeeds", func(t *testing.T) {
		payment, err := svc.RecordPayment(ctx, RecordPaymentInput{
			StudentID: student.ID,
			Month:     "Jan 2025",
			Amount:    1500,
			Mode:      models.ModeCash,
		})
		if err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		if payment.ID == "" {
			t.Error("expected an assigned payment ID")
		}
		// Payment date comes from the injected clock.
		if got := payment.PaymentDate.Format("2006-01-02"); got != "2025-04-15" {
			t.Errorf("PaymentDate = %s, want 2025-04-15", got)
		}
	})

	t.Run("duplicate month is rejected and leaves the record untouched", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, RecordPaymentInput{
			StudentID: student.ID,
			Month:     "Jan 2025",
			Amount:    1500,
			Mode:      models.ModeUPI,
		})
		var dErr *DuplicatePaymentError
		if !errors.As(err, &dErr) {
			t.Fatalf("expected DuplicatePaymentError, got %v", err)
		}
		if !errors.Is(err, storage.ErrDuplicatePayment) {
			t.Error("expected the error to match storage.ErrDuplicatePayment")
		}

		sum, err := svc.StudentSummary(ctx, student.ID)
		if err != nil {
			t.Fatalf("StudentSummary failed: %v", err)
		}
		if sum.MonthsPaid != 1 {
			t.Errorf("MonthsPaid = %d, want 1", sum.MonthsPaid)
		}
		if sum.Payments[0].Mode != models.ModeCash {
			t.Errorf("stored mode = %s, want Cash", sum.Payments[0].Mode)
		}
	})

	t.Run("unknown student is rejected", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, RecordPaymentInput{
			StudentID: "no-such-id",
			Month:     "Jan 2025",
			Amount:    1500,
			Mode:      models.ModeCash,
		})
		if !errors.Is(err, storage.ErrStudentNotFound) {
			t.Errorf("expected ErrStudentNotFound, got %v", err)
		}
	})

	t.Run("invalid input is rejected", func(t *testing.T) {
		tests := []struct {
			name string
			in   RecordPaymentInput
		}{
			{"empty month", RecordPaymentInput{StudentID: student.ID, Month: "", Amount: 1500, Mode: models.ModeCash}},
			{"negative amount", RecordPaymentInput{StudentID: student.ID, Month: "Feb 2025", Amount: -1, Mode: models.ModeCash}},
			{"unknown mode", RecordPaymentInput{StudentID: student.ID, Month: "Feb 2025", Amount: 1500, Mode: "Cheque"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.RecordPayment(ctx, tt.in)
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Errorf("expected ValidationError, got %v", err)
				}
			})
		}
	})
}

func TestDefaultPaymentInput(t *testing.T) {
	svc := newTestService(t)
	student := addTestStudent(t, svc, "Asha")

	in, err := svc.DefaultPaymentInput(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("DefaultPaymentInput failed: %v", err)
	}

	if in.Month != "Apr 2025" {
		t.Errorf("Month = %q, want %q", in.Month, "Apr 2025")
	}
	if in.Amount != student.MonthlyFee {
		t.Errorf("Amount = %d, want %d", in.Amount, student.MonthlyFee)
	}
	if in.Mode != models.ModeCash {
		t.Errorf("Mode = %s, want Cash", in.Mode)
	}
}

func TestUnpaidForPeriod(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("no students yields an empty result", func(t *testing.T) {
		unpaid, err := svc.UnpaidForPeriod(ctx, "Jan 2025")
		if err != nil {
			t.Fatalf("UnpaidForPeriod failed: %v", err)
		}
		if len(unpaid) != 0 {
			t.Errorf("expected no unpaid students, got %d", len(unpaid))
		}
	})

	student := addTestStudent(t, svc, "Asha")

	t.Run("student with no payment is unpaid", func(t *testing.T) {
		unpaid, err := svc.UnpaidForPeriod(ctx, "Jan 2025")
		if err != nil {
			t.Fatalf("UnpaidForPeriod failed: %v", err)
		}
		if len(unpaid) != 1 || unpaid[0].ID != student.ID {
			t.Fatalf("expected Asha unpaid for Jan 2025, got %d students", len(unpaid))
		}
	})

	t.Run("a matching payment removes the student", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, RecordPaymentInput{
			StudentID: student.ID,
			Month:     "Jan 2025",
			Amount:    1500,
			Mode:      models.ModeCash,
		})
		if err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}

		unpaid, err := svc.UnpaidForPeriod(ctx, "Jan 2025")
		if err != nil {
			t.Fatalf("UnpaidForPeriod failed: %v", err)
		}
		if len(unpaid) != 0 {
			t.Errorf("expected no unpaid students for Jan 2025, got %d", len(unpaid))
		}
	})

	t.Run("other months are unaffected", func(t *testing.T) {
		unpaid, err := svc.UnpaidForPeriod(ctx, "Feb 2025")
		if err != nil {
			t.Fatalf("UnpaidForPeriod failed: %v", err)
		}
		if len(unpaid) != 1 {
			t.Errorf("expected Asha unpaid for Feb 2025, got %d students", len(unpaid))
		}
	})

	t.Run("current period comes from the clock", func(t *testing.T) {
		if got := svc.CurrentPeriod(); got != "Apr 2025" {
			t.Fatalf("CurrentPeriod = %q, want %q", got, "Apr 2025")
		}

		unpaid, err := svc.UnpaidForCurrentPeriod(ctx)
		if err != nil {
			t.Fatalf("UnpaidForCurrentPeriod failed: %v", err)
		}
		if len(unpaid) != 1 {
			t.Errorf("expected Asha unpaid for Apr 2025, got %d students", len(unpaid))
		}
	})
}

func TestTotalCollected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	total, err := svc.TotalCollected(ctx)
	if err != nil {
		t.Fatalf("TotalCollected failed: %v", err)
	}
	if total != 0 {
		t.Errorf("TotalCollected = %d, want 0", total)
	}

	student := addTestStudent(t, svc, "Asha")
	if _, err := svc.RecordPayment(ctx, RecordPaymentInput{
		StudentID: student.ID,
		Month:     "Jan 2025",
		Amount:    1500,
		Mode:      models.ModeCash,
	}); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	total, err = svc.TotalCollected(ctx)
	if err != nil {
		t.Fatalf("TotalCollected failed: %v", err)
	}
	if total != 1500 {
		t.Errorf("TotalCollected = %d, want 1500", total)
	}
}

func TestStudentSummary(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("one payment since January as of mid-April", func(t *testing.T) {
		student := addTestStudent(t, svc, "Asha")
		if _, err := svc.RecordPayment(ctx, RecordPaymentInput{
			StudentID: student.ID,
			Month:     "Jan 2025",
			Amount:    1500,
			Mode:      models.ModeCash,
		}); err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}

		sum, err := svc.StudentSummary(ctx, student.ID)
		if err != nil {
			t.Fatalf("StudentSummary failed: %v", err)
		}

		if sum.MonthsPaid != 1 {
			t.Errorf("MonthsPaid = %d, want 1", sum.MonthsPaid)
		}
		if sum.ElapsedMonths != 4 {
			t.Errorf("ElapsedMonths = %d, want 4", sum.ElapsedMonths)
		}
		if sum.PendingMonths != 3 {
			t.Errorf("PendingMonths = %d, want 3", sum.PendingMonths)
		}
		if sum.TotalPaid != 1500 {
			t.Errorf("TotalPaid = %d, want 1500", sum.TotalPaid)
		}
		if sum.FullyPaid {
			t.Error("expected FullyPaid to be false")
		}
	})

	t.Run("start in the current month with no payments pends one month", func(t *testing.T) {
		student, err := svc.AddStudent(ctx, AddStudentInput{
			Name:       "Ravi",
			MonthlyFee: 2000,
			StartDate:  time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("AddStudent failed: %v", err)
		}

		sum, err := svc.StudentSummary(ctx, student.ID)
		if err != nil {
			t.Fatalf("StudentSummary failed: %v", err)
		}

		if sum.MonthsPaid != 0 {
			t.Errorf("MonthsPaid = %d, want 0", sum.MonthsPaid)
		}
		if len(sum.Payments) != 0 {
			t.Errorf("expected empty history, got %d payments", len(sum.Payments))
		}
		if sum.PendingMonths != 1 {
			t.Errorf("PendingMonths = %d, want 1", sum.PendingMonths)
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.StudentSummary(ctx, "no-such-id")
		if !errors.Is(err, storage.ErrStudentNotFound) {
			t.Errorf("expected ErrStudentNotFound, got %v", err)
		}
	})
}
