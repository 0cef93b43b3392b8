package calculator

import (
	"testing"
	"time"

	"tuitiontrack/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestElapsedMonths(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		now   time.Time
		want  int
	}{
		{
			name:  "start in current month counts as one",
			start: date(2025, time.April, 1),
			now:   date(2025, time.April, 15),
			want:  1,
		},
		{
			name:  "three full months later",
			start: date(2025, time.January, 1),
			now:   date(2025, time.April, 15),
			want:  4,
		},
		{
			name:  "across a year boundary",
			start: date(2024, time.November, 20),
			now:   date(2025, time.February, 1),
			want:  4,
		},
		{
			name:  "day of month is ignored",
			start: date(2025, time.March, 31),
			now:   date(2025, time.April, 1),
			want:  2,
		},
		{
			name:  "future start is negative",
			start: date(2025, time.June, 1),
			now:   date(2025, time.April, 15),
			want:  -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ElapsedMonths(tt.start, tt.now); got != tt.want {
				t.Errorf("ElapsedMonths(%v, %v) = %d, want %d", tt.start, tt.now, got, tt.want)
			}
		})
	}
}

func TestPendingMonths(t *testing.T) {
	tests := []struct {
		name    string
		elapsed int
		paid    int
		want    int
	}{
		{"nothing paid", 4, 0, 4},
		{"partially paid", 4, 1, 3},
		{"fully paid", 4, 4, 0},
		{"paid ahead clamps to zero", 4, 6, 0},
		{"future start clamps to zero", -1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PendingMonths(tt.elapsed, tt.paid); got != tt.want {
				t.Errorf("PendingMonths(%d, %d) = %d, want %d", tt.elapsed, tt.paid, got, tt.want)
			}
		})
	}
}

func TestPeriodLabel(t *testing.T) {
	if got := PeriodLabel(date(2025, time.November, 7)); got != "Nov 2025" {
		t.Errorf("PeriodLabel = %q, want %q", got, "Nov 2025")
	}
}

func TestSummarize(t *testing.T) {
	student := &models.Student{
		ID:         "s1",
		Name:       "Asha",
		MonthlyFee: 1500,
		StartDate:  date(2025, time.January, 1),
	}

	t.Run("one payment of four elapsed months", func(t *testing.T) {
		payments := []*models.Payment{
			{StudentID: "s1", Month: "Jan 2025", AmountPaid: 1500},
		}

		sum := Summarize(student, payments, date(2025, time.April, 15))

		if sum.TotalPaid != 1500 {
			t.Errorf("TotalPaid = %d, want 1500", sum.TotalPaid)
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
		if sum.FullyPaid {
			t.Error("expected FullyPaid to be false")
		}
	})

	t.Run("zero payments pends the full elapsed count", func(t *testing.T) {
		sum := Summarize(student, nil, date(2025, time.April, 15))

		if sum.TotalPaid != 0 {
			t.Errorf("TotalPaid = %d, want 0", sum.TotalPaid)
		}
		if sum.MonthsPaid != 0 {
			t.Errorf("MonthsPaid = %d, want 0", sum.MonthsPaid)
		}
		if sum.PendingMonths != 4 {
			t.Errorf("PendingMonths = %d, want 4", sum.PendingMonths)
		}
	})

	t.Run("all months paid is fully paid", func(t *testing.T) {
		payments := []*models.Payment{
			{Month: "Jan 2025", AmountPaid: 1500},
			{Month: "Feb 2025", AmountPaid: 1500},
			{Month: "Mar 2025", AmountPaid: 1500},
			{Month: "Apr 2025", AmountPaid: 1500},
		}

		sum := Summarize(student, payments, date(2025, time.April, 15))

		if sum.PendingMonths != 0 {
			t.Errorf("PendingMonths = %d, want 0", sum.PendingMonths)
		}
		if !sum.FullyPaid {
			t.Error("expected FullyPaid to be true")
		}
	})
}
