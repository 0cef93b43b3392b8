// Package export renders payment records as CSV files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"tuitiontrack/internal/models"
)

// csvHeader is the fixed header row of a payments export.
var csvHeader = []string{"name", "month", "amount_paid", "payment_mode", "payment_date"}

// PaymentsCSV renders the given payment records as CSV, one row per
// record in the given order, preceded by the header row.
func PaymentsCSV(records []*models.PaymentRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.StudentName,
			r.Month,
			strconv.FormatInt(r.AmountPaid, 10),
			string(r.Mode),
			r.PaymentDate.Format("2006-01-02"),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("CSV write error: %w", err)
	}

	return buf.Bytes(), nil
}

// WritePaymentsCSV renders the records and writes them to path.
func WritePaymentsCSV(path string, records []*models.PaymentRecord) error {
	data, err := PaymentsCSV(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}
