package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// Duplicate payments for a (student_id, month) pair are rejected by the
// store at insert time rather than by a unique index, so the index below
// is non-unique — it only keeps the duplicate probe cheap.
const schema = `
CREATE TABLE IF NOT EXISTS students (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    grade TEXT,
    monthly_fee INTEGER NOT NULL,
    start_date TEXT NOT NULL,
    contact TEXT,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    student_id TEXT NOT NULL,
    month TEXT NOT NULL,
    amount_paid INTEGER NOT NULL,
    payment_date TEXT NOT NULL,
    payment_mode TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (student_id) REFERENCES students(id)
);

CREATE INDEX IF NOT EXISTS idx_payments_student_month ON payments(student_id, month);
CREATE INDEX IF NOT EXISTS idx_payments_payment_date ON payments(payment_date);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
