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

// CreateStudent inserts a new student into the database.
func (s *SQLiteStore) CreateStudent(ctx context.Context, student *models.Student) error {
	// Generate ID if not set
	if student.ID == "" {
		student.ID = uuid.New().String()
	}
	if student.CreatedAt == 0 {
		student.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO students (id, name, grade, monthly_fee, start_date, contact, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		student.ID, student.Name, student.Grade, student.MonthlyFee,
		formatDate(student.StartDate), student.Contact, student.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert student: %w", err)
	}

	return nil
}

// GetStudent retrieves a student by ID.
func (s *SQLiteStore) GetStudent(ctx context.Context, studentID string) (*models.Student, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, grade, monthly_fee, start_date, contact, created_at
		 FROM students WHERE id = ?`,
		studentID,
	)

	student, err := scanStudent(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", storage.ErrStudentNotFound, studentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	return student, nil
}

// ListStudents retrieves all students in insertion order.
func (s *SQLiteStore) ListStudents(ctx context.Context) ([]*models.Student, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, grade, monthly_fee, start_date, contact, created_at
		 FROM students ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	return collectStudents(rows)
}

// UnpaidStudents retrieves the students with no payment recorded for the
// given month label.
func (s *SQLiteStore) UnpaidStudents(ctx context.Context, month string) ([]*models.Student, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, grade, monthly_fee, start_date, contact, created_at
		 FROM students
		 WHERE id NOT IN (SELECT DISTINCT student_id FROM payments WHERE month = ?)
		 ORDER BY rowid`,
		month,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpaid students: %w", err)
	}
	defer rows.Close()

	return collectStudents(rows)
}

// scanner abstracts *sql.Row and *sql.Rows for scanStudent.
type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(sc scanner) (*models.Student, error) {
	student := &models.Student{}
	var grade, contact sql.NullString
	var startDate string

	if err := sc.Scan(&student.ID, &student.Name, &grade, &student.MonthlyFee,
		&startDate, &contact, &student.CreatedAt); err != nil {
		return nil, err
	}

	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	student.StartDate = start
	if grade.Valid {
		student.Grade = grade.String
	}
	if contact.Valid {
		student.Contact = contact.String
	}

	return student, nil
}

func collectStudents(rows *sql.Rows) ([]*models.Student, error) {
	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", err)
	}
	return students, nil
}
