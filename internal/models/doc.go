// Package models defines the core domain models for the tuition fee tracker.
//
// Two records are persisted:
//   - Student: an enrolled tuition student with a monthly fee
//   - Payment: one month's fee payment for a student
//
// Both are append-only: there are no update or delete operations. A Payment
// always references an existing Student, and at most one Payment exists per
// (student, month) pair — the store rejects duplicates.
//
// Derived views (PaymentRecord, StudentSummary) are computed from the two
// records and never stored.
package models
