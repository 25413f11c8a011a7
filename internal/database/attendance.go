package database

import (
	"context"
	"fmt"
	"time"

	"hotelier/internal/models"
)

// MarkAttendance records a day's attendance for an employee. Re-marking the
// same day overwrites the previous status instead of failing, so the UI can
// correct mistakes.
func (db *DB) MarkAttendance(ctx context.Context, a *models.Attendance) error {
	query := `INSERT INTO staff_attendance (emp_id, attendance_date, status, marked_at)
              VALUES (?, ?, ?, ?)
              ON CONFLICT(emp_id, attendance_date) DO UPDATE SET status = excluded.status, marked_at = excluded.marked_at`
	a.MarkedAt = time.Now()
	result, err := db.db.ExecContext(ctx, query,
		a.EmpID, a.Date.Format(models.DateLayout), a.Status, a.MarkedAt)
	if err != nil {
		return fmt.Errorf("failed to mark attendance: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		a.ID = id
	}
	return nil
}

func (db *DB) DeleteAttendance(ctx context.Context, empID int64, date time.Time) error {
	query := `DELETE FROM staff_attendance WHERE emp_id = ? AND attendance_date = ?`
	result, err := db.db.ExecContext(ctx, query, empID, date.Format(models.DateLayout))
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrAttendanceNotFound
	}
	return nil
}

// ListAttendance returns all attendance rows for the month containing the
// given date.
func (db *DB) ListAttendance(ctx context.Context, month time.Time) ([]*models.Attendance, error) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	query := `SELECT a.attendance_id, a.emp_id, s.emp_name, a.attendance_date, a.status, a.marked_at
              FROM staff_attendance a
              JOIN staff s ON a.emp_id = s.emp_id
              WHERE a.attendance_date >= ? AND a.attendance_date < ?
              ORDER BY a.attendance_date DESC, s.emp_name`
	rows, err := db.db.QueryContext(ctx, query,
		first.Format(models.DateLayout), next.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(&a.ID, &a.EmpID, &a.EmpName, &a.Date, &a.Status, &a.MarkedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, &a)
	}
	return records, rows.Err()
}

// AttendanceStats aggregates per-employee present and absent counts for the
// month containing the given date.
func (db *DB) AttendanceStats(ctx context.Context, month time.Time) ([]*models.AttendanceStats, error) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	query := `SELECT s.emp_id, s.emp_name,
              COALESCE(SUM(CASE WHEN a.status = 'present' THEN 1 ELSE 0 END), 0),
              COALESCE(SUM(CASE WHEN a.status = 'absent' THEN 1 ELSE 0 END), 0),
              COUNT(a.attendance_id)
              FROM staff s
              LEFT JOIN staff_attendance a ON a.emp_id = s.emp_id
                  AND a.attendance_date >= ? AND a.attendance_date < ?
              GROUP BY s.emp_id, s.emp_name
              ORDER BY s.emp_name`
	rows, err := db.db.QueryContext(ctx, query,
		first.Format(models.DateLayout), next.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance stats: %w", err)
	}
	defer rows.Close()

	var stats []*models.AttendanceStats
	for rows.Next() {
		var s models.AttendanceStats
		if err := rows.Scan(&s.EmpID, &s.EmpName, &s.PresentDays, &s.AbsentDays, &s.TotalMarked); err != nil {
			return nil, fmt.Errorf("failed to scan attendance stats: %w", err)
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}
