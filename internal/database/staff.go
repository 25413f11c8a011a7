package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/models"
)

const staffDetailColumns = `s.emp_id, s.emp_name, s.staff_type_id, s.shift_id,
               s.id_card_no, s.address, s.contact_no, s.salary,
               st.staff_type, sh.shift, sh.shift_timing`

const staffDetailJoins = `FROM staff s
        JOIN staff_type st ON s.staff_type_id = st.staff_type_id
        JOIN shift sh ON s.shift_id = sh.shift_id`

// CreateStaff inserts the employee and opens the first row of their shift
// history in one transaction.
func (db *DB) CreateStaff(ctx context.Context, s *models.Staff) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	queryStaff := `INSERT INTO staff (emp_name, staff_type_id, shift_id, id_card_no, address, contact_no, salary)
                   VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, queryStaff,
		s.Name, s.StaffTypeID, s.ShiftID, s.IDCardNo, s.Address, s.ContactNo, s.Salary)
	if err != nil {
		return fmt.Errorf("failed to insert staff in tx: %w", err)
	}
	s.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}

	queryHistory := `INSERT INTO emp_history (emp_id, shift_id, from_date) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, queryHistory, s.ID, s.ShiftID, time.Now()); err != nil {
		return fmt.Errorf("failed to open shift history in tx: %w", err)
	}

	return tx.Commit()
}

func (db *DB) GetStaff(ctx context.Context, id int64) (*models.StaffDetail, error) {
	query := `SELECT ` + staffDetailColumns + ` ` + staffDetailJoins + ` WHERE s.emp_id = ?`
	row := db.db.QueryRowContext(ctx, query, id)

	detail, err := scanStaffDetail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return detail, nil
}

func (db *DB) ListStaff(ctx context.Context) ([]*models.StaffDetail, error) {
	query := `SELECT ` + staffDetailColumns + ` ` + staffDetailJoins + ` ORDER BY s.emp_name`
	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var staff []*models.StaffDetail
	for rows.Next() {
		detail, err := scanStaffDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		staff = append(staff, detail)
	}
	return staff, rows.Err()
}

// UpdateStaff rewrites the employee record. When the shift changes, the
// open history row is closed and a new one opened, all in one transaction,
// so the history is a contiguous append-log.
func (db *DB) UpdateStaff(ctx context.Context, s *models.Staff) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var currentShift int64
	err = tx.QueryRowContext(ctx, `SELECT shift_id FROM staff WHERE emp_id = ?`, s.ID).Scan(&currentShift)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrStaffNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read current shift in tx: %w", err)
	}

	queryStaff := `UPDATE staff SET emp_name = ?, staff_type_id = ?, shift_id = ?,
                   id_card_no = ?, address = ?, contact_no = ?, salary = ?
                   WHERE emp_id = ?`
	if _, err := tx.ExecContext(ctx, queryStaff,
		s.Name, s.StaffTypeID, s.ShiftID, s.IDCardNo, s.Address, s.ContactNo, s.Salary, s.ID); err != nil {
		return fmt.Errorf("failed to update staff in tx: %w", err)
	}

	if currentShift != s.ShiftID {
		now := time.Now()
		queryClose := `UPDATE emp_history SET to_date = ? WHERE emp_id = ? AND to_date IS NULL`
		if _, err := tx.ExecContext(ctx, queryClose, now, s.ID); err != nil {
			return fmt.Errorf("failed to close shift history in tx: %w", err)
		}
		queryOpen := `INSERT INTO emp_history (emp_id, shift_id, from_date) VALUES (?, ?, ?)`
		if _, err := tx.ExecContext(ctx, queryOpen, s.ID, s.ShiftID, now); err != nil {
			return fmt.Errorf("failed to open shift history in tx: %w", err)
		}
	}

	return tx.Commit()
}

func (db *DB) DeleteStaff(ctx context.Context, id int64) error {
	result, err := db.db.ExecContext(ctx, `DELETE FROM staff WHERE emp_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrStaffNotFound
	}
	return nil
}

// GetShiftHistory returns the employee's shift log, newest first. The open
// row, if any, comes back with a nil ToDate.
func (db *DB) GetShiftHistory(ctx context.Context, empID int64) ([]*models.ShiftRecord, error) {
	query := `SELECT h.history_id, h.emp_id, h.shift_id, sh.shift, sh.shift_timing, h.from_date, h.to_date
              FROM emp_history h
              JOIN shift sh ON h.shift_id = sh.shift_id
              WHERE h.emp_id = ?
              ORDER BY h.from_date DESC, h.history_id DESC`
	rows, err := db.db.QueryContext(ctx, query, empID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift history: %w", err)
	}
	defer rows.Close()

	var records []*models.ShiftRecord
	for rows.Next() {
		var (
			r      models.ShiftRecord
			toDate sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.EmpID, &r.ShiftID, &r.Shift, &r.ShiftTiming, &r.FromDate, &toDate); err != nil {
			return nil, fmt.Errorf("failed to scan shift history: %w", err)
		}
		if toDate.Valid {
			t := toDate.Time
			r.ToDate = &t
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}

func (db *DB) ListShifts(ctx context.Context) ([]*models.Shift, error) {
	rows, err := db.db.QueryContext(ctx, `SELECT shift_id, shift, shift_timing FROM shift ORDER BY shift_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []*models.Shift
	for rows.Next() {
		var s models.Shift
		if err := rows.Scan(&s.ID, &s.Name, &s.Timing); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, &s)
	}
	return shifts, rows.Err()
}

func (db *DB) ListStaffTypes(ctx context.Context) ([]*models.StaffType, error) {
	rows, err := db.db.QueryContext(ctx, `SELECT staff_type_id, staff_type FROM staff_type ORDER BY staff_type_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff types: %w", err)
	}
	defer rows.Close()

	var types []*models.StaffType
	for rows.Next() {
		var t models.StaffType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan staff type: %w", err)
		}
		types = append(types, &t)
	}
	return types, rows.Err()
}

func scanStaffDetail(row rowScanner) (*models.StaffDetail, error) {
	var (
		d                            models.StaffDetail
		idCardNo, address, contactNo sql.NullString
	)
	err := row.Scan(
		&d.ID, &d.Name, &d.StaffTypeID, &d.ShiftID,
		&idCardNo, &address, &contactNo, &d.Salary,
		&d.StaffType, &d.Shift, &d.ShiftTiming,
	)
	if err != nil {
		return nil, err
	}
	d.IDCardNo = idCardNo.String
	d.Address = address.String
	d.ContactNo = contactNo.String
	return &d, nil
}
