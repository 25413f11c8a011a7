package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/models"
)

const bookingDetailColumns = `b.booking_id, b.customer_id, b.room_id, b.check_in, b.check_out,
               b.total_price, b.remaining_price, b.booking_type, b.status,
               b.payment_status, b.payment_method, b.check_in_status, b.check_out_status,
               b.booking_date,
               c.customer_name, c.contact_no, c.email,
               r.room_no, rt.room_type, rt.price`

const bookingDetailJoins = `FROM booking b
        JOIN customer c ON b.customer_id = c.customer_id
        JOIN room r ON b.room_id = r.room_id
        JOIN room_type rt ON r.room_type_id = rt.room_type_id`

// CreateBooking inserts a booking. The date-range overlap check runs inside
// the same transaction as the insert so two conflicting requests cannot
// both pass it.
func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var overlapping int
	queryCount := `SELECT COUNT(*) FROM booking
                   WHERE room_id = ? AND check_out_status = 0
                   AND check_in < ? AND check_out > ?`
	err = tx.QueryRowContext(ctx, queryCount,
		booking.RoomID,
		booking.CheckOut.Format(models.DateLayout),
		booking.CheckIn.Format(models.DateLayout),
	).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("failed to check room availability in tx: %w", err)
	}
	if overlapping > 0 {
		return ErrRoomNotAvailable
	}

	queryInsert := `INSERT INTO booking (
                customer_id, room_id, check_in, check_out, total_price, remaining_price,
                booking_type, status, payment_status, payment_method,
                check_in_status, check_out_status, booking_date
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := tx.ExecContext(ctx, queryInsert,
		booking.CustomerID,
		booking.RoomID,
		booking.CheckIn.Format(models.DateLayout),
		booking.CheckOut.Format(models.DateLayout),
		booking.TotalPrice,
		booking.RemainingPrice,
		booking.Type,
		booking.Status,
		booking.PaymentStatus,
		paymentMethodValue(booking.PaymentMethod),
		booking.CheckedIn,
		booking.CheckedOut,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}
	booking.ID = id
	booking.BookingDate = now

	return tx.Commit()
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.BookingDetail, error) {
	query := `SELECT ` + bookingDetailColumns + ` ` + bookingDetailJoins + ` WHERE b.booking_id = ?`
	row := db.db.QueryRowContext(ctx, query, id)

	detail, err := scanBookingDetail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return detail, nil
}

// ListBookings returns the main booking list: normal bookings plus advance
// bookings that have been confirmed.
func (db *DB) ListBookings(ctx context.Context) ([]*models.BookingDetail, error) {
	query := `SELECT ` + bookingDetailColumns + ` ` + bookingDetailJoins + `
        WHERE (b.booking_type != 'ADVANCE' OR b.status = 'CONFIRMED')
        ORDER BY b.booking_date DESC`
	return db.queryBookingDetails(ctx, query)
}

// ListAdvanceBookings returns every advance booking regardless of status.
func (db *DB) ListAdvanceBookings(ctx context.Context) ([]*models.BookingDetail, error) {
	query := `SELECT ` + bookingDetailColumns + ` ` + bookingDetailJoins + `
        WHERE b.booking_type = 'ADVANCE'
        ORDER BY b.booking_date DESC`
	return db.queryBookingDetails(ctx, query)
}

func (db *DB) RecentBookings(ctx context.Context, limit int) ([]*models.BookingDetail, error) {
	if limit <= 0 {
		limit = models.DefaultRecentBookings
	}
	query := `SELECT ` + bookingDetailColumns + ` ` + bookingDetailJoins + `
        ORDER BY b.booking_date DESC LIMIT ?`
	return db.queryBookingDetails(ctx, query, limit)
}

// ConfirmAdvanceBooking flips PENDING_CONFIRMATION to CONFIRMED. The full
// precondition set lives in the WHERE clause; an affected-row count of zero
// means another request won the transition.
func (db *DB) ConfirmAdvanceBooking(ctx context.Context, id int64) error {
	query := `UPDATE booking SET status = ?
              WHERE booking_id = ? AND booking_type = ? AND status = ?`
	result, err := db.db.ExecContext(ctx, query,
		models.BookingStatusConfirmed, id, models.BookingTypeAdvance, models.BookingStatusPendingConfirmation)
	if err != nil {
		return fmt.Errorf("failed to confirm booking: %w", err)
	}
	return requireRow(result)
}

// CheckInBooking marks the booking checked in and claims the room, in one
// transaction so the pair can never partially apply.
func (db *DB) CheckInBooking(ctx context.Context, bookingID, roomID int64) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	queryBooking := `UPDATE booking SET check_in_status = 1
                     WHERE booking_id = ? AND status = ? AND payment_status = ?
                     AND check_in_status = 0 AND check_out_status = 0`
	result, err := tx.ExecContext(ctx, queryBooking, bookingID, models.BookingStatusConfirmed, models.PaymentStatusPaid)
	if err != nil {
		return fmt.Errorf("failed to check in booking: %w", err)
	}
	if err := requireRow(result); err != nil {
		return err
	}

	queryRoom := `UPDATE room SET status = 1, check_in_status = 1 WHERE room_id = ?`
	if _, err := tx.ExecContext(ctx, queryRoom, roomID); err != nil {
		return fmt.Errorf("failed to mark room occupied: %w", err)
	}

	return tx.Commit()
}

// CheckOutBooking marks the booking checked out and releases the room.
// This is the terminal transition; the booking is immutable afterwards.
func (db *DB) CheckOutBooking(ctx context.Context, bookingID, roomID int64) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	queryBooking := `UPDATE booking SET check_out_status = 1
                     WHERE booking_id = ? AND check_in_status = 1 AND check_out_status = 0`
	result, err := tx.ExecContext(ctx, queryBooking, bookingID)
	if err != nil {
		return fmt.Errorf("failed to check out booking: %w", err)
	}
	if err := requireRow(result); err != nil {
		return err
	}

	queryRoom := `UPDATE room SET status = NULL, check_in_status = 0, check_out_status = 1 WHERE room_id = ?`
	if _, err := tx.ExecContext(ctx, queryRoom, roomID); err != nil {
		return fmt.Errorf("failed to mark room vacant: %w", err)
	}

	return tx.Commit()
}

func (db *DB) UpdateBookingPayment(ctx context.Context, id int64, remaining float64, status models.PaymentStatus, method *models.PaymentMethod) error {
	query := `UPDATE booking SET remaining_price = ?, payment_status = ?, payment_method = ?
              WHERE booking_id = ? AND check_out_status = 0`
	result, err := db.db.ExecContext(ctx, query, remaining, status, paymentMethodValue(method), id)
	if err != nil {
		return fmt.Errorf("failed to update booking payment: %w", err)
	}
	return requireRow(result)
}

// UpdateBooking rewrites the editable fields of a booking. The occurred
// flags are deliberately absent: they change only through check-in and
// check-out.
func (db *DB) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	query := `UPDATE booking SET
                customer_id = ?, room_id = ?, check_in = ?, check_out = ?,
                total_price = ?, remaining_price = ?, booking_type = ?, status = ?,
                payment_status = ?, payment_method = ?
              WHERE booking_id = ? AND check_out_status = 0`
	result, err := db.db.ExecContext(ctx, query,
		booking.CustomerID,
		booking.RoomID,
		booking.CheckIn.Format(models.DateLayout),
		booking.CheckOut.Format(models.DateLayout),
		booking.TotalPrice,
		booking.RemainingPrice,
		booking.Type,
		booking.Status,
		booking.PaymentStatus,
		paymentMethodValue(booking.PaymentMethod),
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return requireRow(result)
}

func (db *DB) DeleteBooking(ctx context.Context, id int64) error {
	query := `DELETE FROM booking
              WHERE booking_id = ? AND check_in_status = 0 AND check_out_status = 0`
	result, err := db.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return requireRow(result)
}

func (db *DB) queryBookingDetails(ctx context.Context, query string, args ...any) ([]*models.BookingDetail, error) {
	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.BookingDetail
	for rows.Next() {
		detail, err := scanBookingDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingDetail(row rowScanner) (*models.BookingDetail, error) {
	var (
		d                models.BookingDetail
		method           sql.NullString
		contactNo, email sql.NullString
	)
	err := row.Scan(
		&d.ID, &d.CustomerID, &d.RoomID, &d.CheckIn, &d.CheckOut,
		&d.TotalPrice, &d.RemainingPrice, &d.Type, &d.Status,
		&d.PaymentStatus, &method, &d.CheckedIn, &d.CheckedOut,
		&d.BookingDate,
		&d.CustomerName, &contactNo, &email,
		&d.RoomNo, &d.RoomType, &d.NightlyRate,
	)
	if err != nil {
		return nil, err
	}

	if method.Valid {
		m := models.PaymentMethod(method.String)
		d.PaymentMethod = &m
	}
	d.ContactNo = contactNo.String
	d.Email = email.String
	return &d, nil
}

func paymentMethodValue(m *models.PaymentMethod) any {
	if m == nil {
		return nil
	}
	return string(*m)
}

func requireRow(result sql.Result) error {
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrConcurrentModification
	}
	return nil
}
