package database

import (
	"context"
	"fmt"
	"time"

	"hotelier/internal/models"
)

// DashboardStats runs the aggregate snapshot as a single multi-subquery
// select so the numbers come from one consistent read.
func (db *DB) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	query := `SELECT
        (SELECT COUNT(*) FROM room WHERE delete_status = 0),
        (SELECT COUNT(*) FROM room WHERE delete_status = 0 AND status IS NULL),
        (SELECT COUNT(*) FROM room WHERE delete_status = 0 AND status = 1),
        (SELECT COUNT(*) FROM booking),
        (SELECT COUNT(*) FROM booking WHERE check_in_status = 1 AND check_out_status = 0),
        (SELECT COUNT(*) FROM customer),
        (SELECT COUNT(*) FROM staff),
        (SELECT COUNT(*) FROM complaint WHERE resolve_status = 0),
        (SELECT COUNT(*) FROM booking WHERE booking_type = 'ADVANCE' AND status = 'PENDING_CONFIRMATION'),
        (SELECT COALESCE(SUM(total_price), 0) FROM booking),
        (SELECT COALESCE(SUM(remaining_price), 0) FROM booking WHERE payment_status = 'UNPAID'),
        (SELECT COALESCE(SUM(total_price), 0) FROM booking WHERE booking_date >= ?),
        (SELECT COUNT(*) FROM booking WHERE booking_date >= ?)`

	today := time.Now().Truncate(24 * time.Hour)
	var s models.DashboardStats
	err := db.db.QueryRowContext(ctx, query, today, today).Scan(
		&s.TotalRooms, &s.AvailableRooms, &s.OccupiedRooms,
		&s.TotalBookings, &s.ActiveBookings, &s.TotalCustomers,
		&s.TotalStaff, &s.PendingComplaints, &s.AdvanceBookings,
		&s.TotalAmount, &s.TotalPending, &s.TodayAmount, &s.TodayBookings,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query dashboard stats: %w", err)
	}

	if s.TotalRooms > 0 {
		s.OccupancyRate = float64(s.OccupiedRooms) / float64(s.TotalRooms) * 100
	}
	return &s, nil
}
