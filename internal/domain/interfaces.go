// Package domain declares the seams between the service layer and its
// dependencies. Services accept these interfaces; *database.DB and the
// repository caches satisfy them.
package domain

import (
	"context"
	"time"

	"hotelier/internal/models"
)

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.BookingDetail, error)
	ListBookings(ctx context.Context) ([]*models.BookingDetail, error)
	ListAdvanceBookings(ctx context.Context) ([]*models.BookingDetail, error)
	RecentBookings(ctx context.Context, limit int) ([]*models.BookingDetail, error)
	ConfirmAdvanceBooking(ctx context.Context, id int64) error
	CheckInBooking(ctx context.Context, bookingID, roomID int64) error
	CheckOutBooking(ctx context.Context, bookingID, roomID int64) error
	UpdateBookingPayment(ctx context.Context, id int64, remaining float64, status models.PaymentStatus, method *models.PaymentMethod) error
	UpdateBooking(ctx context.Context, booking *models.Booking) error
	DeleteBooking(ctx context.Context, id int64) error
}

type RoomRepository interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id int64) (*models.RoomDetail, error)
	ListRooms(ctx context.Context) ([]*models.RoomDetail, error)
	ListAvailableRooms(ctx context.Context) ([]*models.RoomDetail, error)
	UpdateRoom(ctx context.Context, room *models.Room) error
	DeleteRoom(ctx context.Context, id int64) error

	CreateRoomType(ctx context.Context, rt *models.RoomType) error
	GetRoomType(ctx context.Context, id int64) (*models.RoomType, error)
	ListRoomTypes(ctx context.Context) ([]*models.RoomType, error)
	UpdateRoomType(ctx context.Context, rt *models.RoomType) error
	DeleteRoomType(ctx context.Context, id int64) error
}

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, c *models.Customer) error
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	UpdateCustomer(ctx context.Context, c *models.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
}

type StaffRepository interface {
	CreateStaff(ctx context.Context, s *models.Staff) error
	GetStaff(ctx context.Context, id int64) (*models.StaffDetail, error)
	ListStaff(ctx context.Context) ([]*models.StaffDetail, error)
	UpdateStaff(ctx context.Context, s *models.Staff) error
	DeleteStaff(ctx context.Context, id int64) error
	GetShiftHistory(ctx context.Context, empID int64) ([]*models.ShiftRecord, error)
	ListShifts(ctx context.Context) ([]*models.Shift, error)
	ListStaffTypes(ctx context.Context) ([]*models.StaffType, error)

	MarkAttendance(ctx context.Context, a *models.Attendance) error
	DeleteAttendance(ctx context.Context, empID int64, date time.Time) error
	ListAttendance(ctx context.Context, month time.Time) ([]*models.Attendance, error)
	AttendanceStats(ctx context.Context, month time.Time) ([]*models.AttendanceStats, error)
}

type ComplaintRepository interface {
	CreateComplaint(ctx context.Context, c *models.Complaint) error
	GetComplaint(ctx context.Context, id int64) (*models.Complaint, error)
	ListComplaints(ctx context.Context) ([]*models.Complaint, error)
	ResolveComplaint(ctx context.Context, id int64) error
	DeleteComplaint(ctx context.Context, id int64) error
}

type DashboardRepository interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	RecentBookings(ctx context.Context, limit int) ([]*models.BookingDetail, error)
}

// AvailabilityCache holds the free-room list between invalidations.
// Implementations must tolerate being down; callers fall through to the
// database on any error.
type AvailabilityCache interface {
	GetAvailableRooms(ctx context.Context) ([]*models.RoomDetail, bool, error)
	SetAvailableRooms(ctx context.Context, rooms []*models.RoomDetail, ttl time.Duration) error
	Invalidate(ctx context.Context) error
	Healthy(ctx context.Context) bool
}

// EventPublisher fans booking lifecycle events out to in-process
// subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
