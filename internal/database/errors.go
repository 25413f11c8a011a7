package database

import "errors"

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrRoomNotFound       = errors.New("room not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrStaffNotFound      = errors.New("staff not found")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrRoomTypeNotFound   = errors.New("room type not found")
	ErrComplaintNotFound  = errors.New("complaint not found")

	ErrNotAdvanceBooking = errors.New("booking is not an advance booking")
	ErrAlreadyConfirmed  = errors.New("booking is already confirmed")
	ErrNotConfirmed      = errors.New("booking is not confirmed")
	ErrPaymentDue        = errors.New("payment is not complete")
	ErrAlreadyCheckedIn  = errors.New("guest is already checked in")
	ErrAlreadyCheckedOut = errors.New("guest is already checked out")
	ErrNotCheckedIn      = errors.New("guest is not checked in")
	ErrBookingLocked     = errors.New("booking is locked after check-out")
	ErrBookingInUse      = errors.New("booking has been checked in or out")

	ErrInvalidStayDates        = errors.New("check-out date must be after check-in date")
	ErrInvalidAttendanceStatus = errors.New("attendance status must be present or absent")
	ErrPaymentMethodRequired   = errors.New("payment method is required when marking as paid")
	ErrPaymentOutOfRange       = errors.New("remaining price is out of range")
	ErrRoomNotAvailable        = errors.New("room is not available for the requested dates")
	ErrRoomTypeInUse           = errors.New("room type is in use")

	// ErrConcurrentModification is returned when a conditional update
	// affects no rows because another request changed the booking between
	// our read and write.
	ErrConcurrentModification = errors.New("booking was modified concurrently")
)
