package models

import (
	"math"
	"time"
)

type BookingType string

const (
	BookingTypeNormal  BookingType = "NORMAL"
	BookingTypeAdvance BookingType = "ADVANCE"
)

func (t BookingType) Valid() bool {
	return t == BookingTypeNormal || t == BookingTypeAdvance
}

type BookingStatus string

const (
	BookingStatusPendingConfirmation BookingStatus = "PENDING_CONFIRMATION"
	BookingStatusConfirmed           BookingStatus = "CONFIRMED"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusUnpaid || s == PaymentStatusPaid
}

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodOnline       PaymentMethod = "ONLINE"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI, PaymentMethodOnline, PaymentMethodBankTransfer:
		return true
	}
	return false
}

type Booking struct {
	ID             int64          `json:"booking_id"`
	CustomerID     int64          `json:"customer_id"`
	RoomID         int64          `json:"room_id"`
	CheckIn        time.Time      `json:"check_in"`
	CheckOut       time.Time      `json:"check_out"`
	TotalPrice     float64        `json:"total_price"`
	RemainingPrice float64        `json:"remaining_price"`
	Type           BookingType    `json:"booking_type"`
	Status         BookingStatus  `json:"status"`
	PaymentStatus  PaymentStatus  `json:"payment_status"`
	PaymentMethod  *PaymentMethod `json:"payment_method"`
	CheckedIn      bool           `json:"check_in_status"`
	CheckedOut     bool           `json:"check_out_status"`
	BookingDate    time.Time      `json:"booking_date"`
}

// BookingDetail is a booking row joined with its customer and room.
type BookingDetail struct {
	Booking
	CustomerName string  `json:"customer_name"`
	ContactNo    string  `json:"contact_no"`
	Email        string  `json:"email"`
	RoomNo       string  `json:"room_no"`
	RoomType     string  `json:"room_type"`
	NightlyRate  float64 `json:"price"`
}

// Nights returns the chargeable night count for a stay, rounding partial
// days up. Check-out is validated to be strictly after check-in, so the
// result is always at least 1.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// Locked reports whether the booking is immutable. Once a guest has
// checked out no further edits, payments or deletion are allowed.
func (b *Booking) Locked() bool {
	return b.CheckedOut
}
