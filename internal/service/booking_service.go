package service

import (
	"context"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/events"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// BookingService drives the booking lifecycle. The precise precondition
// errors come from a pre-read; the database conditional writes remain the
// authority, so a stale pre-read surfaces as ErrConcurrentModification
// rather than a wrong transition.
type BookingService struct {
	repo      domain.BookingRepository
	rooms     domain.RoomRepository
	customers domain.CustomerRepository
	eventBus  domain.EventPublisher
	logger    *zerolog.Logger
}

func NewBookingService(repo domain.BookingRepository, rooms domain.RoomRepository, customers domain.CustomerRepository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:      repo,
		rooms:     rooms,
		customers: customers,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// CreateBookingParams carries the client-supplied booking fields. The
// price is derived server-side; the payment fields must already satisfy
// the payment invariants or the create is rejected.
type CreateBookingParams struct {
	CustomerID    int64
	RoomID        int64
	CheckIn       time.Time
	CheckOut      time.Time
	Type          models.BookingType
	PaymentStatus models.PaymentStatus
	PaymentMethod *models.PaymentMethod
}

func (s *BookingService) CreateBooking(ctx context.Context, params CreateBookingParams) (*models.BookingDetail, error) {
	if !params.CheckOut.After(params.CheckIn) {
		return nil, database.ErrInvalidStayDates
	}

	paymentStatus := params.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusUnpaid
	}
	if paymentStatus == models.PaymentStatusPaid && params.PaymentMethod == nil {
		return nil, database.ErrPaymentMethodRequired
	}

	if _, err := s.customers.GetCustomer(ctx, params.CustomerID); err != nil {
		return nil, err
	}
	room, err := s.rooms.GetRoom(ctx, params.RoomID)
	if err != nil {
		return nil, err
	}

	total := float64(models.Nights(params.CheckIn, params.CheckOut)) * room.Price

	// A method is only stored alongside a recorded payment, so PAID
	// settles the full amount and UNPAID drops any supplied method.
	remaining := total
	method := params.PaymentMethod
	if paymentStatus == models.PaymentStatusPaid {
		remaining = 0
	} else {
		method = nil
	}

	booking := &models.Booking{
		CustomerID:     params.CustomerID,
		RoomID:         params.RoomID,
		CheckIn:        params.CheckIn,
		CheckOut:       params.CheckOut,
		TotalPrice:     total,
		RemainingPrice: remaining,
		Type:           params.Type,
		Status:         models.BookingStatusConfirmed,
		PaymentStatus:  paymentStatus,
		PaymentMethod:  method,
	}
	// Advance bookings start unconfirmed and only join the main list
	// after an explicit confirmation.
	if params.Type == models.BookingTypeAdvance {
		booking.Status = models.BookingStatusPendingConfirmation
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	detail, err := s.repo.GetBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, &detail.Booking)
	return detail, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*models.BookingDetail, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]*models.BookingDetail, error) {
	return s.repo.ListBookings(ctx)
}

func (s *BookingService) ListAdvanceBookings(ctx context.Context) ([]*models.BookingDetail, error) {
	return s.repo.ListAdvanceBookings(ctx)
}

// ConfirmAdvanceBooking moves an advance booking from pending to
// confirmed.
func (s *BookingService) ConfirmAdvanceBooking(ctx context.Context, id int64) error {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if booking.Type != models.BookingTypeAdvance {
		return database.ErrNotAdvanceBooking
	}
	if booking.Status == models.BookingStatusConfirmed {
		return database.ErrAlreadyConfirmed
	}

	if err := s.repo.ConfirmAdvanceBooking(ctx, id); err != nil {
		return err
	}

	s.publishEvent(events.EventBookingConfirmed, &booking.Booking)
	return nil
}

// CheckIn admits the guest. Gate order: the booking must be confirmed,
// fully paid, not already checked in and not checked out.
func (s *BookingService) CheckIn(ctx context.Context, id int64) error {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	switch {
	case booking.Status != models.BookingStatusConfirmed:
		return database.ErrNotConfirmed
	case booking.PaymentStatus != models.PaymentStatusPaid:
		return database.ErrPaymentDue
	case booking.CheckedIn:
		return database.ErrAlreadyCheckedIn
	case booking.CheckedOut:
		return database.ErrAlreadyCheckedOut
	}

	if err := s.repo.CheckInBooking(ctx, id, booking.RoomID); err != nil {
		return err
	}

	s.publishEvent(events.EventCheckedIn, &booking.Booking)
	return nil
}

// CheckOut releases the room and locks the booking permanently.
func (s *BookingService) CheckOut(ctx context.Context, id int64) error {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	switch {
	case booking.CheckedOut:
		return database.ErrAlreadyCheckedOut
	case !booking.CheckedIn:
		return database.ErrNotCheckedIn
	}

	if err := s.repo.CheckOutBooking(ctx, id, booking.RoomID); err != nil {
		return err
	}

	s.publishEvent(events.EventCheckedOut, &booking.Booking)
	return nil
}

// PaymentUpdate is the payment state a client may write. The occurred
// flags and booking status are not reachable from here.
type PaymentUpdate struct {
	RemainingPrice float64
	Status         models.PaymentStatus
	Method         *models.PaymentMethod
}

func (s *BookingService) UpdatePayment(ctx context.Context, id int64, update PaymentUpdate) error {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if booking.Locked() {
		return database.ErrBookingLocked
	}
	if update.RemainingPrice < 0 || update.RemainingPrice > booking.TotalPrice {
		return database.ErrPaymentOutOfRange
	}
	if update.Status == models.PaymentStatusPaid {
		// PAID means settled in full.
		if update.RemainingPrice != 0 {
			return database.ErrPaymentOutOfRange
		}
		if update.Method == nil {
			return database.ErrPaymentMethodRequired
		}
	}

	// Keep the method tied to a completed payment.
	method := update.Method
	if update.Status != models.PaymentStatusPaid {
		method = nil
	}

	if err := s.repo.UpdateBookingPayment(ctx, id, update.RemainingPrice, update.Status, method); err != nil {
		return err
	}

	s.publishEvent(events.EventPaymentUpdated, &booking.Booking)
	return nil
}

// UpdateBookingParams carries the editable booking fields.
type UpdateBookingParams struct {
	CustomerID int64
	RoomID     int64
	CheckIn    time.Time
	CheckOut   time.Time
	Type       models.BookingType
}

// UpdateBooking rewrites a booking's stay details. The price is
// recomputed from the new room and dates; whatever was already paid
// carries over against the new total.
func (s *BookingService) UpdateBooking(ctx context.Context, id int64, params UpdateBookingParams) error {
	if !params.CheckOut.After(params.CheckIn) {
		return database.ErrInvalidStayDates
	}

	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if booking.Locked() {
		return database.ErrBookingLocked
	}

	if _, err := s.customers.GetCustomer(ctx, params.CustomerID); err != nil {
		return err
	}
	room, err := s.rooms.GetRoom(ctx, params.RoomID)
	if err != nil {
		return err
	}

	total := float64(models.Nights(params.CheckIn, params.CheckOut)) * room.Price
	paid := booking.TotalPrice - booking.RemainingPrice
	remaining := total - paid
	if remaining < 0 {
		remaining = 0
	}

	paymentStatus := booking.PaymentStatus
	if remaining > 0 && paymentStatus == models.PaymentStatusPaid {
		paymentStatus = models.PaymentStatusUnpaid
	}

	updated := &models.Booking{
		ID:             id,
		CustomerID:     params.CustomerID,
		RoomID:         params.RoomID,
		CheckIn:        params.CheckIn,
		CheckOut:       params.CheckOut,
		TotalPrice:     total,
		RemainingPrice: remaining,
		Type:           params.Type,
		Status:         booking.Status,
		PaymentStatus:  paymentStatus,
		PaymentMethod:  booking.PaymentMethod,
	}
	if err := s.repo.UpdateBooking(ctx, updated); err != nil {
		return err
	}

	s.publishEvent(events.EventBookingUpdated, updated)
	return nil
}

// DeleteBooking removes a booking that never reached check-in.
func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if booking.CheckedIn || booking.CheckedOut {
		return database.ErrBookingInUse
	}

	if err := s.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}

	s.publishEvent(events.EventBookingDeleted, &booking.Booking)
	return nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:     booking.ID,
		CustomerID:    booking.CustomerID,
		RoomID:        booking.RoomID,
		BookingType:   string(booking.Type),
		Status:        string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),
		CheckIn:       booking.CheckIn,
		CheckOut:      booking.CheckOut,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
