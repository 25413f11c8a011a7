package service

import (
	"context"
	"os"
	"testing"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/events"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *database.DB
	bus      *events.EventBus
	bookings *BookingService
	rooms    *RoomService
}

func newFixture(t *testing.T) *fixture {
	logger := zerolog.New(os.Stdout)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	bus := events.NewEventBus()
	return &fixture{
		db:       db,
		bus:      bus,
		bookings: NewBookingService(db, db, db, bus, &logger),
		rooms:    NewRoomService(db, nil, &logger),
	}
}

func (f *fixture) seedRoom(t *testing.T, roomNo string, price float64) int64 {
	ctx := context.Background()
	rt := &models.RoomType{Name: "Standard " + roomNo, Price: price, MaxPerson: 2}
	require.NoError(t, f.db.CreateRoomType(ctx, rt))
	room := &models.Room{RoomNo: roomNo, RoomTypeID: rt.ID}
	require.NoError(t, f.db.CreateRoom(ctx, room))
	return room.ID
}

func (f *fixture) seedCustomer(t *testing.T, name string) int64 {
	c := &models.Customer{Name: name, Persons: 1}
	require.NoError(t, f.db.CreateCustomer(context.Background(), c))
	return c.ID
}

func (f *fixture) pay(t *testing.T, id int64) {
	method := models.PaymentMethodCard
	require.NoError(t, f.bookings.UpdatePayment(context.Background(), id, PaymentUpdate{
		RemainingPrice: 0,
		Status:         models.PaymentStatusPaid,
		Method:         &method,
	}))
}

func TestCreateBookingDerivesPriceAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roomID := f.seedRoom(t, "101", 150)
	customerID := f.seedCustomer(t, "Alice")

	detail, err := f.bookings.CreateBooking(ctx, CreateBookingParams{
		CustomerID: customerID,
		RoomID:     roomID,
		CheckIn:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		Type:       models.BookingTypeNormal,
	})
	require.NoError(t, err)

	// 3 nights at 150.
	assert.Equal(t, float64(450), detail.TotalPrice)
	assert.Equal(t, float64(450), detail.RemainingPrice)
	assert.Equal(t, models.BookingStatusConfirmed, detail.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, detail.PaymentStatus)
}

func TestCreateAdvanceBookingStartsPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roomID := f.seedRoom(t, "102", 100)
	customerID := f.seedCustomer(t, "Bob")

	detail, err := f.bookings.CreateBooking(ctx, CreateBookingParams{
		CustomerID: customerID,
		RoomID:     roomID,
		CheckIn:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		Type:       models.BookingTypeAdvance,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPendingConfirmation, detail.Status)
}

func TestCreateBookingRejectsBadDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roomID := f.seedRoom(t, "103", 100)
	customerID := f.seedCustomer(t, "Cara")

	_, err := f.bookings.CreateBooking(ctx, CreateBookingParams{
		CustomerID: customerID,
		RoomID:     roomID,
		CheckIn:    time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
		Type:       models.BookingTypeNormal,
	})
	assert.ErrorIs(t, err, database.ErrInvalidStayDates)
}

func TestConfirmGates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roomID := f.seedRoom(t, "104", 100)
	customerID := f.seedCustomer(t, "Dan")

	normal, err := f.bookings.CreateBooking(ctx, CreateBookingParams{
		CustomerID: customerID, RoomID: roomID,
		CheckIn:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		Type:     models.BookingTypeNormal,
	})
	require.NoError(t, err)

	err = f.bookings.ConfirmAdvanceBooking(ctx, normal.ID)
	assert.ErrorIs(t, err, database.ErrNotAdvanceBooking)

	advance, err := f.bookings.CreateBooking(ctx, CreateBookingParams{
		CustomerID: customerID, RoomID: roomID,
		CheckIn:  time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
		Type:     models.BookingTypeAdvance,
	})
	require.NoError(t, err)

	require.NoError(t, f.bookings.ConfirmAdvanceBooking(ctx, advance.ID))
	err = f.bookings.ConfirmAdvanceBooking(ctx, advance.ID)
	assert.ErrorIs(t, err, database.ErrAlreadyConfirmed)
}

func TestCheckInGateOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roomID := f.seedRoom(t, "105", 100)
	customerID := f.seedCustomer(t, "Eve")

	advance, err := f.bookings.CreateBooking(ctx, CreateBookingParams{
		CustomerID: customerID, RoomID: roomID,
		CheckIn:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
		Type:     models.BookingTypeAdvance,
	})
	require.NoError(t, err)

	// Unconfirmed wins over unpaid.
	err = f.bookings.CheckIn(ctx, advance.ID)
	assert.ErrorIs(t, err, database.ErrNotConfirmed)

	require.NoError(t, f.bookings.ConfirmAdvanceBooking(ctx, advance.ID))
	err = f.bookings.CheckIn(ctx, advance.ID)
	assert.ErrorIs(t, err, database.ErrPaymentDue)

	f.pay(t, advance.ID)
	require.NoError(t, f.bookings.CheckIn(ctx, advance.ID))

	err = f.bookings.CheckIn(ctx, advance.ID)
	assert.ErrorIs(t, err, database.ErrAlreadyCheckedIn)

	require.NoError(t, f.bookings.CheckOut(ctx, advance.ID))
	err = f.bookings.CheckOut(ctx, advance.ID)
	assert.ErrorIs(t, err, database.ErrAlreadyCheckedOut)
}

func TestCheckOutRequiresCheckIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roomID := f.seedRoom(t, "106", 100)
	customerID := f.seedCustomer(t, "Fay")

	booking, err := f.bookings.CreateBooking(ctx, CreateBookingParams{
		CustomerID: customerID, RoomID: roomID,
		CheckIn:  time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
		Type:     models.BookingTypeNormal,
	})
	require.NoError(t, err)

	err = f.bookings.CheckOut(ctx, booking.ID)
	assert.ErrorIs(t, err, database.ErrNotCheckedIn)
}

func TestPaymentValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roomID := f.seedRoom(t, "107", 100)
	customerID := f.seedCustomer(t, "Gus")

	booking, err := f.bookings.CreateBooking(ctx, CreateBookingParams{
		CustomerID: customerID, RoomID: roomID,
		CheckIn:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		Type:     models.BookingTypeNormal,
	})
	require.NoError(t, err)

	err = f.bookings.UpdatePayment(ctx, booking.ID, PaymentUpdate{
		RemainingPrice: booking.TotalPrice + 1,
		Status:         models.PaymentStatusUnpaid,
	})
	assert.ErrorIs(t, err, database.ErrPaymentOutOfRange)

	err = f.bookings.UpdatePayment(ctx, booking.ID, PaymentUpdate{
		RemainingPrice: 0,
		Status:         models.PaymentStatusPaid,
	})
	assert.ErrorIs(t, err, database.ErrPaymentMethodRequired)

	// Marking paid with money still owed is refused.
	method := models.PaymentMethodCash
	err = f.bookings.UpdatePayment(ctx, booking.ID, PaymentUpdate{
		RemainingPrice: 150,
		Status:         models.PaymentStatusPaid,
		Method:         &method,
	})
	assert.ErrorIs(t, err, database.ErrPaymentOutOfRange)

	// Partial payment keeps the booking unpaid, and no method is
	// recorded until the payment completes.
	upi := models.PaymentMethodUPI
	require.NoError(t, f.bookings.UpdatePayment(ctx, booking.ID, PaymentUpdate{
		RemainingPrice: 50,
		Status:         models.PaymentStatusUnpaid,
		Method:         &upi,
	}))

	detail, err := f.bookings.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(50), detail.RemainingPrice)
	assert.Equal(t, models.PaymentStatusUnpaid, detail.PaymentStatus)
	assert.Nil(t, detail.PaymentMethod)
}

func TestCreateBookingPaidUpfront(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roomID := f.seedRoom(t, "112", 100)
	customerID := f.seedCustomer(t, "Kim")

	method := models.PaymentMethodCard
	detail, err := f.bookings.CreateBooking(ctx, CreateBookingParams{
		CustomerID: customerID, RoomID: roomID,
		CheckIn:       time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 12, 3, 0, 0, 0, 0, time.UTC),
		Type:          models.BookingTypeNormal,
		PaymentStatus: models.PaymentStatusPaid,
		PaymentMethod: &method,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(200), detail.TotalPrice)
	assert.Equal(t, float64(0), detail.RemainingPrice)
	assert.Equal(t, models.PaymentStatusPaid, detail.PaymentStatus)
	require.NotNil(t, detail.PaymentMethod)
	assert.Equal(t, models.PaymentMethodCard, *detail.PaymentMethod)

	// Paid upfront goes straight through the check-in gate.
	require.NoError(t, f.bookings.CheckIn(ctx, detail.ID))

	_, err = f.bookings.CreateBooking(ctx, CreateBookingParams{
		CustomerID: customerID, RoomID: roomID,
		CheckIn:       time.Date(2026, 12, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 12, 11, 0, 0, 0, 0, time.UTC),
		Type:          models.BookingTypeNormal,
		PaymentStatus: models.PaymentStatusPaid,
	})
	assert.ErrorIs(t, err, database.ErrPaymentMethodRequired)
}

func TestCreateBookingUnpaidIgnoresMethod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roomID := f.seedRoom(t, "113", 100)
	customerID := f.seedCustomer(t, "Lea")

	method := models.PaymentMethodCard
	detail, err := f.bookings.CreateBooking(ctx, CreateBookingParams{
		CustomerID: customerID, RoomID: roomID,
		CheckIn:       time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC),
		Type:          models.BookingTypeNormal,
		PaymentMethod: &method,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusUnpaid, detail.PaymentStatus)
	assert.Equal(t, detail.TotalPrice, detail.RemainingPrice)
	assert.Nil(t, detail.PaymentMethod)
}

func TestUpdateBookingCarriesPaymentOver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cheapID := f.seedRoom(t, "108", 100)
	dearID := f.seedRoom(t, "109", 200)
	customerID := f.seedCustomer(t, "Hal")

	booking, err := f.bookings.CreateBooking(ctx, CreateBookingParams{
		CustomerID: customerID, RoomID: cheapID,
		CheckIn:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		Type:     models.BookingTypeNormal,
	})
	require.NoError(t, err)
	f.pay(t, booking.ID)

	// Move the fully paid stay to the pricier room: new total 400, 200
	// already paid, so 200 remains and the booking flips back to unpaid.
	require.NoError(t, f.bookings.UpdateBooking(ctx, booking.ID, UpdateBookingParams{
		CustomerID: customerID,
		RoomID:     dearID,
		CheckIn:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		Type:       models.BookingTypeNormal,
	}))

	detail, err := f.bookings.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(400), detail.TotalPrice)
	assert.Equal(t, float64(200), detail.RemainingPrice)
	assert.Equal(t, models.PaymentStatusUnpaid, detail.PaymentStatus)
}

func TestDeleteAfterCheckInRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	roomID := f.seedRoom(t, "110", 100)
	customerID := f.seedCustomer(t, "Ivy")

	booking, err := f.bookings.CreateBooking(ctx, CreateBookingParams{
		CustomerID: customerID, RoomID: roomID,
		CheckIn:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
		Type:     models.BookingTypeNormal,
	})
	require.NoError(t, err)
	f.pay(t, booking.ID)
	require.NoError(t, f.bookings.CheckIn(ctx, booking.ID))

	err = f.bookings.DeleteBooking(ctx, booking.ID)
	assert.ErrorIs(t, err, database.ErrBookingInUse)
}

func TestLifecycleEventsPublished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var seen []string
	record := func(event *events.Event) error {
		seen = append(seen, event.Type)
		return nil
	}
	for _, typ := range []string{
		events.EventBookingCreated, events.EventPaymentUpdated,
		events.EventCheckedIn, events.EventCheckedOut,
	} {
		f.bus.Subscribe(typ, record)
	}

	roomID := f.seedRoom(t, "111", 100)
	customerID := f.seedCustomer(t, "Joe")

	booking, err := f.bookings.CreateBooking(ctx, CreateBookingParams{
		CustomerID: customerID, RoomID: roomID,
		CheckIn:  time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		Type:     models.BookingTypeNormal,
	})
	require.NoError(t, err)
	f.pay(t, booking.ID)
	require.NoError(t, f.bookings.CheckIn(ctx, booking.ID))
	require.NoError(t, f.bookings.CheckOut(ctx, booking.ID))

	assert.Equal(t, []string{
		events.EventBookingCreated,
		events.EventPaymentUpdated,
		events.EventCheckedIn,
		events.EventCheckedOut,
	}, seen)
}
