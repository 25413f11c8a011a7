package database

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.New(os.Stdout)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	return db
}

// setupFileDB backs the database with a real file so concurrent
// connections share state.
func setupFileDB(t *testing.T) *DB {
	logger := zerolog.New(os.Stdout)
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	return db
}

func seedRoom(t *testing.T, db *DB, ctx context.Context, roomNo string, price float64) int64 {
	rt := &models.RoomType{Name: "Deluxe " + roomNo, Price: price, MaxPerson: 2}
	require.NoError(t, db.CreateRoomType(ctx, rt))

	room := &models.Room{RoomNo: roomNo, RoomTypeID: rt.ID}
	require.NoError(t, db.CreateRoom(ctx, room))
	return room.ID
}

func seedCustomer(t *testing.T, db *DB, ctx context.Context, name string) int64 {
	c := &models.Customer{Name: name, Persons: 2, ContactNo: "555-0100", Email: "guest@example.com"}
	require.NoError(t, db.CreateCustomer(ctx, c))
	return c.ID
}

func seedBooking(t *testing.T, db *DB, ctx context.Context, customerID, roomID int64, checkIn, checkOut time.Time, bookingType models.BookingType, status models.BookingStatus) int64 {
	booking := &models.Booking{
		CustomerID:     customerID,
		RoomID:         roomID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		TotalPrice:     200,
		RemainingPrice: 200,
		Type:           bookingType,
		Status:         status,
		PaymentStatus:  models.PaymentStatusUnpaid,
	}
	require.NoError(t, db.CreateBooking(ctx, booking))
	return booking.ID
}

func TestBookingLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	roomID := seedRoom(t, db, ctx, "101", 100)
	customerID := seedCustomer(t, db, ctx, "Alice")

	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	id := seedBooking(t, db, ctx, customerID, roomID, checkIn, checkOut, models.BookingTypeNormal, models.BookingStatusConfirmed)

	detail, err := db.GetBooking(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", detail.CustomerName)
	assert.Equal(t, "101", detail.RoomNo)
	assert.Equal(t, checkIn, detail.CheckIn)
	assert.False(t, detail.CheckedIn)

	// Pay in full, then check in.
	method := models.PaymentMethodCard
	require.NoError(t, db.UpdateBookingPayment(ctx, id, 0, models.PaymentStatusPaid, &method))
	require.NoError(t, db.CheckInBooking(ctx, id, roomID))

	room, err := db.GetRoom(ctx, roomID)
	require.NoError(t, err)
	assert.True(t, room.Occupied)
	assert.True(t, room.CheckedIn)

	require.NoError(t, db.CheckOutBooking(ctx, id, roomID))

	room, err = db.GetRoom(ctx, roomID)
	require.NoError(t, err)
	assert.False(t, room.Occupied)
	assert.True(t, room.CheckedOut)

	detail, err = db.GetBooking(ctx, id)
	require.NoError(t, err)
	assert.True(t, detail.CheckedIn)
	assert.True(t, detail.CheckedOut)

	// Checked-out bookings are immutable.
	err = db.UpdateBookingPayment(ctx, id, 0, models.PaymentStatusPaid, &method)
	assert.ErrorIs(t, err, ErrConcurrentModification)
	err = db.DeleteBooking(ctx, id)
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

func TestGetBookingNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetBooking(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCreateBookingOverlap(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	roomID := seedRoom(t, db, ctx, "102", 100)
	otherRoomID := seedRoom(t, db, ctx, "103", 100)
	customerID := seedCustomer(t, db, ctx, "Bob")

	checkIn := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
	seedBooking(t, db, ctx, customerID, roomID, checkIn, checkOut, models.BookingTypeNormal, models.BookingStatusConfirmed)

	// Overlapping range on the same room is rejected.
	overlapping := &models.Booking{
		CustomerID: customerID, RoomID: roomID,
		CheckIn:  time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC),
		Type:     models.BookingTypeNormal, Status: models.BookingStatusConfirmed,
		PaymentStatus: models.PaymentStatusUnpaid, TotalPrice: 400, RemainingPrice: 400,
	}
	err := db.CreateBooking(ctx, overlapping)
	assert.ErrorIs(t, err, ErrRoomNotAvailable)

	// Same dates on another room are fine.
	overlapping.RoomID = otherRoomID
	require.NoError(t, db.CreateBooking(ctx, overlapping))

	// Back-to-back on the same room is fine: check-out day equals the
	// next check-in day.
	adjacent := &models.Booking{
		CustomerID: customerID, RoomID: roomID,
		CheckIn:  checkOut,
		CheckOut: time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC),
		Type:     models.BookingTypeNormal, Status: models.BookingStatusConfirmed,
		PaymentStatus: models.PaymentStatusUnpaid, TotalPrice: 200, RemainingPrice: 200,
	}
	require.NoError(t, db.CreateBooking(ctx, adjacent))
}

func TestAdvanceBookingLists(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	roomID := seedRoom(t, db, ctx, "104", 100)
	customerID := seedCustomer(t, db, ctx, "Cara")

	advanceID := seedBooking(t, db, ctx, customerID, roomID,
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC),
		models.BookingTypeAdvance, models.BookingStatusPendingConfirmation)

	// Pending advance bookings stay off the main list.
	main, err := db.ListBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, main)

	advance, err := db.ListAdvanceBookings(ctx)
	require.NoError(t, err)
	require.Len(t, advance, 1)
	assert.Equal(t, models.BookingStatusPendingConfirmation, advance[0].Status)

	require.NoError(t, db.ConfirmAdvanceBooking(ctx, advanceID))

	main, err = db.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, main, 1)
	assert.Equal(t, models.BookingStatusConfirmed, main[0].Status)

	// Confirmed advance bookings remain on the advance list too.
	advance, err = db.ListAdvanceBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, advance, 1)

	// A second confirmation finds no matching row.
	err = db.ConfirmAdvanceBooking(ctx, advanceID)
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

func TestCheckInGatesEnforcedInSQL(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	roomID := seedRoom(t, db, ctx, "105", 100)
	customerID := seedCustomer(t, db, ctx, "Dan")

	id := seedBooking(t, db, ctx, customerID, roomID,
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
		models.BookingTypeNormal, models.BookingStatusConfirmed)

	// Unpaid booking cannot check in even when called directly.
	err := db.CheckInBooking(ctx, id, roomID)
	assert.ErrorIs(t, err, ErrConcurrentModification)

	room, err := db.GetRoom(ctx, roomID)
	require.NoError(t, err)
	assert.False(t, room.Occupied, "failed check-in must not touch the room")

	// Check-out before check-in is rejected too.
	err = db.CheckOutBooking(ctx, id, roomID)
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

func TestConcurrentCheckInSingleWinner(t *testing.T) {
	db := setupFileDB(t)
	defer db.Close()
	ctx := context.Background()

	roomID := seedRoom(t, db, ctx, "106", 100)
	customerID := seedCustomer(t, db, ctx, "Eve")

	id := seedBooking(t, db, ctx, customerID, roomID,
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
		models.BookingTypeNormal, models.BookingStatusConfirmed)
	method := models.PaymentMethodCash
	require.NoError(t, db.UpdateBookingPayment(ctx, id, 0, models.PaymentStatusPaid, &method))

	const attempts = 5
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- db.CheckInBooking(ctx, id, roomID)
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			assert.ErrorIs(t, err, ErrConcurrentModification)
			conflicts++
		}
	}
	assert.Equal(t, 1, wins, "exactly one check-in must win")
	assert.Equal(t, attempts-1, conflicts)
}

func TestUpdateBookingKeepsFlags(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	roomID := seedRoom(t, db, ctx, "107", 100)
	customerID := seedCustomer(t, db, ctx, "Fay")

	id := seedBooking(t, db, ctx, customerID, roomID,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		models.BookingTypeNormal, models.BookingStatusConfirmed)

	method := models.PaymentMethodUPI
	require.NoError(t, db.UpdateBookingPayment(ctx, id, 0, models.PaymentStatusPaid, &method))
	require.NoError(t, db.CheckInBooking(ctx, id, roomID))

	updated := &models.Booking{
		ID:         id,
		CustomerID: customerID,
		RoomID:     roomID,
		CheckIn:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
		TotalPrice: 400, RemainingPrice: 200,
		Type:          models.BookingTypeNormal,
		Status:        models.BookingStatusConfirmed,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
	require.NoError(t, db.UpdateBooking(ctx, updated))

	detail, err := db.GetBooking(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, float64(400), detail.TotalPrice)
	assert.True(t, detail.CheckedIn, "update must not clear occupancy flags")
	assert.False(t, detail.CheckedOut)
}

func TestDeleteBookingBeforeCheckIn(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	roomID := seedRoom(t, db, ctx, "108", 100)
	customerID := seedCustomer(t, db, ctx, "Gus")

	id := seedBooking(t, db, ctx, customerID, roomID,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		models.BookingTypeNormal, models.BookingStatusConfirmed)

	require.NoError(t, db.DeleteBooking(ctx, id))

	_, err := db.GetBooking(ctx, id)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRecentBookingsLimit(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	roomID := seedRoom(t, db, ctx, "109", 100)
	customerID := seedCustomer(t, db, ctx, "Hal")

	for i := 0; i < 3; i++ {
		seedBooking(t, db, ctx, customerID, roomID,
			time.Date(2026, 10, 1+2*i, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 10, 2+2*i, 0, 0, 0, 0, time.UTC),
			models.BookingTypeNormal, models.BookingStatusConfirmed)
	}

	recent, err := db.RecentBookings(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}
