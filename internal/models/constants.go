package models

const (
	// DateLayout is the wire format for stay and attendance dates.
	DateLayout = "2006-01-02"

	// AvailabilityCacheTTL bounds staleness of the cached free-room list
	// between invalidations, in seconds.
	AvailabilityCacheTTL = 60

	// DefaultRecentBookings is the dashboard recent-bookings list size.
	DefaultRecentBookings = 10
)
