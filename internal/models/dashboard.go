package models

// DashboardStats is the aggregate snapshot shown on the admin landing page.
type DashboardStats struct {
	TotalRooms        int     `json:"totalRooms"`
	AvailableRooms    int     `json:"availableRooms"`
	OccupiedRooms     int     `json:"occupiedRooms"`
	TotalBookings     int     `json:"totalBookings"`
	ActiveBookings    int     `json:"activeBookings"`
	TotalCustomers    int     `json:"totalCustomers"`
	TotalStaff        int     `json:"totalStaff"`
	PendingComplaints int     `json:"pendingComplaints"`
	AdvanceBookings   int     `json:"advanceBookings"`
	TotalAmount       float64 `json:"totalAmount"`
	TotalPending      float64 `json:"totalPending"`
	TodayAmount       float64 `json:"todayAmount"`
	TodayBookings     int     `json:"todayBookings"`
	OccupancyRate     float64 `json:"occupancyRate"`
}
