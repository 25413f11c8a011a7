package api

import (
	"net/http"

	"hotelier/internal/models"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.dashboard.DashboardStats(r.Context())
	if err != nil {
		writeServiceError(w, "Dashboard Failed", err)
		return
	}

	recent, err := s.dashboard.RecentBookings(r.Context(), models.DefaultRecentBookings)
	if err != nil {
		writeServiceError(w, "Dashboard Failed", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Dashboard", map[string]any{
		"stats":           stats,
		"recent_bookings": recent,
	})
}
