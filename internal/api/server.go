package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/service"

	"github.com/rs/zerolog"
)

// Server exposes the back-office REST API.
type Server struct {
	cfg        config.APIConfig
	bookings   *service.BookingService
	rooms      *service.RoomService
	staff      *service.StaffService
	customers  domain.CustomerRepository
	complaints domain.ComplaintRepository
	dashboard  domain.DashboardRepository
	db         *database.DB
	cache      domain.AvailabilityCache
	logger     *zerolog.Logger
	server     *http.Server
	auth       *HTTPAuth
}

type ServerDeps struct {
	Bookings   *service.BookingService
	Rooms      *service.RoomService
	Staff      *service.StaffService
	Customers  domain.CustomerRepository
	Complaints domain.ComplaintRepository
	Dashboard  domain.DashboardRepository
	DB         *database.DB
	Cache      domain.AvailabilityCache
}

func NewServer(cfg config.APIConfig, deps ServerDeps, logger *zerolog.Logger) *Server {
	srv := &Server{
		cfg:        cfg,
		bookings:   deps.Bookings,
		rooms:      deps.Rooms,
		staff:      deps.Staff,
		customers:  deps.Customers,
		complaints: deps.Complaints,
		dashboard:  deps.Dashboard,
		db:         deps.DB,
		cache:      deps.Cache,
		logger:     logger,
	}
	srv.auth = NewHTTPAuth(cfg)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/bookings", srv.handleCreateBooking)
	mux.HandleFunc("GET /api/v1/bookings", srv.handleListBookings)
	mux.HandleFunc("GET /api/v1/bookings/advance", srv.handleListAdvanceBookings)
	mux.HandleFunc("GET /api/v1/bookings/{id}", srv.handleGetBooking)
	mux.HandleFunc("PUT /api/v1/bookings/{id}", srv.handleUpdateBooking)
	mux.HandleFunc("DELETE /api/v1/bookings/{id}", srv.handleDeleteBooking)
	mux.HandleFunc("PUT /api/v1/bookings/{id}/confirm", srv.handleConfirmBooking)
	mux.HandleFunc("PUT /api/v1/bookings/{id}/payment", srv.handleUpdatePayment)
	mux.HandleFunc("PUT /api/v1/bookings/{id}/checkin", srv.handleCheckIn)
	mux.HandleFunc("PUT /api/v1/bookings/{id}/checkout", srv.handleCheckOut)

	mux.HandleFunc("POST /api/v1/rooms", srv.handleCreateRoom)
	mux.HandleFunc("GET /api/v1/rooms", srv.handleListRooms)
	mux.HandleFunc("GET /api/v1/rooms/available", srv.handleListAvailableRooms)
	mux.HandleFunc("GET /api/v1/rooms/{id}", srv.handleGetRoom)
	mux.HandleFunc("PUT /api/v1/rooms/{id}", srv.handleUpdateRoom)
	mux.HandleFunc("DELETE /api/v1/rooms/{id}", srv.handleDeleteRoom)

	mux.HandleFunc("POST /api/v1/room-types", srv.handleCreateRoomType)
	mux.HandleFunc("GET /api/v1/room-types", srv.handleListRoomTypes)
	mux.HandleFunc("PUT /api/v1/room-types/{id}", srv.handleUpdateRoomType)
	mux.HandleFunc("DELETE /api/v1/room-types/{id}", srv.handleDeleteRoomType)

	mux.HandleFunc("POST /api/v1/customers", srv.handleCreateCustomer)
	mux.HandleFunc("GET /api/v1/customers", srv.handleListCustomers)
	mux.HandleFunc("GET /api/v1/customers/{id}", srv.handleGetCustomer)
	mux.HandleFunc("PUT /api/v1/customers/{id}", srv.handleUpdateCustomer)
	mux.HandleFunc("DELETE /api/v1/customers/{id}", srv.handleDeleteCustomer)

	mux.HandleFunc("POST /api/v1/staff", srv.handleCreateStaff)
	mux.HandleFunc("GET /api/v1/staff", srv.handleListStaff)
	mux.HandleFunc("GET /api/v1/staff/{id}", srv.handleGetStaff)
	mux.HandleFunc("PUT /api/v1/staff/{id}", srv.handleUpdateStaff)
	mux.HandleFunc("DELETE /api/v1/staff/{id}", srv.handleDeleteStaff)
	mux.HandleFunc("GET /api/v1/staff/{id}/history", srv.handleShiftHistory)
	mux.HandleFunc("GET /api/v1/shifts", srv.handleListShifts)
	mux.HandleFunc("GET /api/v1/staff-types", srv.handleListStaffTypes)

	mux.HandleFunc("POST /api/v1/attendance", srv.handleMarkAttendance)
	mux.HandleFunc("GET /api/v1/attendance", srv.handleListAttendance)
	mux.HandleFunc("GET /api/v1/attendance/stats", srv.handleAttendanceStats)
	mux.HandleFunc("DELETE /api/v1/attendance/{empId}", srv.handleDeleteAttendance)

	mux.HandleFunc("POST /api/v1/complaints", srv.handleCreateComplaint)
	mux.HandleFunc("GET /api/v1/complaints", srv.handleListComplaints)
	mux.HandleFunc("GET /api/v1/complaints/{id}", srv.handleGetComplaint)
	mux.HandleFunc("PUT /api/v1/complaints/{id}/resolve", srv.handleResolveComplaint)
	mux.HandleFunc("DELETE /api/v1/complaints/{id}", srv.handleDeleteComplaint)

	mux.HandleFunc("GET /api/v1/dashboard", srv.handleDashboard)

	// Health stays outside auth so probes don't need credentials.
	outer := http.NewServeMux()
	outer.HandleFunc("GET /healthz", srv.handleHealth)
	outer.Handle("/api/v1/", srv.auth.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           loggingMiddleware(logger, outer),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	return srv
}

// Handler exposes the routing stack for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Unhealthy", "database unreachable")
		return
	}

	status := map[string]any{"database": "ok"}
	if s.cache != nil {
		if s.cache.Healthy(ctx) {
			status["cache"] = "ok"
		} else {
			status["cache"] = "degraded"
		}
	}
	writeSuccess(w, http.StatusOK, "Healthy", status)
}
