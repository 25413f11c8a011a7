package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"hotelier/internal/metrics"
	"hotelier/internal/models"
	"hotelier/internal/service"
)

type bookingRequest struct {
	CustomerID    int64  `json:"customer_id"`
	RoomID        int64  `json:"room_id"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	BookingType   string `json:"booking_type"`
	PaymentStatus string `json:"payment_status,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

type paymentRequest struct {
	RemainingPrice float64 `json:"remaining_price"`
	PaymentStatus  string  `json:"payment_status"`
	PaymentMethod  string  `json:"payment_method,omitempty"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Booking Failed", err.Error())
		return
	}

	params, errMsg := req.toCreateParams()
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, "Booking Failed", errMsg)
		return
	}

	detail, err := s.bookings.CreateBooking(r.Context(), params)
	if err != nil {
		metrics.IncTransition("create", "failure")
		writeServiceError(w, "Booking Failed", err)
		return
	}

	metrics.IncTransition("create", "success")
	writeSuccess(w, http.StatusOK, "Booking Created Successfully", detail)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := s.bookings.GetBooking(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Booking Not Found", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Booking Details", detail)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.bookings.ListBookings(r.Context())
	if err != nil {
		writeServiceError(w, "Booking List Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Booking List", bookings)
}

func (s *Server) handleListAdvanceBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.bookings.ListAdvanceBookings(r.Context())
	if err != nil {
		writeServiceError(w, "Advance Booking List Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Advance Booking List", bookings)
}

func (s *Server) handleConfirmBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.bookings.ConfirmAdvanceBooking(r.Context(), id); err != nil {
		metrics.IncTransition("confirm", "failure")
		writeServiceError(w, "Confirmation Failed", err)
		return
	}

	metrics.IncTransition("confirm", "success")
	writeSuccess(w, http.StatusOK, "Booking Confirmed Successfully", nil)
}

func (s *Server) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Payment Update Failed", err.Error())
		return
	}

	status := models.PaymentStatus(req.PaymentStatus)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "Payment Update Failed", "invalid payment status")
		return
	}

	update := service.PaymentUpdate{
		RemainingPrice: req.RemainingPrice,
		Status:         status,
	}
	if req.PaymentMethod != "" {
		method := models.PaymentMethod(req.PaymentMethod)
		if !method.Valid() {
			writeError(w, http.StatusBadRequest, "Payment Update Failed", "invalid payment method")
			return
		}
		update.Method = &method
	}

	if err := s.bookings.UpdatePayment(r.Context(), id, update); err != nil {
		metrics.IncTransition("payment", "failure")
		writeServiceError(w, "Payment Update Failed", err)
		return
	}

	metrics.IncTransition("payment", "success")
	writeSuccess(w, http.StatusOK, "Payment Updated Successfully", nil)
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.bookings.CheckIn(r.Context(), id); err != nil {
		metrics.IncTransition("checkin", "failure")
		writeServiceError(w, "Check-in Failed", err)
		return
	}

	metrics.IncTransition("checkin", "success")
	writeSuccess(w, http.StatusOK, "Checked In Successfully", nil)
}

func (s *Server) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.bookings.CheckOut(r.Context(), id); err != nil {
		metrics.IncTransition("checkout", "failure")
		writeServiceError(w, "Check-out Failed", err)
		return
	}

	metrics.IncTransition("checkout", "success")
	writeSuccess(w, http.StatusOK, "Checked Out Successfully", nil)
}

func (s *Server) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req bookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Booking Update Failed", err.Error())
		return
	}

	createParams, errMsg := req.toCreateParams()
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, "Booking Update Failed", errMsg)
		return
	}

	params := service.UpdateBookingParams{
		CustomerID: createParams.CustomerID,
		RoomID:     createParams.RoomID,
		CheckIn:    createParams.CheckIn,
		CheckOut:   createParams.CheckOut,
		Type:       createParams.Type,
	}
	if err := s.bookings.UpdateBooking(r.Context(), id, params); err != nil {
		writeServiceError(w, "Booking Update Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Booking Updated Successfully", nil)
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.bookings.DeleteBooking(r.Context(), id); err != nil {
		writeServiceError(w, "Booking Delete Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Booking Deleted Successfully", nil)
}

func (r bookingRequest) toCreateParams() (service.CreateBookingParams, string) {
	checkIn, err := time.Parse(models.DateLayout, r.CheckIn)
	if err != nil {
		return service.CreateBookingParams{}, "invalid check_in date; expected YYYY-MM-DD"
	}
	checkOut, err := time.Parse(models.DateLayout, r.CheckOut)
	if err != nil {
		return service.CreateBookingParams{}, "invalid check_out date; expected YYYY-MM-DD"
	}

	bookingType := models.BookingType(r.BookingType)
	if r.BookingType == "" {
		bookingType = models.BookingTypeNormal
	}
	if !bookingType.Valid() {
		return service.CreateBookingParams{}, "invalid booking type"
	}

	paymentStatus := models.PaymentStatus(r.PaymentStatus)
	if r.PaymentStatus == "" {
		paymentStatus = models.PaymentStatusUnpaid
	}
	if !paymentStatus.Valid() {
		return service.CreateBookingParams{}, "invalid payment status"
	}

	params := service.CreateBookingParams{
		CustomerID:    r.CustomerID,
		RoomID:        r.RoomID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Type:          bookingType,
		PaymentStatus: paymentStatus,
	}
	if r.PaymentMethod != "" {
		method := models.PaymentMethod(r.PaymentMethod)
		if !method.Valid() {
			return service.CreateBookingParams{}, "invalid payment method"
		}
		params.PaymentMethod = &method
	}
	return params, ""
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid Request", "invalid id in path")
		return 0, false
	}
	return id, true
}
