package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"hotelier/internal/database"
)

// envelope is the response wrapper every endpoint uses. Data is omitted
// on failures.
type envelope struct {
	Status   int    `json:"status"`
	Mess     string `json:"mess"`
	MessBody string `json:"mess_body"`
	Data     any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeSuccess keeps the descriptive text in mess_body, matching what
// the admin frontend displays.
func writeSuccess(w http.ResponseWriter, statusCode int, mess string, data any) {
	writeJSON(w, statusCode, envelope{
		Status:   statusCode,
		Mess:     "Success",
		MessBody: mess,
		Data:     data,
	})
}

func writeError(w http.ResponseWriter, statusCode int, mess, body string) {
	writeJSON(w, statusCode, envelope{
		Status:   statusCode,
		Mess:     mess,
		MessBody: body,
	})
}

// writeServiceError maps domain sentinels to HTTP statuses. Anything
// unrecognized is a 500 with a generic body so internals do not leak.
func writeServiceError(w http.ResponseWriter, mess string, err error) {
	switch {
	case isNotFound(err):
		writeError(w, http.StatusNotFound, mess, err.Error())
	case isConflict(err):
		writeError(w, http.StatusConflict, mess, err.Error())
	case isBadRequest(err):
		writeError(w, http.StatusBadRequest, mess, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, mess, "internal server error")
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, database.ErrBookingNotFound) ||
		errors.Is(err, database.ErrRoomNotFound) ||
		errors.Is(err, database.ErrCustomerNotFound) ||
		errors.Is(err, database.ErrStaffNotFound) ||
		errors.Is(err, database.ErrAttendanceNotFound) ||
		errors.Is(err, database.ErrRoomTypeNotFound) ||
		errors.Is(err, database.ErrComplaintNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, database.ErrConcurrentModification) ||
		errors.Is(err, database.ErrRoomNotAvailable)
}

func isBadRequest(err error) bool {
	for _, sentinel := range []error{
		database.ErrNotAdvanceBooking,
		database.ErrAlreadyConfirmed,
		database.ErrNotConfirmed,
		database.ErrPaymentDue,
		database.ErrAlreadyCheckedIn,
		database.ErrAlreadyCheckedOut,
		database.ErrNotCheckedIn,
		database.ErrBookingLocked,
		database.ErrBookingInUse,
		database.ErrInvalidStayDates,
		database.ErrInvalidAttendanceStatus,
		database.ErrPaymentMethodRequired,
		database.ErrPaymentOutOfRange,
		database.ErrRoomTypeInUse,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
