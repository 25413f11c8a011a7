package api

import (
	"net/http"
	"time"

	"hotelier/internal/models"
)

type staffRequest struct {
	EmpName     string  `json:"emp_name"`
	StaffTypeID int64   `json:"staff_type_id"`
	ShiftID     int64   `json:"shift_id"`
	IDCardNo    string  `json:"id_card_no"`
	Address     string  `json:"address"`
	ContactNo   string  `json:"contact_no"`
	Salary      float64 `json:"salary"`
}

type attendanceRequest struct {
	EmpID  int64  `json:"emp_id"`
	Date   string `json:"attendance_date"`
	Status string `json:"status"`
}

func (s *Server) handleCreateStaff(w http.ResponseWriter, r *http.Request) {
	var req staffRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Staff Create Failed", err.Error())
		return
	}
	if req.EmpName == "" || req.StaffTypeID <= 0 || req.ShiftID <= 0 {
		writeError(w, http.StatusBadRequest, "Staff Create Failed", "emp_name, staff_type_id and shift_id are required")
		return
	}

	staff := req.toModel(0)
	if err := s.staff.CreateStaff(r.Context(), staff); err != nil {
		writeServiceError(w, "Staff Create Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Staff Created Successfully", staff)
}

func (s *Server) handleGetStaff(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	staff, err := s.staff.GetStaff(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Staff Not Found", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Staff Details", staff)
}

func (s *Server) handleListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := s.staff.ListStaff(r.Context())
	if err != nil {
		writeServiceError(w, "Staff List Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Staff List", staff)
}

func (s *Server) handleUpdateStaff(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req staffRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Staff Update Failed", err.Error())
		return
	}

	if err := s.staff.UpdateStaff(r.Context(), req.toModel(id)); err != nil {
		writeServiceError(w, "Staff Update Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Staff Updated Successfully", nil)
}

func (s *Server) handleDeleteStaff(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.staff.DeleteStaff(r.Context(), id); err != nil {
		writeServiceError(w, "Staff Delete Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Staff Deleted Successfully", nil)
}

func (s *Server) handleShiftHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	history, err := s.staff.GetShiftHistory(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Shift History Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Shift History", history)
}

func (s *Server) handleListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := s.staff.ListShifts(r.Context())
	if err != nil {
		writeServiceError(w, "Shift List Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Shift List", shifts)
}

func (s *Server) handleListStaffTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.staff.ListStaffTypes(r.Context())
	if err != nil {
		writeServiceError(w, "Staff Type List Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Staff Type List", types)
}

func (s *Server) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Attendance Failed", err.Error())
		return
	}

	date, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Attendance Failed", "invalid attendance_date; expected YYYY-MM-DD")
		return
	}

	attendance := &models.Attendance{
		EmpID:  req.EmpID,
		Date:   date,
		Status: models.AttendanceStatus(req.Status),
	}
	if err := s.staff.MarkAttendance(r.Context(), attendance); err != nil {
		writeServiceError(w, "Attendance Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Attendance Marked Successfully", attendance)
}

func (s *Server) handleDeleteAttendance(w http.ResponseWriter, r *http.Request) {
	empID, ok := pathID(w, r, "empId")
	if !ok {
		return
	}

	date, err := time.Parse(models.DateLayout, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Attendance Delete Failed", "invalid date; expected YYYY-MM-DD")
		return
	}

	if err := s.staff.DeleteAttendance(r.Context(), empID, date); err != nil {
		writeServiceError(w, "Attendance Delete Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Attendance Deleted Successfully", nil)
}

func (s *Server) handleListAttendance(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	records, err := s.staff.ListAttendance(r.Context(), month)
	if err != nil {
		writeServiceError(w, "Attendance List Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Attendance List", records)
}

func (s *Server) handleAttendanceStats(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	stats, err := s.staff.AttendanceStats(r.Context(), month)
	if err != nil {
		writeServiceError(w, "Attendance Stats Failed", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Attendance Stats", stats)
}

// monthParam reads an optional ?month=YYYY-MM query, defaulting to the
// current month.
func monthParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return time.Now(), true
	}
	month, err := time.Parse("2006-01", raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid Request", "invalid month; expected YYYY-MM")
		return time.Time{}, false
	}
	return month, true
}

func (r staffRequest) toModel(id int64) *models.Staff {
	return &models.Staff{
		ID:          id,
		Name:        r.EmpName,
		StaffTypeID: r.StaffTypeID,
		ShiftID:     r.ShiftID,
		IDCardNo:    r.IDCardNo,
		Address:     r.Address,
		ContactNo:   r.ContactNo,
		Salary:      r.Salary,
	}
}
