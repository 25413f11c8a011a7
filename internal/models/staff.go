package models

import "time"

type Staff struct {
	ID          int64   `json:"emp_id"`
	Name        string  `json:"emp_name"`
	StaffTypeID int64   `json:"staff_type_id"`
	ShiftID     int64   `json:"shift_id"`
	IDCardNo    string  `json:"id_card_no"`
	Address     string  `json:"address"`
	ContactNo   string  `json:"contact_no"`
	Salary      float64 `json:"salary"`
}

// StaffDetail is a staff row joined with its type and current shift.
type StaffDetail struct {
	Staff
	StaffType   string `json:"staff_type"`
	Shift       string `json:"shift"`
	ShiftTiming string `json:"shift_timing"`
}

// ShiftRecord is one row of the per-employee shift append-log. The open
// row has ToDate nil; reassigning a shift closes it and opens a new one.
type ShiftRecord struct {
	ID          int64      `json:"history_id"`
	EmpID       int64      `json:"emp_id"`
	ShiftID     int64      `json:"shift_id"`
	Shift       string     `json:"shift"`
	ShiftTiming string     `json:"shift_timing"`
	FromDate    time.Time  `json:"from_date"`
	ToDate      *time.Time `json:"to_date"`
}

type Shift struct {
	ID     int64  `json:"shift_id"`
	Name   string `json:"shift"`
	Timing string `json:"shift_timing"`
}

type StaffType struct {
	ID   int64  `json:"staff_type_id"`
	Name string `json:"staff_type"`
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

type Attendance struct {
	ID       int64            `json:"attendance_id"`
	EmpID    int64            `json:"emp_id"`
	EmpName  string           `json:"emp_name,omitempty"`
	Date     time.Time        `json:"attendance_date"`
	Status   AttendanceStatus `json:"status"`
	MarkedAt time.Time        `json:"marked_at"`
}

type AttendanceStats struct {
	EmpID       int64  `json:"emp_id"`
	EmpName     string `json:"emp_name"`
	PresentDays int    `json:"present_days"`
	AbsentDays  int    `json:"absent_days"`
	TotalMarked int    `json:"total_marked"`
}
