package service

import (
	"context"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

type StaffService struct {
	repo   domain.StaffRepository
	logger *zerolog.Logger
}

func NewStaffService(repo domain.StaffRepository, logger *zerolog.Logger) *StaffService {
	return &StaffService{repo: repo, logger: logger}
}

func (s *StaffService) CreateStaff(ctx context.Context, staff *models.Staff) error {
	return s.repo.CreateStaff(ctx, staff)
}

func (s *StaffService) GetStaff(ctx context.Context, id int64) (*models.StaffDetail, error) {
	return s.repo.GetStaff(ctx, id)
}

func (s *StaffService) ListStaff(ctx context.Context) ([]*models.StaffDetail, error) {
	return s.repo.ListStaff(ctx)
}

func (s *StaffService) UpdateStaff(ctx context.Context, staff *models.Staff) error {
	return s.repo.UpdateStaff(ctx, staff)
}

func (s *StaffService) DeleteStaff(ctx context.Context, id int64) error {
	return s.repo.DeleteStaff(ctx, id)
}

func (s *StaffService) GetShiftHistory(ctx context.Context, empID int64) ([]*models.ShiftRecord, error) {
	if _, err := s.repo.GetStaff(ctx, empID); err != nil {
		return nil, err
	}
	return s.repo.GetShiftHistory(ctx, empID)
}

func (s *StaffService) ListShifts(ctx context.Context) ([]*models.Shift, error) {
	return s.repo.ListShifts(ctx)
}

func (s *StaffService) ListStaffTypes(ctx context.Context) ([]*models.StaffType, error) {
	return s.repo.ListStaffTypes(ctx)
}

// MarkAttendance validates the status and employee before the idempotent
// upsert.
func (s *StaffService) MarkAttendance(ctx context.Context, a *models.Attendance) error {
	if !a.Status.Valid() {
		return database.ErrInvalidAttendanceStatus
	}
	if _, err := s.repo.GetStaff(ctx, a.EmpID); err != nil {
		return err
	}
	return s.repo.MarkAttendance(ctx, a)
}

func (s *StaffService) DeleteAttendance(ctx context.Context, empID int64, date time.Time) error {
	return s.repo.DeleteAttendance(ctx, empID, date)
}

func (s *StaffService) ListAttendance(ctx context.Context, month time.Time) ([]*models.Attendance, error) {
	return s.repo.ListAttendance(ctx, month)
}

func (s *StaffService) AttendanceStats(ctx context.Context, month time.Time) ([]*models.AttendanceStats, error) {
	return s.repo.AttendanceStats(ctx, month)
}
