package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studrec/studentrecords-backend/internal/model"
)

// AttendanceService implements the normalized attendance collection.
type AttendanceService struct {
	attendance AttendanceStore
	students   StudentStore
	cache      *RosterCache
	log        zerolog.Logger
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(attendance AttendanceStore, students StudentStore, cache *RosterCache, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		students:   students,
		cache:      cache,
		log:        log.With().Str("component", "attendance_service").Logger(),
	}
}

// Mark upserts the student's record for the given day. The student must
// exist; re-marking the same day overwrites status and remarks.
func (s *AttendanceService) Mark(ctx context.Context, req model.CreateAttendanceRequest) (*model.Attendance, error) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, err
	}
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	record := &model.Attendance{
		StudentID: studentID,
		Date:      req.Date,
		Status:    req.Status,
		Remarks:   req.Remarks,
	}
	if err := s.attendance.Upsert(ctx, record); err != nil {
		return nil, err
	}
	record.Student = &model.StudentRef{
		ID: student.ID, Name: student.Name, Roll: student.Roll,
		Class: student.Class, Email: student.Email,
	}

	s.cache.Invalidate(ctx)
	return record, nil
}

// List retrieves attendance records matching the filter.
func (s *AttendanceService) List(ctx context.Context, f model.AttendanceFilter) ([]model.Attendance, error) {
	return s.attendance.List(ctx, f)
}

// Update partially updates an attendance record by ID.
func (s *AttendanceService) Update(ctx context.Context, id uuid.UUID, req model.UpdateAttendanceRequest) (*model.Attendance, error) {
	record, err := s.attendance.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return record, nil
}

// Delete removes an attendance record by ID.
func (s *AttendanceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.attendance.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}
