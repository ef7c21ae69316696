package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/studrec/studentrecords-backend/internal/model"
	"github.com/studrec/studentrecords-backend/internal/repository"
)

func newAttendanceService(attendance *MockAttendanceStore, students *MockStudentStore) *AttendanceService {
	return NewAttendanceService(attendance, students, nil, zerolog.Nop())
}

func TestMarkAttendance_AttachesStudentRef(t *testing.T) {
	attendance := new(MockAttendanceStore)
	students := new(MockStudentStore)
	svc := newAttendanceService(attendance, students)

	id := uuid.New()
	students.On("GetByID", mock.Anything, id).Return(&model.Student{
		ID: id, Name: "John Doe", Roll: "R1", Class: "FYMCA", Email: "john@example.edu",
	}, nil)
	attendance.On("Upsert", mock.Anything, mock.MatchedBy(func(a *model.Attendance) bool {
		return a.StudentID == id && a.Date == "2026-02-10" && a.Remarks == "sick leave"
	})).Return(nil)

	record, err := svc.Mark(context.Background(), model.CreateAttendanceRequest{
		StudentID: id.String(),
		Date:      "2026-02-10",
		Status:    model.StatusAbsent,
		Remarks:   "sick leave",
	})
	require.NoError(t, err)

	require.NotNil(t, record.Student)
	assert.Equal(t, "R1", record.Student.Roll)
	assert.Equal(t, model.StatusAbsent, record.Status)
	attendance.AssertExpectations(t)
}

func TestMarkAttendance_UnknownStudent(t *testing.T) {
	attendance := new(MockAttendanceStore)
	students := new(MockStudentStore)
	svc := newAttendanceService(attendance, students)

	id := uuid.New()
	students.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

	_, err := svc.Mark(context.Background(), model.CreateAttendanceRequest{
		StudentID: id.String(),
		Date:      "2026-02-10",
		Status:    model.StatusPresent,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	attendance.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdateAttendance_Passthrough(t *testing.T) {
	attendance := new(MockAttendanceStore)
	svc := newAttendanceService(attendance, new(MockStudentStore))

	id := uuid.New()
	remarks := "late bus"
	req := model.UpdateAttendanceRequest{Status: model.StatusPresent, Remarks: &remarks}
	attendance.On("Update", mock.Anything, id, req).Return(&model.Attendance{
		ID: id, Status: model.StatusPresent, Remarks: remarks,
	}, nil)

	record, err := svc.Update(context.Background(), id, req)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPresent, record.Status)
	assert.Equal(t, "late bus", record.Remarks)
}

func TestDeleteAttendance_NotFound(t *testing.T) {
	attendance := new(MockAttendanceStore)
	svc := newAttendanceService(attendance, new(MockStudentStore))

	id := uuid.New()
	attendance.On("Delete", mock.Anything, id).Return(repository.ErrNotFound)

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
