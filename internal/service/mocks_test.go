package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/studrec/studentrecords-backend/internal/model"
	"github.com/studrec/studentrecords-backend/internal/repository"
)

type MockStudentStore struct {
	mock.Mock
}

func (m *MockStudentStore) Create(ctx context.Context, s *model.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStudentStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentStore) List(ctx context.Context) ([]model.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Student), args.Error(1)
}

func (m *MockStudentStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAttendanceStore struct {
	mock.Mock
}

func (m *MockAttendanceStore) Upsert(ctx context.Context, a *model.Attendance) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAttendanceStore) List(ctx context.Context, f model.AttendanceFilter) ([]model.Attendance, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attendance), args.Error(1)
}

func (m *MockAttendanceStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Attendance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attendance), args.Error(1)
}

func (m *MockAttendanceStore) Update(ctx context.Context, id uuid.UUID, req model.UpdateAttendanceRequest) (*model.Attendance, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attendance), args.Error(1)
}

func (m *MockAttendanceStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAttendanceStore) ListEmbedded(ctx context.Context) (map[uuid.UUID][]model.EmbeddedAttendance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]model.EmbeddedAttendance), args.Error(1)
}

type MockMarksStore struct {
	mock.Mock
}

func (m *MockMarksStore) Upsert(ctx context.Context, mk *model.Mark) error {
	args := m.Called(ctx, mk)
	return args.Error(0)
}

func (m *MockMarksStore) List(ctx context.Context, f model.MarkFilter, sort repository.MarkSort) ([]model.Mark, error) {
	args := m.Called(ctx, f, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Mark), args.Error(1)
}

func (m *MockMarksStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Mark, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Mark), args.Error(1)
}

func (m *MockMarksStore) Update(ctx context.Context, id uuid.UUID, req model.UpdateMarkRequest) (*model.Mark, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Mark), args.Error(1)
}

func (m *MockMarksStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMarksStore) ListEmbedded(ctx context.Context) (map[uuid.UUID][]model.EmbeddedMark, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]model.EmbeddedMark), args.Error(1)
}

type MockExportStore struct {
	mock.Mock
}

func (m *MockExportStore) Create(ctx context.Context, e *model.Export) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExportStore) MarkCompleted(ctx context.Context, id uuid.UUID, recordCount int, fileSize int64) error {
	args := m.Called(ctx, id, recordCount, fileSize)
	return args.Error(0)
}

func (m *MockExportStore) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	args := m.Called(ctx, id, message)
	return args.Error(0)
}

func (m *MockExportStore) List(ctx context.Context, f model.ExportHistoryFilter) ([]model.Export, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Export), args.Error(1)
}

func (m *MockExportStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Export, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Export), args.Error(1)
}
