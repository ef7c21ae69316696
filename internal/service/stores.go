package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/studrec/studentrecords-backend/internal/model"
	"github.com/studrec/studentrecords-backend/internal/repository"
)

// Store interfaces consumed by the services. The pgx repositories satisfy
// them in production; tests substitute mocks.

// StudentStore persists student profiles.
type StudentStore interface {
	Create(ctx context.Context, s *model.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttendanceStore persists normalized attendance records.
type AttendanceStore interface {
	Upsert(ctx context.Context, a *model.Attendance) error
	List(ctx context.Context, f model.AttendanceFilter) ([]model.Attendance, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Attendance, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateAttendanceRequest) (*model.Attendance, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListEmbedded(ctx context.Context) (map[uuid.UUID][]model.EmbeddedAttendance, error)
}

// MarksStore persists normalized marks records.
type MarksStore interface {
	Upsert(ctx context.Context, m *model.Mark) error
	List(ctx context.Context, f model.MarkFilter, sort repository.MarkSort) ([]model.Mark, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Mark, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateMarkRequest) (*model.Mark, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListEmbedded(ctx context.Context) (map[uuid.UUID][]model.EmbeddedMark, error)
}

// ExportStore persists export audit records.
type ExportStore interface {
	Create(ctx context.Context, e *model.Export) error
	MarkCompleted(ctx context.Context, id uuid.UUID, recordCount int, fileSize int64) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
	List(ctx context.Context, f model.ExportHistoryFilter) ([]model.Export, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Export, error)
}
