package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studrec/studentrecords-backend/internal/model"
	"github.com/studrec/studentrecords-backend/internal/report"
	"github.com/studrec/studentrecords-backend/internal/repository"
)

// GeneratedReport is the outcome of a successful export: the CSV payload
// plus the download filename and the finalized audit fields.
type GeneratedReport struct {
	Filename    string
	CSV         []byte
	RecordCount int
	ExportID    uuid.UUID
}

// ExportService is the report generator. For each report type it creates
// an audit record in processing state, fetches and aggregates the data,
// serializes CSV, and finalizes the audit record: completed with record
// count and byte size, or failed with the error message. A failed audit
// write never swallows the generation error.
type ExportService struct {
	exports    ExportStore
	attendance AttendanceStore
	marks      MarksStore
	students   StudentStore
	log        zerolog.Logger
}

// NewExportService creates an ExportService.
func NewExportService(exports ExportStore, attendance AttendanceStore, marks MarksStore, students StudentStore, log zerolog.Logger) *ExportService {
	return &ExportService{
		exports:    exports,
		attendance: attendance,
		marks:      marks,
		students:   students,
		log:        log.With().Str("component", "export_service").Logger(),
	}
}

// ExportAttendance generates the attendance report CSV.
func (s *ExportService) ExportAttendance(ctx context.Context, req model.ExportAttendanceRequest) (*GeneratedReport, error) {
	filters := model.ExportFilters{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		StudentID: req.StudentID,
		Class:     req.Class,
	}
	return s.run(ctx, model.ExportAttendance, req.Format, filters,
		fmt.Sprintf("attendance_report_%d.csv", time.Now().UnixMilli()),
		func(ctx context.Context) (*report.Dataset, error) {
			f := model.AttendanceFilter{
				StartDate: req.StartDate,
				EndDate:   req.EndDate,
			}
			if req.StudentID != "" {
				id, err := uuid.Parse(req.StudentID)
				if err != nil {
					return nil, fmt.Errorf("parse student id: %w", err)
				}
				f.StudentID = &id
			}

			records, err := s.attendance.List(ctx, f)
			if err != nil {
				return nil, fmt.Errorf("fetch attendance: %w", err)
			}
			// Class lives on the joined student, so this filter cannot be
			// pushed into the store query.
			records = report.FilterAttendanceByClass(records, req.Class)
			return report.AttendanceDataset(records), nil
		})
}

// ExportMarks generates the marks report CSV.
func (s *ExportService) ExportMarks(ctx context.Context, req model.ExportMarksRequest) (*GeneratedReport, error) {
	filters := model.ExportFilters{
		StudentID: req.StudentID,
		Subject:   req.Subject,
		ExamType:  req.ExamType,
		Class:     req.Class,
	}
	return s.run(ctx, model.ExportMarks, req.Format, filters,
		fmt.Sprintf("marks_report_%d.csv", time.Now().UnixMilli()),
		func(ctx context.Context) (*report.Dataset, error) {
			f := model.MarkFilter{Subject: req.Subject, ExamType: req.ExamType}
			if req.StudentID != "" {
				id, err := uuid.Parse(req.StudentID)
				if err != nil {
					return nil, fmt.Errorf("parse student id: %w", err)
				}
				f.StudentID = &id
			}

			records, err := s.marks.List(ctx, f, repository.MarkSortStudent)
			if err != nil {
				return nil, fmt.Errorf("fetch marks: %w", err)
			}
			records = report.FilterMarksByClass(records, req.Class)
			return report.MarksDataset(records), nil
		})
}

// ExportPerformance generates the single-student performance report CSV.
// The student is resolved before the audit record is created, so an
// unknown id is a plain not-found, not a failed export.
func (s *ExportService) ExportPerformance(ctx context.Context, studentID uuid.UUID, req model.ExportPerformanceRequest) (*GeneratedReport, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	filters := model.ExportFilters{
		StudentID: studentID.String(),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	return s.run(ctx, model.ExportPerformance, req.Format, filters,
		fmt.Sprintf("performance_%s_%d.csv", student.Roll, time.Now().UnixMilli()),
		func(ctx context.Context) (*report.Dataset, error) {
			attendance, err := s.attendance.List(ctx, model.AttendanceFilter{
				StudentID: &studentID,
				StartDate: req.StartDate,
				EndDate:   req.EndDate,
			})
			if err != nil {
				return nil, fmt.Errorf("fetch attendance: %w", err)
			}
			marks, err := s.marks.List(ctx, model.MarkFilter{StudentID: &studentID}, repository.MarkSortSubjectExam)
			if err != nil {
				return nil, fmt.Errorf("fetch marks: %w", err)
			}
			dataset := report.PerformanceDataset(student, attendance, marks)
			// The performance sheet is one report about one student.
			return &report.Dataset{Columns: dataset.Columns, Rows: dataset.Rows, RecordCount: 1}, nil
		})
}

// History retrieves the export audit trail.
func (s *ExportService) History(ctx context.Context, f model.ExportHistoryFilter) ([]model.Export, error) {
	return s.exports.List(ctx, f)
}

// Get retrieves one export audit record.
func (s *ExportService) Get(ctx context.Context, id uuid.UUID) (*model.Export, error) {
	return s.exports.GetByID(ctx, id)
}

// run executes the shared export pipeline around a report builder.
func (s *ExportService) run(
	ctx context.Context,
	exportType model.ExportType,
	format model.ExportFormat,
	filters model.ExportFilters,
	filename string,
	build func(ctx context.Context) (*report.Dataset, error),
) (*GeneratedReport, error) {
	if format == "" {
		format = model.FormatCSV
	}

	audit := &model.Export{
		ExportType:  exportType,
		Format:      format,
		Filters:     filters,
		Status:      model.ExportProcessing,
		RequestedBy: "admin",
	}
	if err := s.exports.Create(ctx, audit); err != nil {
		return nil, fmt.Errorf("create export record: %w", err)
	}

	dataset, err := build(ctx)
	if err != nil {
		s.fail(ctx, audit.ID, err)
		return nil, err
	}
	payload, err := dataset.CSV()
	if err != nil {
		s.fail(ctx, audit.ID, err)
		return nil, err
	}

	recordCount := len(dataset.Rows)
	if dataset.RecordCount > 0 {
		recordCount = dataset.RecordCount
	}
	if err := s.exports.MarkCompleted(ctx, audit.ID, recordCount, int64(len(payload))); err != nil {
		s.log.Error().Err(err).Str("export_id", audit.ID.String()).Msg("finalize export record failed")
	}

	s.log.Info().
		Str("export_id", audit.ID.String()).
		Str("type", string(exportType)).
		Int("records", recordCount).
		Int("bytes", len(payload)).
		Msg("report generated")

	return &GeneratedReport{
		Filename:    filename,
		CSV:         payload,
		RecordCount: recordCount,
		ExportID:    audit.ID,
	}, nil
}

// fail records the failure on the audit row. The caller still propagates
// the original error; this write is a side effect, not a substitute.
func (s *ExportService) fail(ctx context.Context, id uuid.UUID, cause error) {
	if err := s.exports.MarkFailed(ctx, id, cause.Error()); err != nil {
		s.log.Error().Err(err).Str("export_id", id.String()).Msg("record export failure failed")
	}
}
