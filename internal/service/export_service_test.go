package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/studrec/studentrecords-backend/internal/model"
	"github.com/studrec/studentrecords-backend/internal/repository"
)

func newExportService(exports *MockExportStore, attendance *MockAttendanceStore, marks *MockMarksStore, students *MockStudentStore) *ExportService {
	return NewExportService(exports, attendance, marks, students, zerolog.Nop())
}

func stubAuditCreate(exports *MockExportStore) *uuid.UUID {
	created := new(uuid.UUID)
	exports.On("Create", mock.Anything, mock.AnythingOfType("*model.Export")).
		Run(func(args mock.Arguments) {
			e := args.Get(1).(*model.Export)
			e.ID = uuid.New()
			*created = e.ID
		}).
		Return(nil)
	return created
}

func TestExportAttendance_Success(t *testing.T) {
	exports := new(MockExportStore)
	attendance := new(MockAttendanceStore)
	marks := new(MockMarksStore)
	students := new(MockStudentStore)
	svc := newExportService(exports, attendance, marks, students)

	auditID := stubAuditCreate(exports)

	records := []model.Attendance{
		{
			Date:   "2026-02-10",
			Status: model.StatusPresent,
			Student: &model.StudentRef{
				Name: "Jane Roe", Roll: "R2", Class: "FYMCA", Email: "jane@example.edu",
			},
		},
		{
			Date:   "2026-02-09",
			Status: model.StatusAbsent,
			Student: &model.StudentRef{
				Name: "John Doe", Roll: "R1", Class: "FYMCA", Email: "john@example.edu",
			},
		},
	}
	attendance.On("List", mock.Anything, mock.AnythingOfType("model.AttendanceFilter")).Return(records, nil)

	exports.On("MarkCompleted", mock.Anything, mock.AnythingOfType("uuid.UUID"), 2, mock.AnythingOfType("int64")).Return(nil)

	result, err := svc.ExportAttendance(context.Background(), model.ExportAttendanceRequest{
		StartDate: "2026-02-01",
		EndDate:   "2026-02-28",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.RecordCount)
	assert.Equal(t, *auditID, result.ExportID)
	assert.True(t, strings.HasPrefix(result.Filename, "attendance_report_"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	lines := strings.Split(strings.TrimRight(string(result.CSV), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Student Name,Roll Number,Class,Status,Remarks", lines[0])
	assert.Equal(t, "2026-02-10,Jane Roe,R2,FYMCA,Present,", lines[1])

	exports.AssertExpectations(t)
	attendance.AssertExpectations(t)
}

func TestExportAttendance_CreatesAuditInProcessingState(t *testing.T) {
	exports := new(MockExportStore)
	attendance := new(MockAttendanceStore)
	svc := newExportService(exports, attendance, new(MockMarksStore), new(MockStudentStore))

	exports.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Export) bool {
		return e.Status == model.ExportProcessing &&
			e.ExportType == model.ExportAttendance &&
			e.Format == model.FormatCSV &&
			e.Filters.Class == "FYMCA"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Export).ID = uuid.New()
	}).Return(nil)

	attendance.On("List", mock.Anything, mock.Anything).Return([]model.Attendance{}, nil)
	exports.On("MarkCompleted", mock.Anything, mock.Anything, 0, mock.Anything).Return(nil)

	_, err := svc.ExportAttendance(context.Background(), model.ExportAttendanceRequest{Class: "FYMCA"})
	require.NoError(t, err)

	exports.AssertExpectations(t)
}

func TestExportAttendance_FetchFailureMarksFailedAndPropagates(t *testing.T) {
	exports := new(MockExportStore)
	attendance := new(MockAttendanceStore)
	svc := newExportService(exports, attendance, new(MockMarksStore), new(MockStudentStore))

	auditID := stubAuditCreate(exports)

	cause := errors.New("connection reset")
	attendance.On("List", mock.Anything, mock.Anything).Return(nil, cause)

	var failedID uuid.UUID
	var failedMsg string
	exports.On("MarkFailed", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			failedID = args.Get(1).(uuid.UUID)
			failedMsg = args.Get(2).(string)
		}).
		Return(nil)

	_, err := svc.ExportAttendance(context.Background(), model.ExportAttendanceRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, *auditID, failedID)
	assert.Contains(t, failedMsg, "connection reset")
	exports.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExportAttendance_FailedAuditWriteStillPropagatesCause(t *testing.T) {
	exports := new(MockExportStore)
	attendance := new(MockAttendanceStore)
	svc := newExportService(exports, attendance, new(MockMarksStore), new(MockStudentStore))

	stubAuditCreate(exports)

	cause := errors.New("query timeout")
	attendance.On("List", mock.Anything, mock.Anything).Return(nil, cause)
	exports.On("MarkFailed", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("audit table gone"))

	_, err := svc.ExportAttendance(context.Background(), model.ExportAttendanceRequest{})
	assert.ErrorIs(t, err, cause)
}

func TestExportMarks_FiltersByClassInMemory(t *testing.T) {
	exports := new(MockExportStore)
	marks := new(MockMarksStore)
	svc := newExportService(exports, new(MockAttendanceStore), marks, new(MockStudentStore))

	stubAuditCreate(exports)

	records := []model.Mark{
		{
			Subject: model.SubjectMaths, Score: 80, Total: 100, Percentage: 80,
			ExamType: model.ExamInternal,
			Student:  &model.StudentRef{Name: "A", Roll: "R1", Class: "FYMCA"},
		},
		{
			Subject: model.SubjectMaths, Score: 90, Total: 100, Percentage: 90,
			ExamType: model.ExamInternal,
			Student:  &model.StudentRef{Name: "B", Roll: "R2", Class: "SYMCA"},
		},
	}
	marks.On("List", mock.Anything, mock.AnythingOfType("model.MarkFilter"), repository.MarkSortStudent).Return(records, nil)
	exports.On("MarkCompleted", mock.Anything, mock.Anything, 1, mock.Anything).Return(nil)

	result, err := svc.ExportMarks(context.Background(), model.ExportMarksRequest{Class: "FYMCA"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.RecordCount)
	assert.Contains(t, string(result.CSV), "A,R1,FYMCA")
	assert.NotContains(t, string(result.CSV), "SYMCA")
	assert.True(t, strings.HasPrefix(result.Filename, "marks_report_"))
}

func TestExportPerformance_UnknownStudentSkipsAudit(t *testing.T) {
	exports := new(MockExportStore)
	students := new(MockStudentStore)
	svc := newExportService(exports, new(MockAttendanceStore), new(MockMarksStore), students)

	id := uuid.New()
	students.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

	_, err := svc.ExportPerformance(context.Background(), id, model.ExportPerformanceRequest{})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	exports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExportPerformance_CountsAsOneRecord(t *testing.T) {
	exports := new(MockExportStore)
	attendance := new(MockAttendanceStore)
	marks := new(MockMarksStore)
	students := new(MockStudentStore)
	svc := newExportService(exports, attendance, marks, students)

	id := uuid.New()
	students.On("GetByID", mock.Anything, id).Return(&model.Student{
		ID: id, Name: "John Doe", Roll: "R1", Class: "FYMCA", Email: "john@example.edu",
	}, nil)

	stubAuditCreate(exports)

	attendance.On("List", mock.Anything, mock.Anything).Return([]model.Attendance{
		{Date: "2026-02-10", Status: model.StatusPresent},
		{Date: "2026-02-11", Status: model.StatusAbsent},
	}, nil)
	marks.On("List", mock.Anything, mock.Anything, repository.MarkSortSubjectExam).Return([]model.Mark{
		{Subject: model.SubjectOS, ExamType: model.ExamInternal, Score: 80, Total: 100, Percentage: 80},
	}, nil)

	var completedCount int
	exports.On("MarkCompleted", mock.Anything, mock.Anything, mock.AnythingOfType("int"), mock.Anything).
		Run(func(args mock.Arguments) { completedCount = args.Get(2).(int) }).
		Return(nil)

	result, err := svc.ExportPerformance(context.Background(), id, model.ExportPerformanceRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.RecordCount)
	assert.Equal(t, 1, completedCount)
	assert.True(t, strings.HasPrefix(result.Filename, "performance_R1_"))
	assert.Contains(t, string(result.CSV), "ATTENDANCE SUMMARY")
	assert.Contains(t, string(result.CSV), "OS (Internal)")
}

func TestExportHistory_Passthrough(t *testing.T) {
	exports := new(MockExportStore)
	svc := newExportService(exports, new(MockAttendanceStore), new(MockMarksStore), new(MockStudentStore))

	want := []model.Export{{ID: uuid.New(), Status: model.ExportCompleted}}
	filter := model.ExportHistoryFilter{Status: "completed", Limit: 10}
	exports.On("List", mock.Anything, filter).Return(want, nil)

	got, err := svc.History(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
