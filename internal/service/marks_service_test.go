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

func newMarksService(marks *MockMarksStore, students *MockStudentStore) *MarksService {
	return NewMarksService(marks, students, nil, zerolog.Nop())
}

func TestRecordMark_DefaultsToInternal(t *testing.T) {
	marks := new(MockMarksStore)
	students := new(MockStudentStore)
	svc := newMarksService(marks, students)

	id := uuid.New()
	students.On("GetByID", mock.Anything, id).Return(&model.Student{
		ID: id, Name: "John Doe", Roll: "R1", Class: "FYMCA", Email: "john@example.edu",
	}, nil)
	marks.On("Upsert", mock.Anything, mock.MatchedBy(func(m *model.Mark) bool {
		return m.ExamType == model.ExamInternal && m.Subject == model.SubjectMaths
	})).Return(nil)

	mark, err := svc.Record(context.Background(), model.CreateMarkRequest{
		StudentID: id.String(),
		Subject:   model.SubjectMaths,
		Score:     floatPtr(80),
		Total:     floatPtr(100),
	})
	require.NoError(t, err)

	assert.Equal(t, model.ExamInternal, mark.ExamType)
	require.NotNil(t, mark.Student)
	assert.Equal(t, "R1", mark.Student.Roll)
	marks.AssertExpectations(t)
}

func TestRecordMark_ScoreAboveTotalRejected(t *testing.T) {
	marks := new(MockMarksStore)
	students := new(MockStudentStore)
	svc := newMarksService(marks, students)

	id := uuid.New()
	students.On("GetByID", mock.Anything, id).Return(&model.Student{ID: id}, nil)

	_, err := svc.Record(context.Background(), model.CreateMarkRequest{
		StudentID: id.String(),
		Subject:   model.SubjectOS,
		Score:     floatPtr(101),
		Total:     floatPtr(100),
	})
	assert.ErrorIs(t, err, ErrScoreExceedsTotal)
	marks.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRecordMark_UnknownStudent(t *testing.T) {
	marks := new(MockMarksStore)
	students := new(MockStudentStore)
	svc := newMarksService(marks, students)

	id := uuid.New()
	students.On("GetByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

	_, err := svc.Record(context.Background(), model.CreateMarkRequest{
		StudentID: id.String(),
		Subject:   model.SubjectMaths,
		Score:     floatPtr(50),
		Total:     floatPtr(100),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStudentMarks_IncludesStats(t *testing.T) {
	marks := new(MockMarksStore)
	svc := newMarksService(marks, new(MockStudentStore))

	id := uuid.New()
	records := []model.Mark{
		{Subject: model.SubjectEnglish, Score: 60, Total: 100, Percentage: 60},
		{Subject: model.SubjectMaths, Score: 80, Total: 100, Percentage: 80},
		{Subject: model.SubjectOS, Score: 100, Total: 100, Percentage: 100},
	}
	marks.On("List", mock.Anything, mock.MatchedBy(func(f model.MarkFilter) bool {
		return f.StudentID != nil && *f.StudentID == id
	}), repository.MarkSortStudent).Return(records, nil)

	got, stats, err := svc.StudentMarks(context.Background(), id, "", "")
	require.NoError(t, err)

	assert.Len(t, got, 3)
	assert.Equal(t, 3, stats.TotalSubjects)
	assert.InDelta(t, 80.0, stats.AveragePercentage, 1e-9)
	assert.InDelta(t, 240.0, stats.TotalScore, 1e-9)
	assert.InDelta(t, 300.0, stats.TotalMaxMarks, 1e-9)
}

func TestSubjectLeaderboard_UsesLeaderboardSort(t *testing.T) {
	marks := new(MockMarksStore)
	svc := newMarksService(marks, new(MockStudentStore))

	records := []model.Mark{
		{Subject: model.SubjectMaths, Percentage: 95},
		{Subject: model.SubjectMaths, Percentage: 70},
		{Subject: model.SubjectMaths, Percentage: 42.5},
	}
	marks.On("List", mock.Anything, mock.MatchedBy(func(f model.MarkFilter) bool {
		return f.Subject == "Maths"
	}), repository.MarkSortLeaderboard).Return(records, nil)

	_, stats, err := svc.SubjectLeaderboard(context.Background(), "Maths", "")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalStudents)
	assert.InDelta(t, 95.0, stats.HighestPercentage, 1e-9)
	assert.InDelta(t, 42.5, stats.LowestPercentage, 1e-9)
	assert.InDelta(t, 69.166666666, stats.AveragePercentage, 1e-6)
}

func TestComputeStudentMarkStats_Empty(t *testing.T) {
	stats := ComputeStudentMarkStats(nil)
	assert.Equal(t, 0, stats.TotalSubjects)
	assert.Zero(t, stats.AveragePercentage)
}

func TestComputeSubjectMarkStats_SingleRecord(t *testing.T) {
	stats := ComputeSubjectMarkStats([]model.Mark{{Percentage: 73.5}})
	assert.Equal(t, 1, stats.TotalStudents)
	assert.InDelta(t, 73.5, stats.AveragePercentage, 1e-9)
	assert.InDelta(t, 73.5, stats.HighestPercentage, 1e-9)
	assert.InDelta(t, 73.5, stats.LowestPercentage, 1e-9)
}
