package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studrec/studentrecords-backend/internal/model"
	"github.com/studrec/studentrecords-backend/internal/repository"
)

// MarksService implements the normalized marks collection.
type MarksService struct {
	marks    MarksStore
	students StudentStore
	cache    *RosterCache
	log      zerolog.Logger
}

// NewMarksService creates a MarksService.
func NewMarksService(marks MarksStore, students StudentStore, cache *RosterCache, log zerolog.Logger) *MarksService {
	return &MarksService{
		marks:    marks,
		students: students,
		cache:    cache,
		log:      log.With().Str("component", "marks_service").Logger(),
	}
}

// Record upserts the exam result for (student, subject, examType). The
// student must exist and score may not exceed total. ExamType defaults
// to Internal.
func (s *MarksService) Record(ctx context.Context, req model.CreateMarkRequest) (*model.Mark, error) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, err
	}
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if *req.Score > *req.Total {
		return nil, ErrScoreExceedsTotal
	}

	examType := req.ExamType
	if examType == "" {
		examType = model.ExamInternal
	}
	mark := &model.Mark{
		StudentID: studentID,
		Subject:   req.Subject,
		Score:     *req.Score,
		Total:     *req.Total,
		ExamType:  examType,
		ExamDate:  req.ExamDate,
		Remarks:   req.Remarks,
	}
	if err := s.marks.Upsert(ctx, mark); err != nil {
		return nil, err
	}
	mark.Student = &model.StudentRef{
		ID: student.ID, Name: student.Name, Roll: student.Roll,
		Class: student.Class, Email: student.Email,
	}

	s.cache.Invalidate(ctx)
	return mark, nil
}

// List retrieves marks matching the filter, newest exam first.
func (s *MarksService) List(ctx context.Context, f model.MarkFilter) ([]model.Mark, error) {
	return s.marks.List(ctx, f, repository.MarkSortRecent)
}

// StudentMarks retrieves one student's marks with overall statistics.
func (s *MarksService) StudentMarks(ctx context.Context, studentID uuid.UUID, subject, examType string) ([]model.Mark, model.StudentMarkStats, error) {
	f := model.MarkFilter{StudentID: &studentID, Subject: subject, ExamType: examType}
	marks, err := s.marks.List(ctx, f, repository.MarkSortStudent)
	if err != nil {
		return nil, model.StudentMarkStats{}, err
	}
	return marks, ComputeStudentMarkStats(marks), nil
}

// SubjectLeaderboard retrieves a subject's marks ordered by percentage
// descending, with subject-level statistics.
func (s *MarksService) SubjectLeaderboard(ctx context.Context, subject, examType string) ([]model.Mark, model.SubjectMarkStats, error) {
	f := model.MarkFilter{Subject: subject, ExamType: examType}
	marks, err := s.marks.List(ctx, f, repository.MarkSortLeaderboard)
	if err != nil {
		return nil, model.SubjectMarkStats{}, err
	}
	return marks, ComputeSubjectMarkStats(marks), nil
}

// Update partially updates a marks record; the store recomputes the
// percentage from the new score/total.
func (s *MarksService) Update(ctx context.Context, id uuid.UUID, req model.UpdateMarkRequest) (*model.Mark, error) {
	mark, err := s.marks.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return mark, nil
}

// Delete removes a marks record by ID.
func (s *MarksService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.marks.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// ComputeStudentMarkStats aggregates one student's marks.
func ComputeStudentMarkStats(marks []model.Mark) model.StudentMarkStats {
	stats := model.StudentMarkStats{TotalSubjects: len(marks)}
	if len(marks) == 0 {
		return stats
	}
	var pctSum float64
	for _, m := range marks {
		pctSum += m.Percentage
		stats.TotalScore += m.Score
		stats.TotalMaxMarks += m.Total
	}
	stats.AveragePercentage = pctSum / float64(len(marks))
	return stats
}

// ComputeSubjectMarkStats aggregates a subject's marks across students.
func ComputeSubjectMarkStats(marks []model.Mark) model.SubjectMarkStats {
	stats := model.SubjectMarkStats{TotalStudents: len(marks)}
	if len(marks) == 0 {
		return stats
	}
	var pctSum float64
	stats.HighestPercentage = marks[0].Percentage
	stats.LowestPercentage = marks[0].Percentage
	for _, m := range marks {
		pctSum += m.Percentage
		if m.Percentage > stats.HighestPercentage {
			stats.HighestPercentage = m.Percentage
		}
		if m.Percentage < stats.LowestPercentage {
			stats.LowestPercentage = m.Percentage
		}
	}
	stats.AveragePercentage = pctSum / float64(len(marks))
	return stats
}
