package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studrec/studentrecords-backend/internal/model"
	"github.com/studrec/studentrecords-backend/internal/repository"
)

// ErrScoreExceedsTotal rejects a mark whose score is above its total.
var ErrScoreExceedsTotal = errors.New("score cannot be greater than total marks")

// StudentService implements student registration, the projected roster
// view, and the legacy embedded attendance/marks routes. The normalized
// attendance and marks tables are the single source of truth; the
// embedded arrays on a student are assembled from them at read time.
type StudentService struct {
	students   StudentStore
	attendance AttendanceStore
	marks      MarksStore
	cache      *RosterCache
	log        zerolog.Logger
}

// NewStudentService creates a StudentService.
func NewStudentService(students StudentStore, attendance AttendanceStore, marks MarksStore, cache *RosterCache, log zerolog.Logger) *StudentService {
	return &StudentService{
		students:   students,
		attendance: attendance,
		marks:      marks,
		cache:      cache,
		log:        log.With().Str("component", "student_service").Logger(),
	}
}

// Register creates a student. Roll is case-normalized to upper, email to
// lower; class defaults when omitted.
func (s *StudentService) Register(ctx context.Context, req model.CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		Name:  strings.TrimSpace(req.Name),
		Roll:  strings.ToUpper(strings.TrimSpace(req.Roll)),
		Class: strings.TrimSpace(req.Class),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
	}
	if student.Class == "" {
		student.Class = model.DefaultClass
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}
	student.Attendance = []model.EmbeddedAttendance{}
	student.Marks = []model.EmbeddedMark{}

	s.cache.Invalidate(ctx)
	return student, nil
}

// ListProjected returns all students, newest first, each carrying its
// attendance and marks projection.
func (s *StudentService) ListProjected(ctx context.Context) ([]model.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	attendanceByStudent, err := s.attendance.ListEmbedded(ctx)
	if err != nil {
		return nil, err
	}
	marksByStudent, err := s.marks.ListEmbedded(ctx)
	if err != nil {
		return nil, err
	}

	for i := range students {
		students[i].Attendance = attendanceByStudent[students[i].ID]
		if students[i].Attendance == nil {
			students[i].Attendance = []model.EmbeddedAttendance{}
		}
		students[i].Marks = marksByStudent[students[i].ID]
		if students[i].Marks == nil {
			students[i].Marks = []model.EmbeddedMark{}
		}
	}
	return students, nil
}

// ListProjectedJSON serves the roster through the redis cache: a warm hit
// skips the store entirely, a miss assembles the projection and caches it.
func (s *StudentService) ListProjectedJSON(ctx context.Context) ([]byte, error) {
	if payload := s.cache.Get(ctx); payload != nil {
		return payload, nil
	}

	students, err := s.ListProjected(ctx)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	payload, err := json.Marshal(students)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, payload)
	return payload, nil
}

// GetProjected returns one student with its attendance/marks projection.
func (s *StudentService) GetProjected(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	records, err := s.attendance.List(ctx, model.AttendanceFilter{StudentID: &id})
	if err != nil {
		return nil, err
	}
	student.Attendance = make([]model.EmbeddedAttendance, 0, len(records))
	for _, a := range records {
		student.Attendance = append(student.Attendance, model.EmbeddedAttendance{Date: a.Date, Status: a.Status})
	}

	marks, err := s.marks.List(ctx, model.MarkFilter{StudentID: &id, ExamType: string(model.ExamInternal)}, repository.MarkSortSubjectExam)
	if err != nil {
		return nil, err
	}
	student.Marks = make([]model.EmbeddedMark, 0, len(marks))
	for _, m := range marks {
		student.Marks = append(student.Marks, model.EmbeddedMark{Subject: m.Subject, Score: m.Score, Total: m.Total})
	}
	return student, nil
}

// Delete removes a student; dependent attendance/marks rows cascade in
// the store.
func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// MarkAttendance services the legacy PUT /api/students/attendance route by
// upserting the day's normalized record, then returns the projected student.
func (s *StudentService) MarkAttendance(ctx context.Context, req model.MarkStudentAttendanceRequest) (*model.Student, error) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	record := &model.Attendance{
		StudentID: studentID,
		Date:      req.Date,
		Status:    req.Status,
	}
	if err := s.attendance.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return s.GetProjected(ctx, studentID)
}

// UpsertMark services the legacy PUT /api/students/marks route by
// upserting the (student, subject, Internal) normalized record, then
// returns the projected student.
func (s *StudentService) UpsertMark(ctx context.Context, req model.UpsertStudentMarkRequest) (*model.Student, error) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	if *req.Score > *req.Total {
		return nil, ErrScoreExceedsTotal
	}

	mark := &model.Mark{
		StudentID: studentID,
		Subject:   req.Subject,
		Score:     *req.Score,
		Total:     *req.Total,
		ExamType:  model.ExamInternal,
	}
	if err := s.marks.Upsert(ctx, mark); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return s.GetProjected(ctx, studentID)
}
