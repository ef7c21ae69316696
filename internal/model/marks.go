package model

import (
	"time"

	"github.com/google/uuid"
)

// Subject is the closed set of taught subjects.
type Subject string

const (
	SubjectEnglish Subject = "English"
	SubjectMaths   Subject = "Maths"
	SubjectOS      Subject = "OS"
	SubjectMIS     Subject = "MIS"
	SubjectSEPM    Subject = "SEPM"
)

// Subjects lists every valid subject in display order.
var Subjects = []Subject{SubjectEnglish, SubjectMaths, SubjectOS, SubjectMIS, SubjectSEPM}

// ValidSubject reports whether s is a recognized subject.
func ValidSubject(s string) bool {
	for _, sub := range Subjects {
		if s == string(sub) {
			return true
		}
	}
	return false
}

// ExamType classifies a marks record.
type ExamType string

const (
	ExamInternal   ExamType = "Internal"
	ExamExternal   ExamType = "External"
	ExamAssignment ExamType = "Assignment"
	ExamProject    ExamType = "Project"
	ExamFinal      ExamType = "Final"
)

// Mark is one exam result. At most one row exists per
// (student, subject, examType); re-submission overwrites.
//
// Percentage is computed by the store from score/total on every write and
// is never accepted from input.
type Mark struct {
	ID         uuid.UUID `json:"id"`
	StudentID  uuid.UUID `json:"studentId"`
	Subject    Subject   `json:"subject"`
	Score      float64   `json:"score"`
	Total      float64   `json:"total"`
	Percentage float64   `json:"percentage"`
	ExamType   ExamType  `json:"examType"`
	ExamDate   string    `json:"examDate"` // YYYY-MM-DD, may be empty
	Remarks    string    `json:"remarks"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Student *StudentRef `json:"student,omitempty"`
}

// CreateMarkRequest records (or re-records) an exam result.
// Score and Total are pointers so that a legitimate score of 0 survives
// the required check.
type CreateMarkRequest struct {
	StudentID string   `json:"studentId" binding:"required,uuid"`
	Subject   Subject  `json:"subject" binding:"required,oneof=English Maths OS MIS SEPM"`
	Score     *float64 `json:"score" binding:"required,gte=0"`
	Total     *float64 `json:"total" binding:"required,gte=1"`
	ExamType  ExamType `json:"examType" binding:"omitempty,oneof=Internal External Assignment Project Final"`
	ExamDate  string   `json:"examDate" binding:"omitempty,datetime=2006-01-02"`
	Remarks   string   `json:"remarks" binding:"omitempty,max=500"`
}

// UpdateMarkRequest partially updates a marks record.
type UpdateMarkRequest struct {
	Score    *float64 `json:"score" binding:"omitempty,gte=0"`
	Total    *float64 `json:"total" binding:"omitempty,gte=1"`
	ExamDate *string  `json:"examDate" binding:"omitempty,datetime=2006-01-02"`
	Remarks  *string  `json:"remarks" binding:"omitempty,max=500"`
}

// MarkFilter narrows marks list queries. Percentage bounds are inclusive.
type MarkFilter struct {
	StudentID     *uuid.UUID
	Subject       string
	ExamType      string
	MinPercentage *float64
	MaxPercentage *float64
}

// StudentMarkStats summarizes one student's marks.
type StudentMarkStats struct {
	TotalSubjects     int     `json:"totalSubjects"`
	AveragePercentage float64 `json:"averagePercentage"`
	TotalScore        float64 `json:"totalScore"`
	TotalMaxMarks     float64 `json:"totalMaxMarks"`
}

// SubjectMarkStats summarizes one subject across students.
type SubjectMarkStats struct {
	TotalStudents     int     `json:"totalStudents"`
	AveragePercentage float64 `json:"averagePercentage"`
	HighestPercentage float64 `json:"highestPercentage"`
	LowestPercentage  float64 `json:"lowestPercentage"`
}
