package model

import (
	"time"

	"github.com/google/uuid"
)

// Student represents a registered student profile.
//
// Attendance and Marks are read projections assembled from the normalized
// attendance/marks tables. They are never written through this struct;
// mutations go through the normalized collections.
type Student struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Roll      string    `json:"roll"`
	Class     string    `json:"class"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Attendance []EmbeddedAttendance `json:"attendance"`
	Marks      []EmbeddedMark       `json:"marks"`
}

// StudentRef is the subset of student fields joined onto attendance and
// marks records.
type StudentRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Roll  string    `json:"roll"`
	Class string    `json:"class"`
	Email string    `json:"email"`
}

// EmbeddedAttendance is one day's entry in the projected attendance view.
type EmbeddedAttendance struct {
	Date   string           `json:"date"`
	Status AttendanceStatus `json:"status"`
}

// EmbeddedMark is one subject's entry in the projected marks view.
type EmbeddedMark struct {
	Subject Subject `json:"subject"`
	Score   float64 `json:"score"`
	Total   float64 `json:"total"`
}

// DefaultClass is assigned when registration omits the class field.
const DefaultClass = "FYMCA"

// CreateStudentRequest is the payload for registering a student.
type CreateStudentRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Roll  string `json:"roll" binding:"required,min=1,max=30"`
	Class string `json:"class" binding:"omitempty,max=50"`
	Email string `json:"email" binding:"required,email"`
}

// MarkStudentAttendanceRequest is the payload for the legacy
// PUT /api/students/attendance route. It upserts the day's record in the
// normalized attendance collection.
type MarkStudentAttendanceRequest struct {
	StudentID string           `json:"studentId" binding:"required,uuid"`
	Date      string           `json:"date" binding:"required,datetime=2006-01-02"`
	Status    AttendanceStatus `json:"status" binding:"required,oneof=Present Absent"`
}

// UpsertStudentMarkRequest is the payload for the legacy
// PUT /api/students/marks route. The record is keyed on
// (student, subject, Internal).
type UpsertStudentMarkRequest struct {
	StudentID string   `json:"studentId" binding:"required,uuid"`
	Subject   Subject  `json:"subject" binding:"required,oneof=English Maths OS MIS SEPM"`
	Score     *float64 `json:"score" binding:"required,gte=0"`
	Total     *float64 `json:"total" binding:"required,gte=1"`
}
