package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus is the closed set of attendance states.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
)

// ValidAttendanceStatus reports whether s is a recognized status.
func ValidAttendanceStatus(s string) bool {
	return s == string(StatusPresent) || s == string(StatusAbsent)
}

// Attendance is one student's record for one calendar day.
// At most one row exists per (student, date); re-marking the same day
// overwrites status and remarks.
type Attendance struct {
	ID        uuid.UUID        `json:"id"`
	StudentID uuid.UUID        `json:"studentId"`
	Date      string           `json:"date"` // YYYY-MM-DD
	Status    AttendanceStatus `json:"status"`
	Remarks   string           `json:"remarks"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`

	// Student carries the joined profile fields on list endpoints.
	Student *StudentRef `json:"student,omitempty"`
}

// CreateAttendanceRequest marks (or re-marks) a student's day.
type CreateAttendanceRequest struct {
	StudentID string           `json:"studentId" binding:"required,uuid"`
	Date      string           `json:"date" binding:"required,datetime=2006-01-02"`
	Status    AttendanceStatus `json:"status" binding:"required,oneof=Present Absent"`
	Remarks   string           `json:"remarks" binding:"omitempty,max=500"`
}

// UpdateAttendanceRequest partially updates an attendance record.
type UpdateAttendanceRequest struct {
	Status  AttendanceStatus `json:"status" binding:"omitempty,oneof=Present Absent"`
	Remarks *string          `json:"remarks" binding:"omitempty,max=500"`
}

// AttendanceFilter narrows attendance list queries. Zero values mean
// "no constraint". Date bounds are inclusive on both ends.
type AttendanceFilter struct {
	StudentID *uuid.UUID
	Date      string
	StartDate string
	EndDate   string
	Status    string
}
