package model

import (
	"time"

	"github.com/google/uuid"
)

// ExportType identifies which report an export attempt produced.
type ExportType string

const (
	ExportAttendance  ExportType = "attendance"
	ExportMarks       ExportType = "marks"
	ExportPerformance ExportType = "performance"
	ExportStudentList ExportType = "student_list"
)

// ExportFormat is the requested output format. Only CSV is produced today;
// the others are accepted and recorded for forward compatibility.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "CSV"
	FormatPDF  ExportFormat = "PDF"
	FormatJSON ExportFormat = "JSON"
)

// ExportStatus is the audit lifecycle of one report-generation attempt.
type ExportStatus string

const (
	ExportPending    ExportStatus = "pending"
	ExportProcessing ExportStatus = "processing"
	ExportCompleted  ExportStatus = "completed"
	ExportFailed     ExportStatus = "failed"
)

// ExportFilters is the filter snapshot recorded with each export attempt.
type ExportFilters struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	StudentID string `json:"studentId,omitempty"`
	Class     string `json:"class,omitempty"`
	Subject   string `json:"subject,omitempty"`
	ExamType  string `json:"examType,omitempty"`
}

// Export is the audit record for one report-generation attempt.
// Created in processing state before data is fetched, finalized exactly
// once at request end, never deleted.
type Export struct {
	ID           uuid.UUID     `json:"id"`
	ExportType   ExportType    `json:"exportType"`
	Format       ExportFormat  `json:"format"`
	Filters      ExportFilters `json:"filters"`
	Status       ExportStatus  `json:"status"`
	FileSize     int64         `json:"fileSize"`
	RecordCount  int           `json:"recordCount"`
	ErrorMessage string        `json:"errorMessage,omitempty"`
	RequestedBy  string        `json:"requestedBy"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// ExportAttendanceRequest configures an attendance report.
type ExportAttendanceRequest struct {
	StartDate string       `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string       `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	StudentID string       `json:"studentId" binding:"omitempty,uuid"`
	Class     string       `json:"class" binding:"omitempty,max=50"`
	Format    ExportFormat `json:"format" binding:"omitempty,oneof=CSV PDF JSON"`
}

// ExportMarksRequest configures a marks report.
type ExportMarksRequest struct {
	StudentID string       `json:"studentId" binding:"omitempty,uuid"`
	Subject   string       `json:"subject" binding:"omitempty,oneof=English Maths OS MIS SEPM"`
	ExamType  string       `json:"examType" binding:"omitempty,oneof=Internal External Assignment Project Final"`
	Class     string       `json:"class" binding:"omitempty,max=50"`
	Format    ExportFormat `json:"format" binding:"omitempty,oneof=CSV PDF JSON"`
}

// ExportPerformanceRequest configures a single-student performance report.
type ExportPerformanceRequest struct {
	StartDate string       `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string       `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Format    ExportFormat `json:"format" binding:"omitempty,oneof=CSV PDF JSON"`
}

// ExportHistoryFilter narrows the export audit listing.
type ExportHistoryFilter struct {
	ExportType string
	Status     string
	Limit      int
}
