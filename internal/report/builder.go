// Package report builds the denormalized datasets behind the CSV export
// endpoints. Builders are pure: they take already-fetched records and
// produce a Dataset, leaving storage and audit concerns to the caller.
package report

import (
	"fmt"
	"strconv"

	"github.com/studrec/studentrecords-backend/internal/model"
)

// Column sets are fixed per report type.
var (
	AttendanceColumns = []string{"Date", "Student Name", "Roll Number", "Class", "Status", "Remarks"}
	MarksColumns      = []string{"Student Name", "Roll Number", "Class", "Subject", "Exam Type", "Score", "Total", "Percentage", "Exam Date", "Remarks"}
	PerformanceColumns = []string{"Field", "Value"}
)

// FilterAttendanceByClass keeps records whose joined student is in class.
// Class lives on the student, not the attendance row, so this filter runs
// in memory after the join rather than in the store query.
func FilterAttendanceByClass(records []model.Attendance, class string) []model.Attendance {
	if class == "" {
		return records
	}
	filtered := make([]model.Attendance, 0, len(records))
	for _, a := range records {
		if a.Student != nil && a.Student.Class == class {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// FilterMarksByClass keeps records whose joined student is in class.
func FilterMarksByClass(records []model.Mark, class string) []model.Mark {
	if class == "" {
		return records
	}
	filtered := make([]model.Mark, 0, len(records))
	for _, m := range records {
		if m.Student != nil && m.Student.Class == class {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// AttendanceDataset projects attendance records to the attendance report.
func AttendanceDataset(records []model.Attendance) *Dataset {
	rows := make([][]string, 0, len(records))
	for _, a := range records {
		name, roll, class := studentFields(a.Student)
		rows = append(rows, []string{a.Date, name, roll, class, string(a.Status), a.Remarks})
	}
	return &Dataset{Columns: AttendanceColumns, Rows: rows}
}

// MarksDataset projects marks records to the marks report. Percentages
// render with two decimals; the stored value stays full precision.
func MarksDataset(records []model.Mark) *Dataset {
	rows := make([][]string, 0, len(records))
	for _, m := range records {
		name, roll, class := studentFields(m.Student)
		examDate := m.ExamDate
		if examDate == "" {
			examDate = "N/A"
		}
		rows = append(rows, []string{
			name, roll, class,
			string(m.Subject), string(m.ExamType),
			formatNumber(m.Score), formatNumber(m.Total), formatPercent(m.Percentage),
			examDate, m.Remarks,
		})
	}
	return &Dataset{Columns: MarksColumns, Rows: rows}
}

// AttendancePercentage computes present/total*100 over the records.
// Zero records yields 0, never a non-finite value.
func AttendancePercentage(records []model.Attendance) (present, total int, pct float64) {
	total = len(records)
	for _, a := range records {
		if a.Status == model.StatusPresent {
			present++
		}
	}
	if total > 0 {
		pct = float64(present) / float64(total) * 100
	}
	return present, total, pct
}

// AverageMarksPercentage computes the mean stored percentage, 0 if empty.
func AverageMarksPercentage(marks []model.Mark) float64 {
	if len(marks) == 0 {
		return 0
	}
	var sum float64
	for _, m := range marks {
		sum += m.Percentage
	}
	return sum / float64(len(marks))
}

// PerformanceDataset builds the single-student key/value performance
// sheet: profile block, attendance summary, marks summary, then one row
// per subject/exam-type pair.
func PerformanceDataset(student *model.Student, attendance []model.Attendance, marks []model.Mark) *Dataset {
	present, total, attendancePct := AttendancePercentage(attendance)
	avgPct := AverageMarksPercentage(marks)

	rows := [][]string{
		{"Student Name", student.Name},
		{"Roll Number", student.Roll},
		{"Class", student.Class},
		{"Email", student.Email},
		{"", ""},
		{"ATTENDANCE SUMMARY", ""},
		{"Total Days", strconv.Itoa(total)},
		{"Present Days", strconv.Itoa(present)},
		{"Absent Days", strconv.Itoa(total - present)},
		{"Attendance %", formatPercent(attendancePct)},
		{"", ""},
		{"MARKS SUMMARY", ""},
		{"Total Subjects", strconv.Itoa(len(marks))},
		{"Average Percentage", formatPercent(avgPct)},
		{"", ""},
		{"SUBJECT-WISE MARKS", ""},
	}
	for _, m := range marks {
		rows = append(rows, []string{
			fmt.Sprintf("%s (%s)", m.Subject, m.ExamType),
			fmt.Sprintf("%s/%s (%s%%)", formatNumber(m.Score), formatNumber(m.Total), formatPercent(m.Percentage)),
		})
	}
	return &Dataset{Columns: PerformanceColumns, Rows: rows}
}

func studentFields(s *model.StudentRef) (name, roll, class string) {
	if s == nil {
		return "N/A", "N/A", "N/A"
	}
	return s.Name, s.Roll, s.Class
}

// formatPercent renders a percentage with two decimals. Rounding happens
// only here, at presentation time.
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatNumber renders a score or total without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
