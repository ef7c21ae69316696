package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studrec/studentrecords-backend/internal/model"
)

// attendanceColumns is the joined select list shared by attendance reads.
// The calendar day is rendered as YYYY-MM-DD text at the store boundary.
const attendanceColumns = `
	a.id, a.student_id, to_char(a.date, 'YYYY-MM-DD'), a.status, a.remarks,
	a.created_at, a.updated_at,
	s.id, s.name, s.roll, s.class, s.email`

// AttendanceRepository handles attendance data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Upsert creates the day's record or overwrites status/remarks if one
// already exists for (student, date). The unique constraint resolves
// concurrent writers; last writer wins.
func (r *AttendanceRepository) Upsert(ctx context.Context, a *model.Attendance) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO attendance (student_id, date, status, remarks)
		 VALUES ($1, $2::date, $3, $4)
		 ON CONFLICT (student_id, date) DO UPDATE
		   SET status = EXCLUDED.status, remarks = EXCLUDED.remarks, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		a.StudentID, a.Date, a.Status, a.Remarks,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// List retrieves attendance records matching the filter, with joined
// student fields, ordered by date then creation time, newest first.
func (r *AttendanceRepository) List(ctx context.Context, f model.AttendanceFilter) ([]model.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance a JOIN students s ON s.id = a.student_id`
	var args []interface{}
	var clauses []string

	if f.StudentID != nil {
		args = append(args, *f.StudentID)
		clauses = append(clauses, "a.student_id = $"+strconv.Itoa(len(args)))
	}
	if f.Date != "" {
		args = append(args, f.Date)
		clauses = append(clauses, "a.date = $"+strconv.Itoa(len(args))+"::date")
	}
	if f.StartDate != "" {
		args = append(args, f.StartDate)
		clauses = append(clauses, "a.date >= $"+strconv.Itoa(len(args))+"::date")
	}
	if f.EndDate != "" {
		args = append(args, f.EndDate)
		clauses = append(clauses, "a.date <= $"+strconv.Itoa(len(args))+"::date")
	}
	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, "a.status = $"+strconv.Itoa(len(args)))
	}

	for i, c := range clauses {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY a.date DESC, a.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *a)
	}
	return records, rows.Err()
}

// Update applies a partial status/remarks change to a record by ID.
func (r *AttendanceRepository) Update(ctx context.Context, id uuid.UUID, req model.UpdateAttendanceRequest) (*model.Attendance, error) {
	query := `UPDATE attendance SET updated_at = NOW()`
	args := []interface{}{}

	if req.Status != "" {
		args = append(args, req.Status)
		query += ", status = $" + strconv.Itoa(len(args))
	}
	if req.Remarks != nil {
		args = append(args, *req.Remarks)
		query += ", remarks = $" + strconv.Itoa(len(args))
	}
	args = append(args, id)
	query += " WHERE id = $" + strconv.Itoa(len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// GetByID retrieves one attendance record with joined student fields.
func (r *AttendanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Attendance, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+attendanceColumns+` FROM attendance a JOIN students s ON s.id = a.student_id WHERE a.id = $1`, id)
	a, err := scanAttendance(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Delete removes an attendance record by ID.
func (r *AttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEmbedded returns every student's attendance days grouped by student,
// oldest day first, for the projected roster view.
func (r *AttendanceRepository) ListEmbedded(ctx context.Context) (map[uuid.UUID][]model.EmbeddedAttendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id, to_char(date, 'YYYY-MM-DD'), status
		 FROM attendance ORDER BY date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grouped := make(map[uuid.UUID][]model.EmbeddedAttendance)
	for rows.Next() {
		var studentID uuid.UUID
		var e model.EmbeddedAttendance
		if err := rows.Scan(&studentID, &e.Date, &e.Status); err != nil {
			return nil, err
		}
		grouped[studentID] = append(grouped[studentID], e)
	}
	return grouped, rows.Err()
}

// scanAttendance scans the joined attendance column list from a row.
func scanAttendance(row pgx.Row) (*model.Attendance, error) {
	a := &model.Attendance{Student: &model.StudentRef{}}
	err := row.Scan(
		&a.ID, &a.StudentID, &a.Date, &a.Status, &a.Remarks,
		&a.CreatedAt, &a.UpdatedAt,
		&a.Student.ID, &a.Student.Name, &a.Student.Roll, &a.Student.Class, &a.Student.Email,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}
