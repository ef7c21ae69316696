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

// MarkSort selects the ordering of marks list queries. Each list endpoint
// has an explicit, fixed sort order.
type MarkSort int

const (
	// MarkSortRecent orders by exam date then creation time, newest first.
	MarkSortRecent MarkSort = iota
	// MarkSortStudent orders one student's marks by exam date desc, subject asc.
	MarkSortStudent
	// MarkSortLeaderboard orders by percentage, highest first.
	MarkSortLeaderboard
	// MarkSortSubjectExam orders by subject then exam type, both ascending.
	MarkSortSubjectExam
)

func (s MarkSort) clause() string {
	switch s {
	case MarkSortStudent:
		return " ORDER BY m.exam_date DESC NULLS LAST, m.subject ASC"
	case MarkSortLeaderboard:
		return " ORDER BY m.percentage DESC"
	case MarkSortSubjectExam:
		return " ORDER BY m.subject ASC, m.exam_type ASC"
	default:
		return " ORDER BY m.exam_date DESC NULLS LAST, m.created_at DESC"
	}
}

// markColumns is the joined select list shared by marks reads. A NULL
// exam date is rendered as the empty string.
const markColumns = `
	m.id, m.student_id, m.subject, m.score, m.total, m.percentage,
	m.exam_type, COALESCE(to_char(m.exam_date, 'YYYY-MM-DD'), ''), m.remarks,
	m.created_at, m.updated_at,
	s.id, s.name, s.roll, s.class, s.email`

// MarksRepository handles marks data access.
type MarksRepository struct {
	pool *pgxpool.Pool
}

// NewMarksRepository creates a new MarksRepository.
func NewMarksRepository(pool *pgxpool.Pool) *MarksRepository {
	return &MarksRepository{pool: pool}
}

// Upsert creates the exam result or overwrites it if one already exists
// for (student, subject, examType). The stored percentage is regenerated
// from score/total by the database on every write.
func (r *MarksRepository) Upsert(ctx context.Context, m *model.Mark) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO marks (student_id, subject, score, total, exam_type, exam_date, remarks)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::date, $7)
		 ON CONFLICT (student_id, subject, exam_type) DO UPDATE
		   SET score = EXCLUDED.score, total = EXCLUDED.total,
		       exam_date = EXCLUDED.exam_date, remarks = EXCLUDED.remarks,
		       updated_at = NOW()
		 RETURNING id, percentage, created_at, updated_at`,
		m.StudentID, m.Subject, m.Score, m.Total, m.ExamType, m.ExamDate, m.Remarks,
	).Scan(&m.ID, &m.Percentage, &m.CreatedAt, &m.UpdatedAt)
}

// List retrieves marks matching the filter with joined student fields.
func (r *MarksRepository) List(ctx context.Context, f model.MarkFilter, sort MarkSort) ([]model.Mark, error) {
	query := `SELECT ` + markColumns + ` FROM marks m JOIN students s ON s.id = m.student_id`
	var args []interface{}
	var clauses []string

	if f.StudentID != nil {
		args = append(args, *f.StudentID)
		clauses = append(clauses, "m.student_id = $"+strconv.Itoa(len(args)))
	}
	if f.Subject != "" {
		args = append(args, f.Subject)
		clauses = append(clauses, "m.subject = $"+strconv.Itoa(len(args)))
	}
	if f.ExamType != "" {
		args = append(args, f.ExamType)
		clauses = append(clauses, "m.exam_type = $"+strconv.Itoa(len(args)))
	}
	if f.MinPercentage != nil {
		args = append(args, *f.MinPercentage)
		clauses = append(clauses, "m.percentage >= $"+strconv.Itoa(len(args)))
	}
	if f.MaxPercentage != nil {
		args = append(args, *f.MaxPercentage)
		clauses = append(clauses, "m.percentage <= $"+strconv.Itoa(len(args)))
	}

	for i, c := range clauses {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += sort.clause()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []model.Mark
	for rows.Next() {
		m, err := scanMark(rows)
		if err != nil {
			return nil, err
		}
		marks = append(marks, *m)
	}
	return marks, rows.Err()
}

// Update applies a partial change to a marks record by ID.
func (r *MarksRepository) Update(ctx context.Context, id uuid.UUID, req model.UpdateMarkRequest) (*model.Mark, error) {
	query := `UPDATE marks SET updated_at = NOW()`
	args := []interface{}{}

	if req.Score != nil {
		args = append(args, *req.Score)
		query += ", score = $" + strconv.Itoa(len(args))
	}
	if req.Total != nil {
		args = append(args, *req.Total)
		query += ", total = $" + strconv.Itoa(len(args))
	}
	if req.ExamDate != nil {
		args = append(args, *req.ExamDate)
		query += ", exam_date = NULLIF($" + strconv.Itoa(len(args)) + ", '')::date"
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

// GetByID retrieves one marks record with joined student fields.
func (r *MarksRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Mark, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+markColumns+` FROM marks m JOIN students s ON s.id = m.student_id WHERE m.id = $1`, id)
	m, err := scanMark(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// Delete removes a marks record by ID.
func (r *MarksRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM marks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEmbedded returns every student's Internal exam results grouped by
// student, in subject order, for the projected roster view. The legacy
// student routes only ever write Internal marks, so that slice is the
// projection source.
func (r *MarksRepository) ListEmbedded(ctx context.Context) (map[uuid.UUID][]model.EmbeddedMark, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id, subject, score, total
		 FROM marks WHERE exam_type = 'Internal' ORDER BY subject ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grouped := make(map[uuid.UUID][]model.EmbeddedMark)
	for rows.Next() {
		var studentID uuid.UUID
		var e model.EmbeddedMark
		if err := rows.Scan(&studentID, &e.Subject, &e.Score, &e.Total); err != nil {
			return nil, err
		}
		grouped[studentID] = append(grouped[studentID], e)
	}
	return grouped, rows.Err()
}

// scanMark scans the joined marks column list from a row.
func scanMark(row pgx.Row) (*model.Mark, error) {
	m := &model.Mark{Student: &model.StudentRef{}}
	err := row.Scan(
		&m.ID, &m.StudentID, &m.Subject, &m.Score, &m.Total, &m.Percentage,
		&m.ExamType, &m.ExamDate, &m.Remarks,
		&m.CreatedAt, &m.UpdatedAt,
		&m.Student.ID, &m.Student.Name, &m.Student.Roll, &m.Student.Class, &m.Student.Email,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}
