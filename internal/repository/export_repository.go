package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studrec/studentrecords-backend/internal/model"
)

// ExportRepository handles export audit data access. Audit rows are
// append-then-finalize: created once, mutated once, never deleted.
type ExportRepository struct {
	pool *pgxpool.Pool
}

// NewExportRepository creates a new ExportRepository.
func NewExportRepository(pool *pgxpool.Pool) *ExportRepository {
	return &ExportRepository{pool: pool}
}

// Create inserts a new export audit record with its filter snapshot.
func (r *ExportRepository) Create(ctx context.Context, e *model.Export) error {
	filters, err := json.Marshal(e.Filters)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO exports (export_type, format, filters, status, requested_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		e.ExportType, e.Format, filters, e.Status, e.RequestedBy,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// MarkCompleted finalizes a successful export attempt.
func (r *ExportRepository) MarkCompleted(ctx context.Context, id uuid.UUID, recordCount int, fileSize int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exports
		 SET status = $1, record_count = $2, file_size = $3, updated_at = NOW()
		 WHERE id = $4`,
		model.ExportCompleted, recordCount, fileSize, id,
	)
	return err
}

// MarkFailed finalizes a failed export attempt with the error message.
func (r *ExportRepository) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exports
		 SET status = $1, error_message = $2, updated_at = NOW()
		 WHERE id = $3`,
		model.ExportFailed, message, id,
	)
	return err
}

// List retrieves export history, newest first.
func (r *ExportRepository) List(ctx context.Context, f model.ExportHistoryFilter) ([]model.Export, error) {
	query := `SELECT id, export_type, format, filters, status, file_size,
	                 record_count, error_message, requested_by, created_at, updated_at
	          FROM exports`
	var args []interface{}
	var clauses []string

	if f.ExportType != "" {
		args = append(args, f.ExportType)
		clauses = append(clauses, "export_type = $"+strconv.Itoa(len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, "status = $"+strconv.Itoa(len(args)))
	}
	for i, c := range clauses {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []model.Export
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		exports = append(exports, *e)
	}
	return exports, rows.Err()
}

// GetByID retrieves one export audit record.
func (r *ExportRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Export, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, export_type, format, filters, status, file_size,
		        record_count, error_message, requested_by, created_at, updated_at
		 FROM exports WHERE id = $1`, id)
	e, err := scanExport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func scanExport(row pgx.Row) (*model.Export, error) {
	e := &model.Export{}
	var filters []byte
	err := row.Scan(
		&e.ID, &e.ExportType, &e.Format, &filters, &e.Status, &e.FileSize,
		&e.RecordCount, &e.ErrorMessage, &e.RequestedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(filters, &e.Filters); err != nil {
		return nil, err
	}
	return e, nil
}
