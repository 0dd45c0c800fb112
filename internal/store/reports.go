package store

import (
	"context"
	"fmt"

	"github.com/bwise1/reportes_api/internal/filter"
	"github.com/bwise1/reportes_api/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// Querier is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StorageError wraps any failure coming from the database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("report store: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Code returns the SQLSTATE of the underlying error, if any.
func (e *StorageError) Code() string {
	var pgErr *pgconn.PgError
	if errors.As(e.Err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

type ReportStore struct {
	DB Querier
}

func NewReportStore(db Querier) *ReportStore {
	return &ReportStore{DB: db}
}

const reportColumns = `
            id, category, description,
            ST_X(location) AS longitude,
            ST_Y(location) AS latitude,
            image_url, reporter_hash, created_at`

// Insert persists one report and returns it with its generated id and timestamp.
func (s *ReportStore) Insert(ctx context.Context, r model.NewReport) (model.Report, error) {
	query := `
        INSERT INTO reports (
            category, description, location, image_url, reporter_hash, created_at
        ) VALUES (
            $1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326), $5, $6, NOW()
        ) RETURNING` + reportColumns

	var report model.Report
	err := s.DB.QueryRow(ctx, query,
		r.Category, r.Description, r.Longitude, r.Latitude, r.ImageURL, r.ReporterHash,
	).Scan(
		&report.ID, &report.Category, &report.Description,
		&report.Longitude, &report.Latitude,
		&report.ImageURL, &report.ReporterHash, &report.CreatedAt,
	)
	if err != nil {
		return model.Report{}, &StorageError{Op: "insert", Err: err}
	}
	return report, nil
}

// Query returns every report matching p, newest first.
func (s *ReportStore) Query(ctx context.Context, p filter.Predicate) ([]model.Report, error) {
	where, args := p.Where(0)
	query := `
        SELECT` + reportColumns + `
        FROM reports
        ` + where + `
        ORDER BY created_at DESC`

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}
	defer rows.Close()

	reports := []model.Report{}
	for rows.Next() {
		var report model.Report
		err := rows.Scan(
			&report.ID, &report.Category, &report.Description,
			&report.Longitude, &report.Latitude,
			&report.ImageURL, &report.ReporterHash, &report.CreatedAt,
		)
		if err != nil {
			return nil, &StorageError{Op: "scan", Err: err}
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}
	return reports, nil
}
