// Package pgstore provides a PostgreSQL implementation of triage.Store.
package pgstore

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linnemanlabs/quicktriage/internal/triage"
)

var tracer = otel.Tracer("github.com/linnemanlabs/quicktriage/internal/triage/pgstore")

//go:embed schema.sql
var schema string

// Store persists triage reports in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New applies the schema on the given pool and returns a ready Store.
// The pool's lifecycle belongs to the caller.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

const reportColumns = `id, symptoms, age, results, is_urgent, fallback,
	token_count, match_count, created_at, duration_s`

// Get retrieves a report by ID.
func (s *Store) Get(ctx context.Context, id string) (*triage.Report, bool, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Get", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	query := `SELECT ` + reportColumns + ` FROM triage_reports WHERE id = $1`
	r, err := scanReportRow(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, err
	}
	if r == nil {
		return nil, false, nil
	}
	return r, true, nil
}

// Put inserts or updates a report (upsert on id).
func (s *Store) Put(ctx context.Context, r *triage.Report) error {
	ctx, span := tracer.Start(ctx, "pgstore.Put", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "UPSERT"),
	))
	defer span.End()

	resultsJSON, err := json.Marshal(r.Results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	query := `INSERT INTO triage_reports (
		id, symptoms, age, results, is_urgent, fallback,
		token_count, match_count, created_at, duration_s
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	ON CONFLICT (id) DO UPDATE SET
		symptoms    = EXCLUDED.symptoms,
		age         = EXCLUDED.age,
		results     = EXCLUDED.results,
		is_urgent   = EXCLUDED.is_urgent,
		fallback    = EXCLUDED.fallback,
		token_count = EXCLUDED.token_count,
		match_count = EXCLUDED.match_count,
		duration_s  = EXCLUDED.duration_s`

	_, err = s.pool.Exec(ctx, query,
		r.ID, r.Symptoms, r.Age, resultsJSON, r.IsUrgent, r.Fallback,
		r.TokenCount, r.MatchCount, r.CreatedAt, r.Duration,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("upsert report: %w", err)
	}
	return nil
}

// Recent returns up to limit reports, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*triage.Report, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Recent", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	if limit <= 0 {
		return nil, nil
	}

	query := `SELECT ` + reportColumns + ` FROM triage_reports ORDER BY created_at DESC, id DESC LIMIT $1`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var out []*triage.Report
	for rows.Next() {
		r, err := scanReportRow(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}

// scanReportRow scans a single row into a triage.Report.
// Returns (nil, nil) when no row is found.
func scanReportRow(row pgx.Row) (*triage.Report, error) {
	var (
		r           triage.Report
		resultsJSON []byte
	)

	err := row.Scan(
		&r.ID, &r.Symptoms, &r.Age, &resultsJSON, &r.IsUrgent, &r.Fallback,
		&r.TokenCount, &r.MatchCount, &r.CreatedAt, &r.Duration,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}

	if err := json.Unmarshal(resultsJSON, &r.Results); err != nil {
		return nil, fmt.Errorf("unmarshal results: %w", err)
	}

	return &r, nil
}
