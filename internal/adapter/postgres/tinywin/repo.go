// Package tinywin implements the TinyWin repository using PostgreSQL.
package tinywin

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/tinywin-backend/internal/adapter/postgres"
	"github.com/heartmarshall/tinywin-backend/internal/domain"
)

const (
	table  = `"tiny-win"`
	entity = "tiny_win"
)

var (
	columns   = []string{"id", "created_at", "title", "description", "category", "completed_at"}
	returning = "RETURNING " + strings.Join(columns, ", ")
	psql      = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
)

// Repo provides TinyWin persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new TinyWin repository. q is usually a *pgxpool.Pool.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns every row, most recently completed first.
// Returns an empty slice when the table is empty.
func (r *Repo) List(ctx context.Context) ([]domain.TinyWin, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		OrderBy("completed_at DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, 0)
	}
	defer rows.Close()

	wins := make([]domain.TinyWin, 0)
	for rows.Next() {
		w, err := scanTinyWin(rows)
		if err != nil {
			return nil, postgres.MapError(err, entity, 0)
		}
		wins = append(wins, w)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, entity, 0)
	}

	return wins, nil
}

// GetByID returns a row by primary key.
// Returns domain.ErrNotFound if the row does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.TinyWin, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	return r.queryOne(ctx, id, query, args)
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a row; id and created_at are assigned by the database.
func (r *Repo) Create(ctx context.Context, fields domain.TinyWinFields) (*domain.TinyWin, error) {
	query, args, err := psql.Insert(table).
		Columns("title", "description", "category", "completed_at").
		Values(fields.Title, fields.Description, fields.Category, fields.CompletedAt).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	return r.queryOne(ctx, 0, query, args)
}

// Update replaces every mutable column of row id.
// Returns domain.ErrNotFound if the row does not exist.
func (r *Repo) Update(ctx context.Context, id int64, fields domain.TinyWinFields) (*domain.TinyWin, error) {
	query, args, err := psql.Update(table).
		Set("title", fields.Title).
		Set("description", fields.Description).
		Set("category", fields.Category).
		Set("completed_at", fields.CompletedAt).
		Where(sq.Eq{"id": id}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	return r.queryOne(ctx, id, query, args)
}

// Delete removes row id and returns it as it was.
// Returns domain.ErrNotFound if the row does not exist.
func (r *Repo) Delete(ctx context.Context, id int64) (*domain.TinyWin, error) {
	query, args, err := psql.Delete(table).
		Where(sq.Eq{"id": id}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete query: %w", err)
	}

	return r.queryOne(ctx, id, query, args)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) queryOne(ctx context.Context, id int64, query string, args []any) (*domain.TinyWin, error) {
	w, err := scanTinyWin(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return &w, nil
}

// scanTinyWin reads one row in column order. Nullable columns land in pointers.
func scanTinyWin(row pgx.Row) (domain.TinyWin, error) {
	var w domain.TinyWin
	err := row.Scan(
		&w.ID,
		&w.CreatedAt,
		&w.Title,
		&w.Description,
		&w.Category,
		&w.CompletedAt,
	)
	return w, err
}
