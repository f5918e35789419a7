package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/tinywin-backend/internal/domain"
)

// UniqueTitle returns a title that will not collide with rows from parallel tests.
func UniqueTitle(prefix string) string {
	return prefix + " " + uuid.New().String()[:8]
}

// SeedTinyWin inserts a row directly and returns it as stored.
func SeedTinyWin(t *testing.T, pool *pgxpool.Pool, title string, completedAt time.Time) domain.TinyWin {
	t.Helper()
	ctx := context.Background()

	var (
		w         domain.TinyWin
		createdAt time.Time
		doneAt    time.Time
	)
	err := pool.QueryRow(ctx,
		`INSERT INTO "tiny-win" (title, completed_at) VALUES ($1, $2)
		 RETURNING id, created_at, title, completed_at`,
		title, completedAt,
	).Scan(&w.ID, &createdAt, &w.Title, &doneAt)
	if err != nil {
		t.Fatalf("testhelper: SeedTinyWin insert: %v", err)
	}

	w.CreatedAt = &createdAt
	w.CompletedAt = &doneAt
	return w
}
