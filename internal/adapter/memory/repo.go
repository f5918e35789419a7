// Package memory provides a process-local TinyWin store for demo runs and
// handler tests. Contents are lost on restart.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/heartmarshall/tinywin-backend/internal/domain"
)

// Repo is a thread-safe in-memory TinyWin repository.
type Repo struct {
	mu     sync.RWMutex
	rows   map[int64]domain.TinyWin
	nextID int64
	now    func() time.Time
}

// New creates an empty repository.
func New() *Repo {
	return &Repo{
		rows: make(map[int64]domain.TinyWin),
		now:  time.Now,
	}
}

// WithClock replaces the clock used for created_at. Used by tests.
func (r *Repo) WithClock(now func() time.Time) *Repo {
	r.now = now
	return r
}

// List returns every row, most recently completed first, then most recently created.
func (r *Repo) List(_ context.Context) ([]domain.TinyWin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wins := make([]domain.TinyWin, 0, len(r.rows))
	for _, w := range r.rows {
		wins = append(wins, clone(w))
	}

	slices.SortFunc(wins, func(a, b domain.TinyWin) int {
		if c := compareTime(b.CompletedAt, a.CompletedAt); c != 0 {
			return c
		}
		if c := compareTime(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return wins, nil
}

// GetByID returns row id or domain.ErrNotFound.
func (r *Repo) GetByID(_ context.Context, id int64) (*domain.TinyWin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.rows[id]
	if !ok {
		return nil, notFound(id)
	}

	out := clone(w)
	return &out, nil
}

// Create stores a new row with the next id and the current instant as created_at.
func (r *Repo) Create(_ context.Context, fields domain.TinyWinFields) (*domain.TinyWin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	created := r.now().UTC()
	w := apply(domain.TinyWin{ID: r.nextID, CreatedAt: &created}, fields)
	r.rows[w.ID] = w

	out := clone(w)
	return &out, nil
}

// Update replaces every mutable field of row id.
func (r *Repo) Update(_ context.Context, id int64, fields domain.TinyWinFields) (*domain.TinyWin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.rows[id]
	if !ok {
		return nil, notFound(id)
	}

	w = apply(w, fields)
	r.rows[id] = w

	out := clone(w)
	return &out, nil
}

// Delete removes row id and returns it. Ids are never handed out again.
func (r *Repo) Delete(_ context.Context, id int64) (*domain.TinyWin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.rows[id]
	if !ok {
		return nil, notFound(id)
	}
	delete(r.rows, id)

	return &w, nil
}

// Ping always succeeds.
func (r *Repo) Ping(context.Context) error { return nil }

func apply(w domain.TinyWin, f domain.TinyWinFields) domain.TinyWin {
	completed := f.CompletedAt.UTC()
	w.Title = f.Title
	w.Description = copyPtr(f.Description)
	w.Category = copyPtr(f.Category)
	w.CompletedAt = &completed
	return w
}

func clone(w domain.TinyWin) domain.TinyWin {
	w.CreatedAt = copyPtr(w.CreatedAt)
	w.CompletedAt = copyPtr(w.CompletedAt)
	w.Description = copyPtr(w.Description)
	w.Category = copyPtr(w.Category)
	return w
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// compareTime orders nil before any instant.
func compareTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}

func notFound(id int64) error {
	return fmt.Errorf("tiny_win %d: %w", id, domain.ErrNotFound)
}
