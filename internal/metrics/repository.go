package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/heartmarshall/tinywin-backend/internal/domain"
)

// Repository is the TinyWin storage contract being measured.
type Repository interface {
	List(ctx context.Context) ([]domain.TinyWin, error)
	GetByID(ctx context.Context, id int64) (*domain.TinyWin, error)
	Create(ctx context.Context, fields domain.TinyWinFields) (*domain.TinyWin, error)
	Update(ctx context.Context, id int64, fields domain.TinyWinFields) (*domain.TinyWin, error)
	Delete(ctx context.Context, id int64) (*domain.TinyWin, error)
}

// InstrumentedRepo records StorageOps and StorageDuration around every call.
type InstrumentedRepo struct {
	next    Repository
	backend string
}

// Instrument wraps next, labelling its samples with backend.
func Instrument(backend string, next Repository) *InstrumentedRepo {
	return &InstrumentedRepo{next: next, backend: backend}
}

func (r *InstrumentedRepo) observe(op string, start time.Time, err error) {
	StorageDuration.WithLabelValues(r.backend, op).Observe(time.Since(start).Seconds())
	StorageOps.WithLabelValues(r.backend, op, outcome(err)).Inc()
}

func (r *InstrumentedRepo) List(ctx context.Context) ([]domain.TinyWin, error) {
	start := time.Now()
	wins, err := r.next.List(ctx)
	r.observe("list", start, err)
	return wins, err
}

func (r *InstrumentedRepo) GetByID(ctx context.Context, id int64) (*domain.TinyWin, error) {
	start := time.Now()
	w, err := r.next.GetByID(ctx, id)
	r.observe("get", start, err)
	return w, err
}

func (r *InstrumentedRepo) Create(ctx context.Context, fields domain.TinyWinFields) (*domain.TinyWin, error) {
	start := time.Now()
	w, err := r.next.Create(ctx, fields)
	r.observe("create", start, err)
	return w, err
}

func (r *InstrumentedRepo) Update(ctx context.Context, id int64, fields domain.TinyWinFields) (*domain.TinyWin, error) {
	start := time.Now()
	w, err := r.next.Update(ctx, id, fields)
	r.observe("update", start, err)
	return w, err
}

func (r *InstrumentedRepo) Delete(ctx context.Context, id int64) (*domain.TinyWin, error) {
	start := time.Now()
	w, err := r.next.Delete(ctx, id)
	r.observe("delete", start, err)
	return w, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
