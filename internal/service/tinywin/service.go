// Package tinywin implements the tiny win use cases: input normalization,
// the storage round trip and the read-path mapping to wire records.
package tinywin

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/tinywin-backend/internal/domain"
)

type tinyWinRepo interface {
	List(ctx context.Context) ([]domain.TinyWin, error)
	GetByID(ctx context.Context, id int64) (*domain.TinyWin, error)
	Create(ctx context.Context, fields domain.TinyWinFields) (*domain.TinyWin, error)
	Update(ctx context.Context, id int64, fields domain.TinyWinFields) (*domain.TinyWin, error)
	Delete(ctx context.Context, id int64) (*domain.TinyWin, error)
}

// Service provides tiny win operations.
type Service struct {
	repo tinyWinRepo
	log  *slog.Logger
	now  func() time.Time
}

// NewService creates a new TinyWin service.
func NewService(
	log *slog.Logger,
	repo tinyWinRepo,
) *Service {
	return &Service{
		repo: repo,
		log:  log.With("service", "tinywin"),
		now:  time.Now,
	}
}
