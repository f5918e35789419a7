package tinywin

import (
	"context"
	"fmt"
	"log/slog"
)

// Update replaces every mutable field of the tiny win with the given ID.
// Returns domain.ErrNotFound (wrapped) if no such record exists.
func (s *Service) Update(ctx context.Context, id int64, input WinInput) (*Record, error) {
	now := s.now()

	fields, err := input.Normalize(now)
	if err != nil {
		return nil, err
	}

	win, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("update tiny win: %w", err)
	}

	s.log.InfoContext(ctx, "tiny win updated", slog.Int64("id", win.ID))

	record := ToRecord(*win, now)
	return &record, nil
}
