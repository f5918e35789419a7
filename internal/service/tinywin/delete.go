package tinywin

import (
	"context"
	"fmt"
	"log/slog"
)

// Delete removes the tiny win with the given ID and returns what was removed.
func (s *Service) Delete(ctx context.Context, id int64) (*Record, error) {
	win, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete tiny win: %w", err)
	}

	s.log.InfoContext(ctx, "tiny win deleted", slog.Int64("id", id))

	record := ToRecord(*win, s.now())
	return &record, nil
}
