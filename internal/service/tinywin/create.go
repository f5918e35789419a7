package tinywin

import (
	"context"
	"fmt"
	"log/slog"
)

// Create validates the input and stores a new tiny win.
func (s *Service) Create(ctx context.Context, input WinInput) (*Record, error) {
	now := s.now()

	fields, err := input.Normalize(now)
	if err != nil {
		return nil, err
	}

	win, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("create tiny win: %w", err)
	}

	s.log.InfoContext(ctx, "tiny win created",
		slog.Int64("id", win.ID),
		slog.String("title", preview(fields.Title)),
	)

	record := ToRecord(*win, now)
	return &record, nil
}

// preview shortens titles for log lines.
func preview(s string) string {
	r := []rune(s)
	if len(r) > 50 {
		return string(r[:50])
	}
	return s
}
