package tinywin

import (
	"context"
	"fmt"
)

// List returns every tiny win, most recently completed first.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	wins, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tiny wins: %w", err)
	}

	return ToRecords(wins, s.now()), nil
}

// Get returns a single tiny win by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Record, error) {
	win, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tiny win: %w", err)
	}

	record := ToRecord(*win, s.now())
	return &record, nil
}
