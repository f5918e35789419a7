package tinywin

import (
	"time"

	"github.com/heartmarshall/tinywin-backend/internal/domain"
)

// WinInput holds the raw mutable fields sent by a caller for create and
// full-record update. A nil field means absent or not text.
type WinInput struct {
	Title       *string
	Description *string
	Category    *string
	CompletedAt *string
}

// Normalize validates the input and produces the fields to persist.
// The first failing rule wins: title, then completedAt.
func (i WinInput) Normalize(now time.Time) (domain.TinyWinFields, error) {
	title, err := domain.NormalizeTitle(i.Title)
	if err != nil {
		return domain.TinyWinFields{}, err
	}

	completedAt, err := domain.ParseCompletedAt(i.CompletedAt, now)
	if err != nil {
		return domain.TinyWinFields{}, err
	}

	return domain.TinyWinFields{
		Title:       title,
		Description: domain.SanitizeText(i.Description),
		Category:    domain.SanitizeText(i.Category),
		CompletedAt: completedAt,
	}, nil
}
