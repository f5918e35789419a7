package tinywin

import (
	"time"

	"github.com/heartmarshall/tinywin-backend/internal/domain"
)

// isoLayout renders instants as UTC ISO-8601 with millisecond precision.
const isoLayout = "2006-01-02T15:04:05.000Z"

// Record is the externally visible representation of a TinyWin.
type Record struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	CreatedAt   string  `json:"createdAt"`
	CompletedAt string  `json:"completedAt"`
}

// ToRecord maps a stored row to its wire form.
// Missing createdAt falls back to now; missing completedAt falls back to
// createdAt, then to now.
func ToRecord(w domain.TinyWin, now time.Time) Record {
	createdAt := now
	if w.CreatedAt != nil {
		createdAt = *w.CreatedAt
	}

	completedAt := createdAt
	if w.CompletedAt != nil {
		completedAt = *w.CompletedAt
	}

	return Record{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Category:    w.Category,
		CreatedAt:   formatISO(createdAt),
		CompletedAt: formatISO(completedAt),
	}
}

// ToRecords maps rows in order. Never returns nil.
func ToRecords(wins []domain.TinyWin, now time.Time) []Record {
	records := make([]Record, len(wins))
	for i, w := range wins {
		records[i] = ToRecord(w, now)
	}
	return records
}

func formatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
