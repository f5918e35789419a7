package domain

import (
	"strconv"
	"strings"
	"time"
)

// completedAtLayouts are tried in order. Date-only values mean start of day UTC.
var completedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// SanitizeText trims whitespace. Returns nil for a nil input or when
// nothing is left after trimming.
func SanitizeText(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NormalizeTitle returns the trimmed title or a title-required error.
func NormalizeTitle(raw *string) (string, error) {
	title := SanitizeText(raw)
	if title == nil {
		return "", NewValidationError("title", CodeTitleRequired)
	}
	return *title, nil
}

// ParseCompletedAt parses the completion instant supplied by a caller.
// A nil or empty value means now.
func ParseCompletedAt(raw *string, now time.Time) (time.Time, error) {
	if raw == nil || *raw == "" {
		return now, nil
	}

	s := strings.TrimSpace(*raw)
	for _, layout := range completedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, NewValidationError("completedAt", CodeInvalidCompletedAt)
}

// ParseID parses a path parameter into a record id. Zero and negative ids
// parse fine and simply match no row.
func ParseID(raw string) (int64, error) {
	if raw == "" {
		return 0, NewValidationError("id", CodeInvalidID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewValidationError("id", CodeInvalidID)
	}
	return id, nil
}
