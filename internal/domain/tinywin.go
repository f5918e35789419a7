package domain

import "time"

// TinyWin is one recorded accomplishment as it comes back from storage.
// Timestamps are pointers because a backend may hand back NULL columns;
// the read-path mapper decides what to show in that case.
type TinyWin struct {
	ID          int64
	CreatedAt   *time.Time
	Title       string
	Description *string
	Category    *string
	CompletedAt *time.Time
}

// TinyWinFields holds the validated mutable fields of a TinyWin.
// Create and Update always carry the full set.
type TinyWinFields struct {
	Title       string
	Description *string
	Category    *string
	CompletedAt time.Time
}
