package undolog

import (
	"context"
	"time"
)

// Kind distinguishes file moves from folder moves.
type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// Record is one completed move. CurrentPath exists and OriginalPath does not
// at the moment the record is appended.
type Record struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id,omitempty"`
	CurrentPath  string    `json:"current_path"`
	OriginalPath string    `json:"original_path"`
	Kind         Kind      `json:"kind"`
	SizeBytes    int64     `json:"size_bytes"`
	MovedAt      time.Time `json:"moved_at"`
}

// Log is an append-only list of moves in chronological order.
type Log interface {
	// Append stores rec and returns it with ID and MovedAt assigned.
	Append(ctx context.Context, rec Record) (Record, error)
	// Records returns every stored record, oldest first.
	Records(ctx context.Context) ([]Record, error)
	Len(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
