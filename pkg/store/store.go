// Package store persists final summaries keyed by video id. Backends are
// interchangeable behind SummaryStore; writes are insert-only so an existing
// entry stays canonical unless the caller explicitly overwrites it.
package store

import (
	"context"
	"errors"
	"time"

	"video-digest/pkg/domain"
)

var (
	// ErrNotFound reports a cache miss for a video id.
	ErrNotFound = errors.New("summary not found")

	// ErrAlreadyExists reports an insert against a video id that already has
	// a canonical entry.
	ErrAlreadyExists = errors.New("summary already exists")

	// ErrUnavailable reports that the backend could not be reached at all.
	ErrUnavailable = errors.New("summary store unavailable")
)

// SummaryStore is the durable record store for summaries.
type SummaryStore interface {
	// Get returns the entry for videoID, or ErrNotFound.
	Get(ctx context.Context, videoID string) (domain.StoredSummary, error)

	// Put inserts entry. With overwrite false an existing entry wins and
	// ErrAlreadyExists is returned; with overwrite true the entry is
	// replaced (force-recompute path).
	Put(ctx context.Context, entry domain.StoredSummary, overwrite bool) error

	// Exists reports whether videoID has an entry.
	Exists(ctx context.Context, videoID string) (bool, error)

	// ListWindow returns all entries created within [from, to), ordered by
	// creation time.
	ListWindow(ctx context.Context, from, to time.Time) ([]domain.StoredSummary, error)
}
