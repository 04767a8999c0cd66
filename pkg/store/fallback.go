package store

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"video-digest/pkg/domain"
)

// FallbackStore is a two-tier SummaryStore: a primary backend (database) and
// a fallback (typically a FileStore). The tier decision lives here, behind
// the one interface, instead of try/except scattered through the pipeline.
//
// Writes go to the primary; if the primary fails for any reason other than
// the entry already existing, the write lands in the fallback so no finished
// summarization work is lost. Reads consult the primary first and fall
// through to the fallback on a miss or failure.
type FallbackStore struct {
	primary  SummaryStore
	fallback SummaryStore
}

// NewFallbackStore wires the two tiers.
func NewFallbackStore(primary, fallback SummaryStore) *FallbackStore {
	return &FallbackStore{primary: primary, fallback: fallback}
}

// Get returns the entry for videoID from the first tier that has it.
func (s *FallbackStore) Get(ctx context.Context, videoID string) (domain.StoredSummary, error) {
	entry, err := s.primary.Get(ctx, videoID)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, ErrNotFound) {
		log.Warn("primary store read failed, checking fallback", "video_id", videoID, "err", err)
	}

	fbEntry, fbErr := s.fallback.Get(ctx, videoID)
	if fbErr == nil {
		return fbEntry, nil
	}
	return domain.StoredSummary{}, err
}

// Put inserts entry into the primary, diverting to the fallback when the
// primary is unreachable. An ErrAlreadyExists from the primary is
// authoritative and is never retried against the fallback.
func (s *FallbackStore) Put(ctx context.Context, entry domain.StoredSummary, overwrite bool) error {
	err := s.primary.Put(ctx, entry, overwrite)
	if err == nil || errors.Is(err, ErrAlreadyExists) {
		return err
	}

	log.Warn("primary store write failed, saving to fallback", "video_id", entry.VideoID, "err", err)
	if fbErr := s.fallback.Put(ctx, entry, overwrite); fbErr != nil {
		return errors.Join(err, fbErr)
	}
	return nil
}

// Exists reports whether videoID has an entry in either tier.
func (s *FallbackStore) Exists(ctx context.Context, videoID string) (bool, error) {
	exists, err := s.primary.Exists(ctx, videoID)
	if err == nil && exists {
		return true, nil
	}
	if err != nil {
		log.Warn("primary store existence check failed, checking fallback", "video_id", videoID, "err", err)
	}

	fbExists, fbErr := s.fallback.Exists(ctx, videoID)
	if fbErr == nil {
		return exists || fbExists, err
	}
	return exists, err
}

// ListWindow lists from the primary, falling back only when the primary is
// unreachable. Entries that were diverted to the fallback during an outage
// are included either way, deduplicated by video id.
func (s *FallbackStore) ListWindow(ctx context.Context, from, to time.Time) ([]domain.StoredSummary, error) {
	primaryEntries, err := s.primary.ListWindow(ctx, from, to)
	if err != nil {
		log.Warn("primary store list failed, using fallback", "err", err)
		return s.fallback.ListWindow(ctx, from, to)
	}

	fbEntries, fbErr := s.fallback.ListWindow(ctx, from, to)
	if fbErr != nil || len(fbEntries) == 0 {
		return primaryEntries, nil
	}

	seen := make(map[string]bool, len(primaryEntries))
	for _, e := range primaryEntries {
		seen[e.VideoID] = true
	}
	merged := primaryEntries
	for _, e := range fbEntries {
		if !seen[e.VideoID] {
			merged = append(merged, e)
		}
	}
	return merged, nil
}
