package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"video-digest/pkg/domain"
)

// FileStore keeps one JSON file per video id under a directory. It is the
// fallback tier behind FallbackStore: when every database backend is down,
// finished summarization work still lands on disk instead of being lost.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create file store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get returns the entry for videoID.
func (s *FileStore) Get(_ context.Context, videoID string) (domain.StoredSummary, error) {
	data, err := os.ReadFile(s.path(videoID))
	if errors.Is(err, os.ErrNotExist) {
		return domain.StoredSummary{}, ErrNotFound
	}
	if err != nil {
		return domain.StoredSummary{}, fmt.Errorf("read summary file %s: %w", videoID, err)
	}

	var entry domain.StoredSummary
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.StoredSummary{}, fmt.Errorf("decode summary file %s: %w", videoID, err)
	}
	entry.Summary.Normalize()
	return entry, nil
}

// Put writes entry to its file. Without overwrite the file is created
// exclusively, so an existing entry stays canonical even under a write race.
func (s *FileStore) Put(_ context.Context, entry domain.StoredSummary, overwrite bool) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary %s: %w", entry.VideoID, err)
	}

	if overwrite {
		if err := os.WriteFile(s.path(entry.VideoID), data, 0o644); err != nil {
			return fmt.Errorf("write summary file %s: %w", entry.VideoID, err)
		}
		return nil
	}

	f, err := os.OpenFile(s.path(entry.VideoID), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create summary file %s: %w", entry.VideoID, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write summary file %s: %w", entry.VideoID, err)
	}
	return nil
}

// Exists reports whether videoID has an entry.
func (s *FileStore) Exists(_ context.Context, videoID string) (bool, error) {
	_, err := os.Stat(s.path(videoID))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat summary file %s: %w", videoID, err)
	}
	return true, nil
}

// ListWindow scans the directory and returns entries created within
// [from, to), oldest first.
func (s *FileStore) ListWindow(ctx context.Context, from, to time.Time) ([]domain.StoredSummary, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read file store directory: %w", err)
	}

	var entries []domain.StoredSummary
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		entry, err := s.Get(ctx, strings.TrimSuffix(de.Name(), ".json"))
		if err != nil {
			continue // skip undecodable files
		}
		if entry.CreatedAt.Before(from) || !entry.CreatedAt.Before(to) {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

// path maps a video id to its file, refusing anything that could escape the
// store directory.
func (s *FileStore) path(videoID string) string {
	return filepath.Join(s.dir, filepath.Base(videoID)+".json")
}
