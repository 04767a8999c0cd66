package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"video-digest/pkg/domain"
)

func testEntry(videoID string, createdAt time.Time) domain.StoredSummary {
	return domain.StoredSummary{
		VideoID: videoID,
		Title:   "Test Video",
		URL:     "https://youtube.com/watch?v=" + videoID,
		Summary: domain.FinalSummary{
			Title:              "Test Video",
			Points:             []string{"point one", "point two"},
			Summary:            "A short summary.",
			NoteworthyMentions: []string{},
			Verdict:            "Worth watching.",
		},
		CreatedAt: createdAt,
	}
}

func TestFileStore_PutGet(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()
	entry := testEntry("abc123", time.Now().UTC())

	if err := s.Put(ctx, entry, false); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "abc123")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Summary.Title != entry.Summary.Title {
		t.Errorf("title = %q, want %q", got.Summary.Title, entry.Summary.Title)
	}
	if len(got.Summary.Points) != 2 {
		t.Errorf("points = %v", got.Summary.Points)
	}
}

func TestFileStore_GetMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	_, err = s.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_PutIsInsertOnly(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	first := testEntry("abc123", time.Now().UTC())
	if err := s.Put(ctx, first, false); err != nil {
		t.Fatalf("first Put: %v", err)
	}

	second := first
	second.Summary.Title = "Replacement"
	if err := s.Put(ctx, second, false); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := s.Get(ctx, "abc123")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Summary.Title != "Test Video" {
		t.Error("losing write must not replace the canonical entry")
	}
}

func TestFileStore_PutOverwrite(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, testEntry("abc123", time.Now().UTC()), false); err != nil {
		t.Fatalf("first Put: %v", err)
	}

	replacement := testEntry("abc123", time.Now().UTC())
	replacement.Summary.Title = "Recomputed"
	if err := s.Put(ctx, replacement, true); err != nil {
		t.Fatalf("overwrite Put: %v", err)
	}

	got, err := s.Get(ctx, "abc123")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Summary.Title != "Recomputed" {
		t.Error("overwrite should replace the entry")
	}
}

func TestFileStore_Exists(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	exists, err := s.Exists(ctx, "abc123")
	if err != nil || exists {
		t.Fatalf("Exists before Put = (%v, %v)", exists, err)
	}

	if err := s.Put(ctx, testEntry("abc123", time.Now().UTC()), false); err != nil {
		t.Fatalf("Put: %v", err)
	}

	exists, err = s.Exists(ctx, "abc123")
	if err != nil || !exists {
		t.Fatalf("Exists after Put = (%v, %v)", exists, err)
	}
}

func TestFileStore_ListWindow(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"vid1", "vid2", "vid3"} {
		entry := testEntry(id, base.Add(time.Duration(i)*24*time.Hour))
		if err := s.Put(ctx, entry, false); err != nil {
			t.Fatalf("Put %s: %v", id, err)
		}
	}

	entries, err := s.ListWindow(ctx, base, base.Add(36*time.Hour))
	if err != nil {
		t.Fatalf("ListWindow: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries in window, got %d", len(entries))
	}
	if entries[0].VideoID != "vid1" || entries[1].VideoID != "vid2" {
		t.Errorf("unexpected order: %s, %s", entries[0].VideoID, entries[1].VideoID)
	}
}
