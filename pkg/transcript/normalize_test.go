package transcript

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalize_StripsMarkup(t *testing.T) {
	got := Normalize("<i>hello</i> <b>world</b>")

	if got != "hello world" {
		t.Errorf("got %q", got)
	}
}

func TestNormalize_DecodesEntities(t *testing.T) {
	got := Normalize("rock &amp; roll &quot;live&quot;")

	if got != `rock & roll "live"` {
		t.Errorf("got %q", got)
	}
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	got := Normalize("one   two\t\tthree\n\n\n\nfour")

	if got != "one two three\nfour" {
		t.Errorf("got %q", got)
	}
}

func TestNormalize_PlainTextUntouched(t *testing.T) {
	got := Normalize("Just a plain sentence. And another one.")

	if got != "Just a plain sentence. And another one." {
		t.Errorf("got %q", got)
	}
}

func TestFileSource_ReadsAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	raw := "<i>First</i> line.\n\n\nSecond   line."
	if err := os.WriteFile(filepath.Join(dir, "abc123.txt"), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewFileSource(dir)
	got, err := src.Transcript(context.Background(), "abc123")
	if err != nil {
		t.Fatal(err)
	}

	if got.VideoID != "abc123" {
		t.Errorf("video id = %q", got.VideoID)
	}
	if got.Text != "First line.\nSecond line." {
		t.Errorf("text = %q", got.Text)
	}
	if got.FetchedAt.IsZero() {
		t.Error("FetchedAt not set")
	}
}

func TestFileSource_Missing(t *testing.T) {
	src := NewFileSource(t.TempDir())

	_, err := src.Transcript(context.Background(), "nope")
	if !errors.Is(err, ErrNoTranscript) {
		t.Errorf("err = %v", err)
	}
}

func TestFileSource_IgnoresPathTraversal(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "safe.txt"), []byte("ok"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewFileSource(dir)
	got, err := src.Transcript(context.Background(), "../safe")
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "ok" {
		t.Errorf("text = %q", got.Text)
	}
}
