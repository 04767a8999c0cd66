package transcript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"video-digest/pkg/domain"
)

// ErrNoTranscript reports that the source has no transcript for a video.
var ErrNoTranscript = errors.New("no transcript for video")

// Source supplies transcripts to the pipeline. Fetch transport (YouTube
// caption APIs and the like) lives behind this boundary; the pipeline never
// retries transcript fetches itself.
type Source interface {
	Transcript(ctx context.Context, videoID string) (domain.VideoTranscript, error)
}

// FileSource reads transcripts from <dir>/<videoID>.txt. It backs the CLI
// and tests; a network-backed Source plugs in the same way.
type FileSource struct {
	dir string
}

// NewFileSource creates a source over dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Transcript loads and normalizes the transcript file for videoID.
func (s *FileSource) Transcript(_ context.Context, videoID string) (domain.VideoTranscript, error) {
	path := filepath.Join(s.dir, filepath.Base(videoID)+".txt")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.VideoTranscript{}, fmt.Errorf("%w: %s", ErrNoTranscript, videoID)
	}
	if err != nil {
		return domain.VideoTranscript{}, fmt.Errorf("read transcript %s: %w", videoID, err)
	}

	return domain.VideoTranscript{
		VideoID:   videoID,
		Text:      Normalize(string(data)),
		FetchedAt: time.Now().UTC(),
	}, nil
}
