// Package summarize runs the transcript summarization pipeline: cache-first
// lookup, segmentation, sequential per-chunk structured extraction, merge,
// and write-back.
package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"video-digest/pkg/domain"
	"video-digest/pkg/llm"
	"video-digest/pkg/segmenter"
	"video-digest/pkg/store"
)

// ErrTranscriptUnavailable is the one failure Summarize surfaces as an
// error: with no transcript text there is nothing to degrade gracefully
// into.
var ErrTranscriptUnavailable = errors.New("transcript unavailable")

// Extractor is the structured-extraction seam the pipeline depends on.
type Extractor interface {
	Extract(ctx context.Context, text, instructions string, fn llm.FunctionSpec) (json.RawMessage, error)
}

// Options tunes segmentation. Zero values use the segmenter defaults.
type Options struct {
	MaxChunkSize int
	ChunkOverlap int

	// KeepTranscript stores the raw transcript alongside the summary.
	KeepTranscript bool
}

// Service is the pipeline entry point. The session cache and durable store
// are injected so tests (and future callers) can substitute their own.
type Service struct {
	extractor Extractor
	sessions  *store.SessionCache
	summaries store.SummaryStore
	opts      Options

	group singleflight.Group
}

// New wires a Service.
func New(extractor Extractor, sessions *store.SessionCache, summaries store.SummaryStore, opts Options) *Service {
	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = segmenter.DefaultMaxChunkSize
	}
	if opts.ChunkOverlap <= 0 {
		opts.ChunkOverlap = segmenter.DefaultOverlap
	}
	return &Service{
		extractor: extractor,
		sessions:  sessions,
		summaries: summaries,
		opts:      opts,
	}
}

// Summarize produces the FinalSummary for t, consulting the session cache
// and the durable store before doing any work. The first successful result
// for a video id is canonical; repeated calls return it unchanged unless
// force is set.
//
// Every failure past the transcript check degrades into a labeled summary
// rather than an error.
func (s *Service) Summarize(ctx context.Context, t domain.VideoTranscript, force bool) (domain.FinalSummary, error) {
	if strings.TrimSpace(t.Text) == "" {
		return domain.FinalSummary{}, fmt.Errorf("%w: video %s", ErrTranscriptUnavailable, t.VideoID)
	}

	if !force {
		if entry, ok := s.sessions.Get(t.VideoID); ok {
			log.Debug("session cache hit", "video_id", t.VideoID)
			return entry.Summary, nil
		}
		if entry, err := s.summaries.Get(ctx, t.VideoID); err == nil {
			log.Info("summary found in store", "video_id", t.VideoID)
			s.sessions.Put(entry)
			return entry.Summary, nil
		}
	}

	// Collapse concurrent first-time requests for the same video: one
	// caller runs the pipeline, the rest share its result.
	key := t.VideoID
	if force {
		key = t.VideoID + "!force"
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.run(ctx, t, force), nil
	})
	if err != nil {
		return domain.FinalSummary{}, err
	}
	return v.(domain.FinalSummary), nil
}

// run executes segmentation, extraction, merge, and write-back.
func (s *Service) run(ctx context.Context, t domain.VideoTranscript, force bool) domain.FinalSummary {
	summary := s.generate(ctx, t)
	summary.Normalize()

	entry := domain.StoredSummary{
		VideoID:   t.VideoID,
		Title:     t.Title,
		Channel:   t.Channel,
		URL:       t.URL,
		Summary:   summary,
		CreatedAt: time.Now().UTC(),
	}
	if s.opts.KeepTranscript {
		entry.Transcript = t.Text
	}

	if err := s.summaries.Put(ctx, entry, force); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the write race: the earlier entry is canonical, so
			// discard our result and adopt the winner's.
			if existing, getErr := s.summaries.Get(ctx, t.VideoID); getErr == nil {
				entry = existing
			}
		} else {
			// Cache unavailability never aborts the pipeline; the summary is
			// still returned to the caller.
			log.Error("failed to store summary", "video_id", t.VideoID, "err", err)
		}
	}

	s.sessions.Put(entry)
	return entry.Summary
}

// generate runs the extraction phase: one call for a short transcript, or
// the chunk/extract/merge sequence for a long one.
func (s *Service) generate(ctx context.Context, t domain.VideoTranscript) domain.FinalSummary {
	if len(t.Text) <= s.opts.MaxChunkSize {
		raw, err := s.extractor.Extract(ctx, t.Text, DefaultSummaryPrompt, summaryFunction())
		if err != nil {
			log.Warn("summary extraction failed", "video_id", t.VideoID, "err", err)
			return failedSummary()
		}
		var summary domain.FinalSummary
		if err := json.Unmarshal(raw, &summary); err != nil {
			log.Warn("summary payload did not parse", "video_id", t.VideoID, "err", err)
			return failedSummary()
		}
		return summary
	}

	chunks := segmenter.Segment(t.Text, s.opts.MaxChunkSize, s.opts.ChunkOverlap)
	log.Info("transcript too long, processing in chunks",
		"video_id", t.VideoID, "chars", len(t.Text), "chunks", len(chunks))

	// Chunks are processed one at a time on purpose: sequential calls (plus
	// the extractor's backoff) keep us under the completion service's rate
	// limit.
	var sections []domain.ChunkSummary
	for _, chunk := range chunks {
		raw, err := s.extractor.Extract(ctx, chunk.Text, sectionPrompt(chunk.Index+1, len(chunks)), sectionSummaryFunction())
		if err != nil {
			log.Warn("chunk extraction failed, skipping",
				"video_id", t.VideoID, "chunk", chunk.Index, "err", err)
			continue
		}
		var section domain.ChunkSummary
		if err := json.Unmarshal(raw, &section); err != nil {
			log.Warn("chunk summary did not parse, skipping",
				"video_id", t.VideoID, "chunk", chunk.Index, "err", err)
			continue
		}
		sections = append(sections, section)
	}

	return s.Merge(ctx, sections)
}
