package summarize

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"

	"video-digest/pkg/domain"
)

const (
	mergedSummaryMaxChars = 500

	verdictFailed    = "Summary generation failed."
	verdictDegraded  = "Summary generation partially succeeded."
	placeholderPoint = "No specific points could be extracted from the transcript"
)

// Merge combines per-chunk summaries into one FinalSummary. It never fails:
// the result degrades through three tiers. The preferred path is a second
// extraction over the serialized sections; if that fails, a deterministic
// local reduction; if there are no sections at all, a fixed summary whose
// fields say so.
func (s *Service) Merge(ctx context.Context, sections []domain.ChunkSummary) domain.FinalSummary {
	if len(sections) == 0 {
		return failedSummary()
	}

	payload, err := json.MarshalIndent(map[string]any{"sections": sections}, "", "  ")
	if err != nil {
		log.Error("serialize section summaries", "err", err)
		return reduceSections(sections)
	}

	raw, err := s.extractor.Extract(ctx, string(payload), DefaultSummaryPrompt, finalSummaryFunction())
	if err != nil {
		log.Warn("consolidation call failed, reducing locally", "sections", len(sections), "err", err)
		return reduceSections(sections)
	}

	var merged domain.FinalSummary
	if err := json.Unmarshal(raw, &merged); err != nil {
		log.Warn("consolidated summary did not parse, reducing locally", "err", err)
		return reduceSections(sections)
	}
	merged.Normalize()
	return merged
}

// reduceSections builds a FinalSummary from the sections without the model:
// first section's title, the first five key points in order, and the joined
// section summaries capped at 500 characters.
func reduceSections(sections []domain.ChunkSummary) domain.FinalSummary {
	title := sections[0].SectionTitle
	if title == "" {
		title = "Video Summary"
	}

	var points []string
	for _, sec := range sections {
		points = append(points, sec.KeyPoints...)
	}
	if len(points) > 5 {
		points = points[:5]
	}
	if len(points) == 0 {
		points = []string{placeholderPoint}
	}

	var combined string
	for i, sec := range sections {
		if i > 0 {
			combined += " "
		}
		combined += sec.SectionSummary
	}
	if len(combined) > mergedSummaryMaxChars {
		combined = combined[:mergedSummaryMaxChars] + "..."
	}

	return domain.FinalSummary{
		Title:              title,
		Points:             points,
		Summary:            combined,
		NoteworthyMentions: []string{},
		Verdict:            verdictDegraded,
	}
}

// failedSummary is returned when no chunk produced anything. The fields
// communicate the failure instead of raising it; the pipeline always hands
// back some summary for content it could read.
func failedSummary() domain.FinalSummary {
	return domain.FinalSummary{
		Title: "Video Summary (Generated)",
		Points: []string{
			"The AI model could not generate specific points from this video",
			"The transcript was processed but summary generation failed",
			"Check the logs for more information about the error",
			"You can try again with a shorter video",
			"Or check your OpenAI API key and quota",
		},
		Summary: "The AI model was unable to generate a proper summary of this video. " +
			"This could be due to issues with the transcript length, the API key configuration, or rate limits.",
		NoteworthyMentions: []string{},
		Verdict:            verdictFailed,
	}
}
