// Package report builds one cross-video daily report out of the stored
// summaries for a time window, formatted for a chat-delivery channel.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"video-digest/pkg/domain"
	"video-digest/pkg/llm"
)

// InlineLimit is the delivery channel's inline-message length. The caller
// compares Report.Length against it to choose inline text versus an
// attachment; the aggregator itself is delivery-agnostic.
const InlineLimit = 2000

const (
	// NoContentReport is returned for an empty window, with no completion
	// call made.
	NoContentReport = "No new videos summarized today."

	failedReport = "Failed to generate daily report. Please check the logs for details."
)

// DefaultReportPrompt steers the model toward a ranked, multi-section
// narrative rather than another structured extraction.
const DefaultReportPrompt = `You are an expert content analyst creating daily summaries for YouTube videos.
Given a list of video summaries from the last 24 hours, your job is to create a concise, informative daily report.

Include the following sections in your report:
1. **Highlights** - Brief overview of the day's most important videos
2. **Top Videos** - Rate the top 2-3 videos on a scale of 1-10 and explain why they're worth watching
3. **Key Topics** - Identify 3-5 main topics or themes across all videos
4. **Takeaways** - List 3-5 key insights or lessons from today's videos
5. **Recommendations** - Suggest which video(s) viewers should prioritize watching

FORMAT YOUR REPORT:
- Use proper markdown format with headers and bullet points
- Keep paragraphs short for easy reading on mobile
- Make your report engaging and informative
- Write in a neutral, professional tone

The report will be shared in a chat channel, so format it accordingly using markdown for structure.`

// Extractor is the structured-extraction seam the aggregator depends on.
type Extractor interface {
	Extract(ctx context.Context, text, instructions string, fn llm.FunctionSpec) (json.RawMessage, error)
}

// Aggregator turns a window of stored summaries into one report.
type Aggregator struct {
	extractor Extractor
}

// NewAggregator wires an Aggregator.
func NewAggregator(extractor Extractor) *Aggregator {
	return &Aggregator{extractor: extractor}
}

// Aggregate produces the report for summaries. It never fails: an empty
// window yields the fixed no-content text, and an extraction failure yields
// a fixed failure text. Either way the returned Report carries the final
// length for the inline-vs-attachment decision.
func (a *Aggregator) Aggregate(ctx context.Context, summaries []domain.StoredSummary, windowLabel string) domain.Report {
	if len(summaries) == 0 {
		log.Info("no summaries in window, skipping report generation", "window", windowLabel)
		return newReport(NoContentReport, windowLabel)
	}

	input := serializeSummaries(summaries)

	log.Info("generating daily report", "window", windowLabel, "summaries", len(summaries))
	raw, err := a.extractor.Extract(ctx, input, DefaultReportPrompt, reportFunction())
	if err != nil {
		log.Error("daily report generation failed", "window", windowLabel, "err", err)
		return newReport(failedReport, windowLabel)
	}

	var payload struct {
		Report string `json:"report"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || strings.TrimSpace(payload.Report) == "" {
		log.Error("daily report payload did not parse", "window", windowLabel, "err", err)
		return newReport(failedReport, windowLabel)
	}

	return newReport(FormatReport(payload.Report), windowLabel)
}

func newReport(text, windowLabel string) domain.Report {
	return domain.Report{
		WindowLabel: windowLabel,
		Text:        text,
		Length:      len(text),
		GeneratedAt: time.Now().UTC(),
	}
}

// reportFunction is the forced function for report generation: a single
// free-text field, since the report is narrative rather than structured.
func reportFunction() llm.FunctionSpec {
	return llm.FunctionSpec{
		Name:        "create_daily_report",
		Description: "Create a daily report from video summaries",
		Parameters: llm.ObjectSchema(map[string]any{
			"report": llm.StringProperty("A comprehensive daily report covering all videos"),
		}, "report"),
	}
}

// serializeSummaries renders each summary as a delimited block the model can
// read back.
func serializeSummaries(summaries []domain.StoredSummary) string {
	blocks := make([]string, 0, len(summaries))
	for i, s := range summaries {
		title := s.Summary.Title
		if title == "" {
			title = fmt.Sprintf("Video %d", i+1)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Video: %s\n", title)
		fmt.Fprintf(&b, "URL: %s\n", s.URL)
		if s.Summary.Verdict != "" {
			fmt.Fprintf(&b, "Verdict: %s\n", s.Summary.Verdict)
		}
		b.WriteString("Key Points:\n")
		for _, p := range s.Summary.Points {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		if len(s.Summary.NoteworthyMentions) > 0 {
			fmt.Fprintf(&b, "Noteworthy Mentions: %s\n", strings.Join(s.Summary.NoteworthyMentions, ", "))
		}
		summaryText := s.Summary.Summary
		if summaryText == "" {
			summaryText = "No summary available"
		}
		fmt.Fprintf(&b, "Summary: %s\n", summaryText)

		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n---\n")
}
