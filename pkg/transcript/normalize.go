// Package transcript handles the transcript-source boundary: cleaning raw
// caption text into plain prose and loading transcripts for the pipeline.
package transcript

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	horizontalWSRe = regexp.MustCompile(`[ \t]+`)
	newlineRunsRe  = regexp.MustCompile(`\n{2,}`)
)

// Normalize turns raw caption text into plain prose. Caption tracks often
// carry markup (<i>, <b>, timing spans) and HTML entities; both are removed
// and whitespace runs are collapsed so the segmenter sees clean sentences.
func Normalize(raw string) string {
	text := raw
	if strings.Contains(text, "<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			text = doc.Text()
		}
	}
	text = html.UnescapeString(text)

	text = horizontalWSRe.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = newlineRunsRe.ReplaceAllString(text, "\n")

	return strings.TrimSpace(text)
}
