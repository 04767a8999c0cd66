// Package segmenter splits long transcripts into overlapping, sentence-aware
// chunks so each piece fits within the completion service's input budget
// without losing context at the boundaries.
package segmenter

import "video-digest/pkg/domain"

const (
	// DefaultMaxChunkSize is the character budget for a single chunk.
	DefaultMaxChunkSize = 8000

	// DefaultOverlap is how many trailing characters consecutive chunks share.
	DefaultOverlap = 500
)

// Segment splits text into ordered chunks of at most maxSize characters.
//
// A transcript that already fits in maxSize is returned as a single chunk
// with no further work. Longer transcripts are carved into windows of
// maxSize characters; each window is then truncated at the last sentence
// terminator (".", "!" or "?" followed by whitespace) found within the final
// overlap characters, so chunks end on sentence boundaries when possible.
// The next chunk starts overlap characters before the previous one ended,
// giving consecutive chunks a shared margin.
//
// Segment performs no minimum-length validation; rejecting near-empty input
// is the extractor's job.
func Segment(text string, maxSize, overlap int) []domain.Chunk {
	if maxSize <= 0 {
		maxSize = DefaultMaxChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxSize {
		overlap = maxSize / 2
	}

	if len(text) <= maxSize {
		return []domain.Chunk{{Index: 0, Start: 0, End: len(text), Text: text}}
	}

	var chunks []domain.Chunk
	start := 0
	for start < len(text) {
		end := start + maxSize
		if end > len(text) {
			end = len(text)
		}

		// Prefer ending on a sentence boundary within the trailing overlap
		// window. If none exists, accept the raw cut.
		if end < len(text) {
			searchStart := end - overlap
			if searchStart < start {
				searchStart = start
			}
			if b := lastSentenceEnd(text, searchStart, end); b > searchStart {
				end = b
			}
		}

		chunks = append(chunks, domain.Chunk{
			Index: len(chunks),
			Start: start,
			End:   end,
			Text:  text[start:end],
		})

		if end == len(text) {
			break
		}

		next := end - overlap
		if next <= start {
			// Guard against stalling when boundary truncation ate the whole
			// advance; give up the overlap for this step.
			next = end
		}
		start = next
	}

	return chunks
}

// lastSentenceEnd returns the index just past the last "terminator followed
// by whitespace" pair in text[from:to], or -1 if there is none. The
// whitespace character is kept with the preceding chunk.
func lastSentenceEnd(text string, from, to int) int {
	for i := to - 1; i > from; i-- {
		if isSpace(text[i]) && isTerminator(text[i-1]) {
			return i + 1
		}
	}
	return -1
}

func isTerminator(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}
