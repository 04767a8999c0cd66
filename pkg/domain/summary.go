package domain

import "time"

// ChunkSummary is the structured result of summarizing one transcript chunk.
// It only lives for the duration of a single pipeline run and is never
// persisted on its own.
type ChunkSummary struct {
	SectionTitle   string   `json:"section_title"`
	KeyPoints      []string `json:"key_points"`
	SectionSummary string   `json:"section_summary"`
}

// FinalSummary is the consolidated summary of one video. It is the unit of
// persistence and of cache lookup.
//
// Every field is expected to hold a value after Normalize: downstream
// consumers (report generation, delivery formatting) never branch on a
// missing key.
type FinalSummary struct {
	Title              string   `bson:"title" json:"title"`
	Points             []string `bson:"points" json:"points"`
	Summary            string   `bson:"summary" json:"summary"`
	NoteworthyMentions []string `bson:"noteworthy_mentions" json:"noteworthy_mentions"`
	Verdict            string   `bson:"verdict" json:"verdict"`
}

// Normalize replaces nil slices with empty ones so that serialized summaries
// always carry every field.
func (s *FinalSummary) Normalize() {
	if s.Points == nil {
		s.Points = []string{}
	}
	if s.NoteworthyMentions == nil {
		s.NoteworthyMentions = []string{}
	}
}

// StoredSummary is the persisted cache entry for one video: the final summary
// keyed by video id, optionally alongside the raw transcript it was built
// from. Entries are created once on first successful summarization and are
// never updated in place absent an explicit force-recompute.
type StoredSummary struct {
	VideoID    string       `bson:"video_id" json:"video_id"`
	Title      string       `bson:"title,omitempty" json:"title,omitempty"`
	Channel    string       `bson:"channel,omitempty" json:"channel,omitempty"`
	URL        string       `bson:"url,omitempty" json:"url,omitempty"`
	Summary    FinalSummary `bson:"summary" json:"summary"`
	Transcript string       `bson:"transcript,omitempty" json:"transcript,omitempty"`
	CreatedAt  time.Time    `bson:"created_at" json:"created_at"`
}

// Report is the cross-video daily report artifact. It has no identity beyond
// its generation timestamp and is not persisted.
type Report struct {
	WindowLabel string    `json:"window_label"`
	Text        string    `json:"text"`
	Length      int       `json:"length"`
	GeneratedAt time.Time `json:"generated_at"`
}
