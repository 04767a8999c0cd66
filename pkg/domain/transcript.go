package domain

import "time"

// VideoTranscript is the raw input to the summarization pipeline: one video's
// transcript text plus the identity metadata supplied by the transcript source.
//
// Instances are read-only once constructed; the pipeline never mutates them.
type VideoTranscript struct {
	// VideoID is the short stable token identifying the source video.
	// It doubles as the cache key for the resulting summary.
	VideoID string `bson:"video_id" json:"video_id"`

	// Title is the video title, when the source knows it.
	Title string `bson:"title,omitempty" json:"title,omitempty"`

	// Channel is the name of the channel that published the video.
	Channel string `bson:"channel,omitempty" json:"channel,omitempty"`

	// URL is the canonical watch URL, when available.
	URL string `bson:"url,omitempty" json:"url,omitempty"`

	// Text is the full transcript text.
	Text string `bson:"text" json:"text"`

	// FetchedAt is when the transcript was obtained from the source.
	FetchedAt time.Time `bson:"fetched_at,omitempty" json:"fetched_at,omitempty"`
}

// Chunk is a bounded, possibly overlapping contiguous substring of a
// transcript. Start and End are byte offsets into the original text, with
// Text == transcript[Start:End]. Chunks are ordered by Index.
type Chunk struct {
	Index int
	Start int
	End   int
	Text  string
}
