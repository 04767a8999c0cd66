package summarize

import "fmt"

// DefaultSummaryPrompt is the system instruction for whole-transcript and
// consolidation calls.
const DefaultSummaryPrompt = `You're an advanced content summarizer.
Your task is to analyze the transcript of a YouTube video and return a concise summary in JSON format only.
Include the video's topic, key points, and any noteworthy mentions.
Do not include anything outside of the JSON block. Be accurate, structured, and informative.

Format your response like this:

{
  "title": "Insert video title here",
  "points": [
    "Key point 1",
    "Key point 2",
    "Key point 3"
  ],
  "summary": "A concise paragraph summarizing the main content",
  "noteworthy_mentions": [
    "Person, project, or tool name if mentioned",
    "Important reference or example"
  ],
  "verdict": "Brief 1-line overall takeaway"
}`

// sectionPrompt is the system instruction for one chunk of a longer
// transcript; part numbers give the model its position in the sequence.
func sectionPrompt(part, total int) string {
	return fmt.Sprintf("You are summarizing part %d of %d of a longer transcript.", part, total)
}
