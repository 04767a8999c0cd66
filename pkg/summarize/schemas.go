package summarize

import "video-digest/pkg/llm"

// sectionSummaryFunction is the forced function for per-chunk extraction.
func sectionSummaryFunction() llm.FunctionSpec {
	return llm.FunctionSpec{
		Name:        "create_section_summary",
		Description: "Create a summary for a section of a transcript",
		Parameters: llm.ObjectSchema(map[string]any{
			"section_title":   llm.StringProperty("A descriptive title for this section of the transcript"),
			"key_points":      llm.StringArrayProperty("Key points from this section (3-5 points)"),
			"section_summary": llm.StringProperty("A concise paragraph summarizing this section"),
		}, "section_title", "key_points", "section_summary"),
	}
}

// finalSummaryFunction is the forced function for consolidating the section
// summaries of a chunked transcript.
func finalSummaryFunction() llm.FunctionSpec {
	return llm.FunctionSpec{
		Name:        "create_final_summary",
		Description: "Create a final summary from multiple section summaries",
		Parameters: llm.ObjectSchema(map[string]any{
			"title":               llm.StringProperty("Overall title for the video based on all sections"),
			"points":              llm.StringArrayProperty("The most important key points from across all sections"),
			"summary":             llm.StringProperty("A concise paragraph summarizing the entire content"),
			"noteworthy_mentions": llm.StringArrayProperty("People, projects, tools, or important references mentioned"),
			"verdict":             llm.StringProperty("Brief 1-line overall takeaway from the video"),
		}, "title", "points", "summary", "verdict"),
	}
}

// summaryFunction is the forced function for summarizing a short transcript
// in one call.
func summaryFunction() llm.FunctionSpec {
	return llm.FunctionSpec{
		Name:        "create_summary",
		Description: "Create a summary of a transcript",
		Parameters: llm.ObjectSchema(map[string]any{
			"title":               llm.StringProperty("The title of the video inferred from transcript"),
			"points":              llm.StringArrayProperty("Key points that represent the most important information"),
			"summary":             llm.StringProperty("A concise paragraph summarizing the main content"),
			"noteworthy_mentions": llm.StringArrayProperty("People, projects, tools, or important references mentioned"),
			"verdict":             llm.StringProperty("Brief 1-line overall takeaway from the video"),
		}, "title", "points", "summary", "verdict"),
	}
}
