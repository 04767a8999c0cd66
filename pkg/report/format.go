package report

import (
	"regexp"
	"strings"
)

var (
	headingRe   = regexp.MustCompile(`(?m)^#+\s+(.+)$`)
	blankRunsRe = regexp.MustCompile(`\n{3,}`)
	bulletRe    = regexp.MustCompile(`(?m)^[-*]\s+`)
	urlRe       = regexp.MustCompile(`https?://[^\s<>)\]]+`)
)

// sectionEmojis decorates the section names the report prompt asks for.
var sectionEmojis = [][2]string{
	{"**Summary**", "**📋 Summary**"},
	{"**Highlights**", "**✨ Highlights**"},
	{"**Top Videos**", "**🏆 Top Videos**"},
	{"**Key Topics**", "**📈 Key Topics**"},
	{"**Takeaways**", "**💡 Takeaways**"},
	{"**Recommendations**", "**👍 Recommendations**"},
}

// FormatReport normalizes the model's markdown for chat delivery: headings
// become bold lines, bullets use a single marker, runs of blank lines
// collapse, and bare URLs are wrapped so they do not auto-expand into
// previews.
func FormatReport(text string) string {
	text = headingRe.ReplaceAllString(text, "**$1**")

	for _, pair := range sectionEmojis {
		text = strings.ReplaceAll(text, pair[0], pair[1])
	}

	text = blankRunsRe.ReplaceAllString(text, "\n\n")
	text = bulletRe.ReplaceAllString(text, "• ")
	text = wrapBareURLs(text)

	return strings.TrimSpace(text)
}

// wrapBareURLs surrounds plain URLs with angle brackets, leaving alone any
// that are already wrapped or part of a markdown link.
func wrapBareURLs(text string) string {
	matches := urlRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		b.WriteString(text[last:start])

		wrapped := start > 0 && (text[start-1] == '<' || text[start-1] == '(' || text[start-1] == '[')
		if wrapped {
			b.WriteString(text[start:end])
		} else {
			b.WriteByte('<')
			b.WriteString(text[start:end])
			b.WriteByte('>')
		}
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}
