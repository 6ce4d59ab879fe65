package summarize

import "strings"

// Truncate returns the first n runes of text with an ellipsis appended when
// the text was shortened. It is the deterministic fallback used when a
// summarization backend fails.
func Truncate(text string, n int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}
