package executor

import (
	"regexp"
	"strings"
)

// itemStart matches the head of a numbered list item: an optional
// "Step" prefix, a number, and a separator.
var itemStart = regexp.MustCompile(`(?mi)^\s*(?:step\s*)?\d+\s*[.):\-]\s*`)

// ParseTaskList extracts subtask descriptions from decomposition text.
// Numbered items are preferred, each running up to the next numbered
// item. When no numbered items exist, the text is split on line breaks
// and lines longer than ten characters are kept. The fallback means a
// parse failure is recovered locally, never surfaced as an error.
func ParseTaskList(text string) []string {
	locs := itemStart.FindAllStringIndex(text, -1)
	if len(locs) > 0 {
		var out []string
		for i, loc := range locs {
			end := len(text)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			item := strings.TrimSpace(text[loc[1]:end])
			if item != "" {
				out = append(out, item)
			}
		}
		return out
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 10 {
			out = append(out, line)
		}
	}
	return out
}
