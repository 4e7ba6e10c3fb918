package parser

import "strings"

// NormalizeLines flattens decoded page texts into an ordered sequence of
// trimmed, non-empty lines. Page texts are joined with a line break and order
// is preserved exactly: line ordering is the only positional signal the rest
// of the pipeline has, since no coordinate data survives extraction.
func NormalizeLines(pages []string) []string {
	var lines []string
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// RawText rejoins normalized lines into the text retained on the report.
func RawText(lines []string) string {
	return strings.Join(lines, "\n")
}
