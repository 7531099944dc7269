// Package parser derives the ordered item sequence from the raw text buffer.
package parser

import "strings"

// Item is one non-blank line of the buffer: its 1-based source line number
// and the trimmed text. Items are derived values; they live for one parse
// pass and are never stored apart from the text they came from.
type Item struct {
	Line int
	Text string
}

// Parse splits text into lines, trims each one and drops the blanks. The
// result preserves top-to-bottom order. Any input is fine, including the
// empty string, which yields an empty sequence.
func Parse(text string) []Item {
	if text == "" {
		return nil
	}
	var items []Item
	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		items = append(items, Item{Line: i + 1, Text: trimmed})
	}
	return items
}
