// Package chunk divides document text into ordered pieces along natural
// boundaries (line breaks, then periods, then question marks) so that each
// piece can be sent to the endpoint on its own.
package chunk

import (
	"strings"
	"unicode/utf8"
)

// Size heuristic for deciding whether a document is split at all.
const (
	// Threshold is the largest document, in characters, sent as one chunk.
	Threshold = 1980

	// CharsPerChunk is the approximate character budget per chunk once a
	// document exceeds Threshold.
	CharsPerChunk = 1000
)

// Delimiters in order of preference.
const (
	lineDelimiter     = "\n"
	periodDelimiter   = "."
	questionDelimiter = "?"
)

// Plan returns the chunks to send for text.
// Text at or under Threshold characters is returned as a single chunk.
// Longer text is split into max(1, chars/CharsPerChunk) chunks.
// Characters are counted as Unicode code points, not bytes.
func Plan(text string) []string {
	n := utf8.RuneCountInString(text)
	if n <= Threshold {
		return []string{text}
	}
	return Split(text, Count(n))
}

// Count returns the target chunk count for a document of chars characters.
func Count(chars int) int {
	return max(1, chars/CharsPerChunk)
}

// Split partitions text into at most n chunks.
//
// Lines are grouped len(lines)/n at a time. When there are fewer lines than
// n, text is re-split on "." or, failing that, on "?". Units left over after
// the full groups are spread one each over the trailing chunks, so the result
// never exceeds n elements and no chunk holds more than ceil(units/n) units.
// Joining the result with Delimiter(text, n) yields text.
func Split(text string, n int) []string {
	units, delim := units(text, n)
	return group(units, delim, n)
}

// Delimiter reports the boundary Split uses for text and n.
func Delimiter(text string, n int) string {
	_, delim := units(text, n)
	return delim
}

// units splits text on the first delimiter that yields at least n pieces.
// Without such a delimiter, the line split is kept as-is.
func units(text string, n int) ([]string, string) {
	n = max(1, n)
	lines := strings.Split(text, lineDelimiter)
	if len(lines)/n > 0 {
		return lines, lineDelimiter
	}
	switch {
	case strings.Contains(text, periodDelimiter):
		return strings.Split(text, periodDelimiter), periodDelimiter
	case strings.Contains(text, questionDelimiter):
		return strings.Split(text, questionDelimiter), questionDelimiter
	default:
		return lines, lineDelimiter
	}
}

// group joins units into at most n chunks of len(units)/n units each.
// The last len(units)%n chunks take one extra unit.
func group(units []string, delim string, n int) []string {
	count := min(max(1, n), len(units))
	size, extra := len(units)/count, len(units)%count

	chunks := make([]string, 0, count)
	start := 0
	for i := range count {
		end := start + size
		if i >= count-extra {
			end++
		}
		chunks = append(chunks, strings.Join(units[start:end], delim))
		start = end
	}
	return chunks
}
