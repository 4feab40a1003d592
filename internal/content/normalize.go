package content

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// wordsPerMinute is the standard silent-reading heuristic used for the
// reading-time estimate. Presentation nicety, not precision-critical.
const wordsPerMinute = 200

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
}

// parseDate accepts the date formats seen in front matter, falling back to
// the supplied default when the value is empty or unparseable.
func parseDate(value string, fallback time.Time) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed
		}
	}
	return fallback
}

// readingTime renders the "N min read" estimate from the body word count.
// An empty body still reads as one minute.
func readingTime(body []byte) string {
	words := len(strings.Fields(string(body)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// deriveCategory turns a subdirectory name into a display category
// ("seo" -> "Seo") when the front matter does not set one explicitly.
func deriveCategory(subdir string) string {
	trimmed := strings.TrimSpace(subdir)
	if trimmed == "" {
		return ""
	}
	runes := []rune(trimmed)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
