package util

import (
	"regexp"
	"strings"
)

var (
	blankLineRuns = regexp.MustCompile(`\n{2,}`)
	spaceRuns     = regexp.MustCompile(` {2,}`)
	sentenceEnds  = regexp.MustCompile(`[。.!?]\s+|[\n\r]+`)
)

// CleanText collapses runs of blank lines and spaces and trims the
// result, normalizing extracted document text before prompting.
func CleanText(text string) string {
	text = blankLineRuns.ReplaceAllString(text, "\n\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// TruncateChars bounds text to max characters (runes, so multi-byte
// Thai text is never cut mid-character).
func TruncateChars(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

// SplitSentences splits text on sentence-ending punctuation and line
// breaks, dropping empty fragments.
func SplitSentences(text string) []string {
	var out []string
	for _, s := range sentenceEnds.Split(strings.TrimSpace(text), -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
