// Package slug derives filesystem-safe filename stems for generated artwork.
package slug

import (
	"regexp"
	"strings"
)

// MaxLen is the longest slug Slugify returns.
const MaxLen = 30

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses every run of characters outside [a-z0-9] into a
// single hyphen, trims hyphens from both ends and truncates to MaxLen.
// Letters such as "ä" are not transliterated; they count as separators.
func Slugify(s string) string {
	out := strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if len(out) > MaxLen {
		out = strings.TrimRight(out[:MaxLen], "-")
	}
	return out
}

// HeaderStem is the filename stem of a blog header image: {date}-{slug(topic)}.
func HeaderStem(date, topic string) string {
	return date + "-" + Slugify(topic)
}

// VocabStem is the filename stem of a vocabulary card: {date}-vocab-{lowercase(word)}.
func VocabStem(date, word string) string {
	return date + "-vocab-" + strings.ToLower(word)
}
