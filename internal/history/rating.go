package history

import (
	"regexp"
	"strings"
)

// UnknownScore marks a rating text without an "N/10" score.
const UnknownScore = "?"

var ratingPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*10\b`)

// ParseRating extracts the first "<number>/10" score and the text that follows it.
func ParseRating(text string) (score, remainder string) {
	text = strings.TrimSpace(text)
	loc := ratingPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return UnknownScore, text
	}
	score = text[loc[2]:loc[3]]
	remainder = strings.Trim(text[loc[1]:], " -–—:.")
	if remainder == "" {
		remainder = strings.Trim(text[:loc[0]], " -–—:.")
	}
	return score, remainder
}
