// Package textproc provides the text normalization and query sanitization
// used by the recommendation pipeline.
package textproc

import (
	"regexp"
	"strings"
)

var (
	// nonWord matches anything that is not a word character or whitespace.
	nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	// punct matches ASCII punctuation to be replaced with spaces in queries.
	punct = regexp.MustCompile(`[^\w\s]+`)
)

// Normalize lowercases text, strips punctuation, and removes stop-words.
// The result is the surviving tokens joined by single spaces. Normalize is
// pure and idempotent; empty input yields empty output.
func Normalize(text string) string {
	text = nonWord.ReplaceAllString(strings.ToLower(text), "")

	var kept []string
	for _, word := range strings.Fields(text) {
		if !stopWords[word] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// SanitizeQuery derives a compact search query from an article title.
// Non-ASCII runes are dropped, punctuation becomes spaces, and the first
// three tokens that are neither stop-words nor shorter than three characters
// are joined. If no token survives, the first token of the stripped text is
// returned so a non-blank input always produces a non-empty query.
func SanitizeQuery(text string) string {
	stripped := punct.ReplaceAllString(toASCII(text), " ")

	var kept []string
	for _, word := range strings.Fields(stripped) {
		if len(word) > 2 && !stopWords[strings.ToLower(word)] {
			kept = append(kept, word)
			if len(kept) == 3 {
				break
			}
		}
	}
	if len(kept) > 0 {
		return strings.Join(kept, " ")
	}

	if fields := strings.Fields(stripped); len(fields) > 0 {
		return fields[0]
	}
	// Everything was non-ASCII; fall back to the raw first token.
	if fields := strings.Fields(text); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// toASCII drops every rune outside the ASCII range.
func toASCII(text string) string {
	return strings.Map(func(r rune) rune {
		if r > 127 {
			return -1
		}
		return r
	}, text)
}
