// Package dedup decides whether a candidate claim duplicates an existing one
// for the same creator. Purely a predicate over text.
package dedup

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// overlapThreshold is the token-overlap ratio above which two claims are
// considered duplicates.
const overlapThreshold = 0.6

// IsDuplicate reports whether candidateText overlaps any of the creator's
// existing claim texts by more than the threshold. Callers must pass only
// claims belonging to the same creator; the check is never applied across
// creators.
//
// Claims that tokenize to an empty set (very short claims) are never flagged
// as duplicates, so near-duplicate short claims can slip through. Preserved
// deliberately; see the dedup tests.
func IsDuplicate(candidateText string, existingTexts []string) bool {
	candidate := tokenize(candidateText)
	if len(candidate) == 0 {
		return false
	}

	for _, text := range existingTexts {
		existing := tokenize(text)
		if len(existing) == 0 {
			continue
		}
		if overlap(candidate, existing) > overlapThreshold {
			return true
		}
	}
	return false
}

// tokenize lowercases the text and returns the set of alphanumeric words
// longer than two characters.
func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		// Length is counted in runes so multi-byte two-letter words are
		// filtered like ASCII ones.
		if utf8.RuneCountInString(f) > 2 {
			tokens[f] = struct{}{}
		}
	}
	return tokens
}

// overlap returns |a ∩ b| / max(|a|, |b|). Symmetric in its arguments.
func overlap(a, b map[string]struct{}) float64 {
	shared := 0
	for t := range a {
		if _, ok := b[t]; ok {
			shared++
		}
	}

	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	return float64(shared) / float64(larger)
}
