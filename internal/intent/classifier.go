package intent

import "strings"

// Classify resolves free text to an Intent. Normalization is lowercase
// only, no stemming. Evaluation is a strict short-circuit cascade, not a
// best-match ranking: the first matching pattern anywhere in the cascade
// decides the result, so a command phrasing can never be shadowed by a
// question pattern of the same domain. Classify is pure and has no side
// effects.
func Classify(text string) Intent {
	normalized := strings.ToLower(text)
	for _, m := range cascade {
		for _, p := range m.patterns {
			if p.MatchString(normalized) {
				return m.intent
			}
		}
	}
	return Unmatched
}
