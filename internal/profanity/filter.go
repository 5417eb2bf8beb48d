// Package profanity implements the static banned-word filter applied to
// user-submitted text before it is stored.
package profanity

import "strings"

// Filter scans text for banned substrings. Matching is case-insensitive
// and not word-boundary-aware: any occurrence anywhere flags the text.
type Filter struct {
	tokens []string
}

// New builds a Filter from the configured word list. Words are lowered
// and trimmed; empty entries are dropped. An empty list disables the
// filter entirely.
func New(words []string) *Filter {
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		tokens = append(tokens, w)
	}
	return &Filter{tokens: tokens}
}

// ContainsBanned reports whether text contains any banned token.
func (f *Filter) ContainsBanned(text string) bool {
	if len(f.tokens) == 0 {
		return false
	}
	lowered := strings.ToLower(text)
	for _, tok := range f.tokens {
		if strings.Contains(lowered, tok) {
			return true
		}
	}
	return false
}
