package authenticity

import "strings"

// Matcher decides whether a term occurs in a text blob. Both arguments are
// expected to be lowercased by the caller.
//
// The default implementation is raw substring containment, which matches the
// historical behavior ("inn" can hit inside an unrelated word). Keeping it
// behind an interface lets a word-boundary-aware matcher replace it without
// touching the scoring code.
type Matcher interface {
	Contains(text, term string) bool
}

// SubstringMatcher is the default containment check.
type SubstringMatcher struct{}

func (SubstringMatcher) Contains(text, term string) bool {
	if term == "" {
		return false
	}
	return strings.Contains(text, term)
}
