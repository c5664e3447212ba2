package search

import (
	"strings"

	"github.com/localfinds/discovery-engine/internal/domain"
)

// Rank filters and orders candidates by relevance to an expansion.
//
// The strict pass matches the provider-capped term list against each
// candidate's text and orders original-term matches ahead of synonym-only
// matches. When the strict pass finds nothing, a fallback pass re-matches
// against the full uncapped expansion with no tier distinction, trading
// precision for recall. A whitespace-only query means "no filter requested"
// and returns the pool unchanged.
func Rank(candidates []domain.BusinessCandidate, expansion domain.QueryExpansion) []domain.BusinessCandidate {
	if strings.TrimSpace(expansion.Original) == "" {
		return candidates
	}

	var originalMatches, synonymMatches []domain.BusinessCandidate
	for _, cand := range candidates {
		blob := candidateBlob(cand)
		switch matchTier(blob, expansion.Corrected, expansion.ProviderQueries) {
		case tierOriginal:
			originalMatches = append(originalMatches, cand)
		case tierSynonym:
			synonymMatches = append(synonymMatches, cand)
		}
	}

	if len(originalMatches)+len(synonymMatches) > 0 {
		return append(originalMatches, synonymMatches...)
	}

	// Widened fallback over every expanded term.
	var fallback []domain.BusinessCandidate
	for _, cand := range candidates {
		blob := candidateBlob(cand)
		for _, term := range expansion.ExpandedTerms {
			if term != "" && strings.Contains(blob, term) {
				fallback = append(fallback, cand)
				break
			}
		}
	}
	return fallback
}

type tier int

const (
	tierNone tier = iota
	tierSynonym
	tierOriginal
)

func matchTier(blob, original string, terms []string) tier {
	if original != "" && strings.Contains(blob, original) {
		return tierOriginal
	}
	for _, term := range terms {
		if term != "" && strings.Contains(blob, term) {
			return tierSynonym
		}
	}
	return tierNone
}

func candidateBlob(cand domain.BusinessCandidate) string {
	return strings.ToLower(cand.Name + " " + cand.Description + " " + string(cand.Category))
}
