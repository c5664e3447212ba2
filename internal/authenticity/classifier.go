package authenticity

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/localfinds/discovery-engine/internal/domain"
)

// parallelThreshold is the pool size above which FilterAndRank fans scoring
// out across goroutines. Scoring is per-candidate independent, so only the
// final sort needs the fan-in.
const parallelThreshold = 64

const parallelWorkers = 4

// Classifier scores candidates for "localness": how likely a venue is a
// small independent business rather than a chain outlet.
type Classifier struct {
	cfg     Config
	matcher Matcher
}

func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg, matcher: SubstringMatcher{}}
}

// NewClassifierWithMatcher allows swapping the containment strategy.
func NewClassifierWithMatcher(cfg Config, m Matcher) *Classifier {
	return &Classifier{cfg: cfg, matcher: m}
}

// Classify computes the authenticity score for a single candidate. It never
// fails for a well-formed candidate; a missing description or rating simply
// biases the size score downward.
func (c *Classifier) Classify(cand domain.BusinessCandidate) domain.AuthenticityScore {
	// Provider-taxonomy hard filter: some venue types are never local finds.
	if c.hasAnyType(cand.ProviderTypes, c.cfg.ExcludedTypes) {
		return domain.AuthenticityScore{Confidence: domain.ConfidenceLow}
	}

	name := strings.ToLower(cand.Name)
	desc := strings.ToLower(cand.Description)
	combined := name + " " + desc

	chain := c.chainScore(name, desc, strings.ToLower(cand.Address), cand.ProviderTypes)
	size, hardReject := c.sizeScore(cand.ReviewCount, cand.Description)
	locality := c.localityScore(combined)

	overall := math.Round(chain*c.cfg.ChainWeight + size*c.cfg.SizeWeight + locality*c.cfg.LocalityWeight)

	isLocal := !hardReject && overall >= c.cfg.LocalThreshold && chain >= c.cfg.ChainFloor

	confidence := domain.ConfidenceLow
	if isLocal {
		confidence = domain.ConfidenceMedium
		if overall >= c.cfg.HighOverall && chain >= c.cfg.HighChain {
			confidence = domain.ConfidenceHigh
		}
	}

	return domain.AuthenticityScore{
		ChainScore:    chain,
		SizeScore:     size,
		LocalityScore: locality,
		OverallScore:  overall,
		IsLocal:       isLocal,
		Confidence:    confidence,
	}
}

// FilterAndRank classifies the pool, keeps only local candidates and returns
// them sorted by overall score descending, ties broken by name ascending.
func (c *Classifier) FilterAndRank(candidates []domain.BusinessCandidate) []domain.LocalResult {
	scores := c.classifyAll(candidates)

	type ranked struct {
		res  domain.LocalResult
		name string
	}
	var out []ranked
	for i, cand := range candidates {
		if !scores[i].IsLocal {
			continue
		}
		out = append(out, ranked{
			res:  domain.LocalResult{ID: cand.ID, Authenticity: scores[i]},
			name: cand.Name,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].res.Authenticity.OverallScore != out[j].res.Authenticity.OverallScore {
			return out[i].res.Authenticity.OverallScore > out[j].res.Authenticity.OverallScore
		}
		return out[i].name < out[j].name
	})

	results := make([]domain.LocalResult, len(out))
	for i, r := range out {
		results[i] = r.res
	}
	return results
}

func (c *Classifier) classifyAll(candidates []domain.BusinessCandidate) []domain.AuthenticityScore {
	scores := make([]domain.AuthenticityScore, len(candidates))
	if len(candidates) < parallelThreshold {
		for i, cand := range candidates {
			scores[i] = c.Classify(cand)
		}
		return scores
	}

	var wg sync.WaitGroup
	chunk := (len(candidates) + parallelWorkers - 1) / parallelWorkers
	for start := 0; start < len(candidates); start += chunk {
		end := start + chunk
		if end > len(candidates) {
			end = len(candidates)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				scores[i] = c.Classify(candidates[i])
			}
		}(start, end)
	}
	wg.Wait()
	return scores
}

// chainScore starts at 100 and drops toward 0 as chain signals accumulate.
// Higher means less likely a chain.
func (c *Classifier) chainScore(name, desc, address string, providerTypes []string) float64 {
	score := 100.0

	// First matching chain name wins; no double penalty for brands that
	// appear under several aliases.
	for _, brand := range c.cfg.KnownChains {
		if c.matcher.Contains(name, brand) {
			score -= c.cfg.ChainNamePenalty
			break
		}
	}

	for _, indicator := range c.cfg.ChainIndicators {
		if c.matcher.Contains(desc, indicator) {
			score -= c.cfg.ChainIndicatorPenalty
		}
	}

	for _, indicator := range c.cfg.LocalIndicators {
		if c.matcher.Contains(name, indicator) || c.matcher.Contains(desc, indicator) {
			score += c.cfg.LocalIndicatorBonus
		}
	}

	if address != "" && !c.containsAny(address, c.cfg.AddressUnitTokens) {
		score += c.cfg.PlainAddressBonus
	}

	if c.hasAnyType(providerTypes, c.cfg.PreferredTypes) {
		score += c.cfg.PreferredTypeBonus
	}

	return clamp(score, 0, 100)
}

// sizeScore estimates how small the operation is from review volume and
// description length. The second return value flags the hard-reject path:
// review counts above the configured ceiling are a strong corporate signal
// and force isLocal=false regardless of the other scores.
func (c *Classifier) sizeScore(reviewCount int, description string) (float64, bool) {
	score := 100.0
	hardReject := reviewCount > c.cfg.HardRejectReviews

	for _, tier := range c.cfg.ReviewTiers {
		if reviewCount > tier.MinReviews {
			score -= tier.Penalty
			break
		}
	}
	if reviewCount < c.cfg.FewReviewsMax {
		score += c.cfg.FewReviewsBonus
	}

	// A long description usually means an owner wrote the story; a very
	// short one reads like corporate boilerplate.
	switch {
	case len(description) > c.cfg.LongDescriptionChars:
		score += c.cfg.LongDescriptionBonus
	case len(description) < c.cfg.ShortDescriptionChars:
		score -= c.cfg.ShortDescriptionPenalty
	}

	return clamp(score, 0, 100), hardReject
}

// localityScore starts neutral at 50 and rises with neighborhood and
// community-language signals in the combined name+description text.
func (c *Classifier) localityScore(combined string) float64 {
	score := 50.0

	for _, hood := range c.cfg.Neighborhoods {
		if c.matcher.Contains(combined, hood) {
			score += c.cfg.NeighborhoodBonus
			break
		}
	}

	for _, term := range c.cfg.CommunityTerms {
		if c.matcher.Contains(combined, term) {
			score += c.cfg.CommunityTermBonus
		}
	}

	return clamp(score, 0, 100)
}

func (c *Classifier) containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if c.matcher.Contains(text, t) {
			return true
		}
	}
	return false
}

func (c *Classifier) hasAnyType(providerTypes, wanted []string) bool {
	for _, pt := range providerTypes {
		pt = strings.ToLower(strings.TrimSpace(pt))
		for _, w := range wanted {
			if pt == w {
				return true
			}
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
