package pairing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/localfinds/discovery-engine/internal/domain"
	"github.com/localfinds/discovery-engine/internal/geo"
)

const (
	maxPairs  = 5
	maxRoutes = 3

	complementaryBonus = 50
	closeDistanceBonus = 30
	nearDistanceBonus  = 20
	closeDistanceMiles = 0.3
	nearDistanceMiles  = 0.5
	ratingBonusCap     = 20
	ratingBonusFactor  = 4
	specificPairBonus  = 25
)

// PairOptions bounds the walking distance window for FindPairs.
type PairOptions struct {
	MaxDistanceMiles float64
	MinDistanceMiles float64
}

// DefaultPairOptions is a half-mile ceiling with a small floor that filters
// out same-building duplicates.
func DefaultPairOptions() PairOptions {
	return PairOptions{MaxDistanceMiles: 0.5, MinDistanceMiles: 0.05}
}

// DefaultMaxRouteMiles caps the total walking distance of a suggested route.
const DefaultMaxRouteMiles = 1.0

// Engine scores and ranks nearby candidates for "pair this with that"
// suggestions and short multi-stop walking routes.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

type scoredPair struct {
	target     domain.BusinessCandidate
	suggestion domain.PairingSuggestion
}

// FindPairs returns the top pairing suggestions for source against the pool,
// keeping only members within the distance window. The source itself and any
// member without coordinates are excluded.
func (e *Engine) FindPairs(source domain.BusinessCandidate, pool []domain.BusinessCandidate, opts PairOptions) []domain.PairingSuggestion {
	pairs := e.scorePairs(source, pool, opts)
	out := make([]domain.PairingSuggestion, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.suggestion)
	}
	if len(out) > maxPairs {
		out = out[:maxPairs]
	}
	return out
}

func (e *Engine) scorePairs(source domain.BusinessCandidate, pool []domain.BusinessCandidate, opts PairOptions) []scoredPair {
	if !source.HasLocation() {
		return nil
	}

	var pairs []scoredPair
	for _, member := range pool {
		if member.ID == source.ID || !member.HasLocation() {
			continue
		}
		dist := geo.Miles(*source.Latitude, *source.Longitude, *member.Latitude, *member.Longitude)
		if dist < opts.MinDistanceMiles || dist > opts.MaxDistanceMiles {
			continue
		}

		pairs = append(pairs, scoredPair{
			target: member,
			suggestion: domain.PairingSuggestion{
				SourceID:      source.ID,
				TargetID:      member.ID,
				DistanceMiles: dist,
				PairingScore:  e.scorePair(source, member, dist),
				Reason:        e.reason(source, member, dist),
			},
		})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].suggestion.PairingScore > pairs[j].suggestion.PairingScore
	})
	return pairs
}

func (e *Engine) scorePair(source, member domain.BusinessCandidate, dist float64) float64 {
	score := 0.0

	for _, c := range e.cfg.Complementary[source.Category] {
		if member.Category == c {
			score += complementaryBonus
			break
		}
	}

	switch {
	case dist <= closeDistanceMiles:
		score += closeDistanceBonus
	case dist <= nearDistanceMiles:
		score += nearDistanceBonus
	}

	score += math.Min(member.Rating*ratingBonusFactor, ratingBonusCap)

	sourceName := strings.ToLower(source.Name)
	memberName := strings.ToLower(member.Name)
	for _, kp := range e.cfg.SpecificPairings {
		if strings.Contains(sourceName, kp.SourceKeyword) && strings.Contains(memberName, kp.TargetKeyword) {
			score += specificPairBonus
			break
		}
	}

	return score
}

func (e *Engine) reason(source, member domain.BusinessCandidate, dist float64) string {
	key := string(source.Category) + "-" + string(member.Category)
	if r, ok := e.cfg.Reasons[key]; ok {
		return r
	}
	return fmt.Sprintf("%d min walk away", geo.WalkMinutes(dist))
}

// FindRoute builds short walking routes starting at start: one route per
// first-stop candidate, extended with a second stop when one fits inside
// maxTotalMiles. Returns the top routes by score.
func (e *Engine) FindRoute(start domain.BusinessCandidate, pool []domain.BusinessCandidate, maxTotalMiles float64) []domain.Route {
	if maxTotalMiles <= 0 {
		maxTotalMiles = DefaultMaxRouteMiles
	}

	firstStops := e.scorePairs(start, pool, DefaultPairOptions())
	if len(firstStops) > maxPairs {
		firstStops = firstStops[:maxPairs]
	}

	var routes []domain.Route
	for _, first := range firstStops {
		route := e.extendRoute(start, first, pool, maxTotalMiles)
		routes = append(routes, route)
	}

	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].Score > routes[j].Score
	})
	if len(routes) > maxRoutes {
		routes = routes[:maxRoutes]
	}
	return routes
}

func (e *Engine) extendRoute(start domain.BusinessCandidate, first scoredPair, pool []domain.BusinessCandidate, maxTotalMiles float64) domain.Route {
	firstLeg := first.suggestion.DistanceMiles

	secondStops := e.scorePairs(first.target, pool, DefaultPairOptions())
	if len(secondStops) > maxPairs {
		secondStops = secondStops[:maxPairs]
	}
	for _, second := range secondStops {
		// Never route back to where the walk started.
		if second.target.ID == start.ID {
			continue
		}
		total := firstLeg + second.suggestion.DistanceMiles
		if total > maxTotalMiles {
			continue
		}
		return domain.Route{
			Stops:              []domain.BusinessCandidate{start, first.target, second.target},
			TotalDistanceMiles: total,
			TotalWalkMinutes:   geo.WalkMinutes(total),
			Score:              first.suggestion.PairingScore + second.suggestion.PairingScore/2,
		}
	}

	// No qualifying second stop: keep the two-stop walk.
	return domain.Route{
		Stops:              []domain.BusinessCandidate{start, first.target},
		TotalDistanceMiles: firstLeg,
		TotalWalkMinutes:   geo.WalkMinutes(firstLeg),
		Score:              first.suggestion.PairingScore,
	}
}
