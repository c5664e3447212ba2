package pairing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localfinds/discovery-engine/internal/domain"
)

// at places a candidate latOffset degrees north of the anchor point. One
// thousandth of a degree of latitude is roughly 0.069 miles.
func at(id, name string, cat domain.Category, rating float64, latOffset float64) domain.BusinessCandidate {
	lat := 41.9000 + latOffset
	lng := -87.6770
	return domain.BusinessCandidate{
		ID: id, Name: name, Category: cat, Rating: rating,
		Latitude: &lat, Longitude: &lng,
	}
}

func TestFindPairsExcludesSourceAndMissingCoordinates(t *testing.T) {
	e := NewEngine(DefaultConfig())

	source := at("cafe", "Sleepy Owl Cafe", domain.CategoryFood, 4.7, 0)
	pool := []domain.BusinessCandidate{
		source,
		at("books", "Wormhole Books", domain.CategoryRetail, 4.8, 0.003),
		{ID: "nowhere", Name: "Mystery Spot", Category: domain.CategoryRetail, Rating: 5},
	}

	pairs := e.FindPairs(source, pool, DefaultPairOptions())
	require.Len(t, pairs, 1)
	assert.Equal(t, "books", pairs[0].TargetID)
	for _, p := range pairs {
		assert.NotEqual(t, source.ID, p.TargetID, "source must never pair with itself")
	}
}

func TestFindPairsDistanceWindow(t *testing.T) {
	e := NewEngine(DefaultConfig())
	opts := DefaultPairOptions()

	source := at("src", "Anchor Cafe", domain.CategoryFood, 4.5, 0)
	pool := []domain.BusinessCandidate{
		at("too-close", "Same Building Deli", domain.CategoryFood, 4.5, 0.0004), // ~0.03 mi
		at("near", "Corner Gallery", domain.CategoryEntertainment, 4.5, 0.003),  // ~0.21 mi
		at("far", "Edge Tavern", domain.CategoryEntertainment, 4.5, 0.006),      // ~0.41 mi
		at("too-far", "Distant Diner", domain.CategoryFood, 4.5, 0.012),         // ~0.83 mi
	}

	pairs := e.FindPairs(source, pool, opts)
	require.Len(t, pairs, 2)
	for _, p := range pairs {
		assert.GreaterOrEqual(t, p.DistanceMiles, opts.MinDistanceMiles)
		assert.LessOrEqual(t, p.DistanceMiles, opts.MaxDistanceMiles)
	}
}

func TestFindPairsTopFive(t *testing.T) {
	e := NewEngine(DefaultConfig())

	source := at("src", "Anchor Cafe", domain.CategoryFood, 4.5, 0)
	var pool []domain.BusinessCandidate
	for i := 0; i < 8; i++ {
		pool = append(pool, at(
			"t"+strings.Repeat("x", i+1), "Shop", domain.CategoryRetail, 4.0,
			0.002+float64(i)*0.0004,
		))
	}

	pairs := e.FindPairs(source, pool, DefaultPairOptions())
	assert.Len(t, pairs, 5)
}

func TestFindPairsScoring(t *testing.T) {
	e := NewEngine(DefaultConfig())

	source := at("cafe", "Sleepy Owl Cafe", domain.CategoryFood, 4.7, 0)
	complementary := at("show", "Velvet Curtain Theater", domain.CategoryEntertainment, 5.0, 0.003)
	sameCategory := at("diner", "Corner Diner", domain.CategoryFood, 5.0, 0.003)

	pairs := e.FindPairs(source, []domain.BusinessCandidate{complementary, sameCategory}, DefaultPairOptions())
	require.Len(t, pairs, 2)
	assert.Equal(t, "show", pairs[0].TargetID, "complementary category must outrank same category at equal distance")

	// ~0.21 mi: complementary 50 + close 30 + rating capped at 20 = 100.
	assert.InDelta(t, 100, pairs[0].PairingScore, 0.001)
	assert.InDelta(t, 50, pairs[1].PairingScore, 0.001)
}

func TestFindPairsSpecificPairingBonus(t *testing.T) {
	e := NewEngine(DefaultConfig())

	source := at("cafe", "Sleepy Owl Cafe", domain.CategoryFood, 0, 0)
	books := at("books", "Wormhole Book Store", domain.CategoryRetail, 0, 0.003)
	flowers := at("flowers", "Petal & Stem", domain.CategoryRetail, 0, 0.003)

	pairs := e.FindPairs(source, []domain.BusinessCandidate{books, flowers}, DefaultPairOptions())
	require.Len(t, pairs, 2)
	assert.Equal(t, "books", pairs[0].TargetID)
	assert.InDelta(t, 25, pairs[0].PairingScore-pairs[1].PairingScore, 0.001,
		"cafe + book store should carry the specific-pairing bonus")
}

func TestPairReasonTemplateAndFallback(t *testing.T) {
	e := NewEngine(DefaultConfig())

	source := at("cafe", "Anchor Cafe", domain.CategoryFood, 4.0, 0)
	show := at("show", "Velvet Curtain", domain.CategoryEntertainment, 4.0, 0.003)
	clinic := at("clinic", "Wellness Point", domain.CategoryHealth, 4.0, 0.003)

	pairs := e.FindPairs(source, []domain.BusinessCandidate{show, clinic}, DefaultPairOptions())
	require.Len(t, pairs, 2)

	byID := map[string]domain.PairingSuggestion{}
	for _, p := range pairs {
		byID[p.TargetID] = p
	}
	assert.Equal(t, "Grab a bite before the show", byID["show"].Reason)
	// food-health has no template, so the generic walk-time string applies.
	assert.Equal(t, "4 min walk away", byID["clinic"].Reason)
}

func TestFindPairsSourceWithoutLocation(t *testing.T) {
	e := NewEngine(DefaultConfig())

	source := domain.BusinessCandidate{ID: "src", Name: "Nowhere Cafe", Category: domain.CategoryFood}
	pool := []domain.BusinessCandidate{at("a", "Shop", domain.CategoryRetail, 4, 0.003)}

	assert.Empty(t, e.FindPairs(source, pool, DefaultPairOptions()))
}

func TestFindRouteThreeStops(t *testing.T) {
	e := NewEngine(DefaultConfig())

	start := at("start", "Anchor Cafe", domain.CategoryFood, 4.5, 0)
	first := at("first", "Wormhole Books", domain.CategoryRetail, 4.8, 0.004)  // ~0.28 mi
	second := at("second", "Velvet Curtain", domain.CategoryEntertainment, 4.5, 0.008) // ~0.28 mi past first
	pool := []domain.BusinessCandidate{start, first, second}

	routes := e.FindRoute(start, pool, DefaultMaxRouteMiles)
	require.NotEmpty(t, routes)

	best := routes[0]
	require.Len(t, best.Stops, 3)
	assert.Equal(t, "start", best.Stops[0].ID)
	assert.LessOrEqual(t, best.TotalDistanceMiles, DefaultMaxRouteMiles)
	for _, stop := range best.Stops[1:] {
		assert.NotEqual(t, "start", stop.ID, "routes never loop back to the start")
	}
}

func TestFindRouteTwoStopFallback(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// Only one first stop qualifies and nothing is close enough to it to
	// extend the walk inside the budget.
	start := at("start", "Anchor Cafe", domain.CategoryFood, 4.5, 0)
	first := at("first", "Wormhole Books", domain.CategoryRetail, 4.8, 0.004)
	pool := []domain.BusinessCandidate{start, first}

	routes := e.FindRoute(start, pool, DefaultMaxRouteMiles)
	require.Len(t, routes, 1)
	require.Len(t, routes[0].Stops, 2)

	pairs := e.FindPairs(start, pool, DefaultPairOptions())
	require.NotEmpty(t, pairs)
	assert.Equal(t, pairs[0].PairingScore, routes[0].Score,
		"a two-stop route scores exactly its first pairing")
}

func TestFindRouteScoreCombination(t *testing.T) {
	e := NewEngine(DefaultConfig())

	start := at("start", "Anchor Cafe", domain.CategoryFood, 4.5, 0)
	first := at("first", "Wormhole Books", domain.CategoryRetail, 4.8, 0.004)
	second := at("second", "Velvet Curtain", domain.CategoryEntertainment, 4.5, 0.008)
	pool := []domain.BusinessCandidate{start, first, second}

	routes := e.FindRoute(start, pool, DefaultMaxRouteMiles)
	require.NotEmpty(t, routes)

	firstPairs := e.FindPairs(start, pool, DefaultPairOptions())
	secondPairs := e.FindPairs(first, pool, DefaultPairOptions())
	require.NotEmpty(t, firstPairs)
	require.NotEmpty(t, secondPairs)

	var threeStop *domain.Route
	for i := range routes {
		if len(routes[i].Stops) == 3 {
			threeStop = &routes[i]
			break
		}
	}
	require.NotNil(t, threeStop)

	var secondScore float64
	for _, p := range secondPairs {
		if p.TargetID == threeStop.Stops[2].ID {
			secondScore = p.PairingScore
		}
	}
	var firstScore float64
	for _, p := range firstPairs {
		if p.TargetID == threeStop.Stops[1].ID {
			firstScore = p.PairingScore
		}
	}
	assert.InDelta(t, firstScore+secondScore/2, threeStop.Score, 0.001)
}

func TestFindRouteEmptyPool(t *testing.T) {
	e := NewEngine(DefaultConfig())
	start := at("start", "Anchor Cafe", domain.CategoryFood, 4.5, 0)

	assert.Empty(t, e.FindRoute(start, nil, DefaultMaxRouteMiles))
}
