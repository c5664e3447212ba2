package pairing

import "github.com/localfinds/discovery-engine/internal/domain"

// KeywordPair is a name-level pairing hint: when the source name contains
// SourceKeyword and the target name contains TargetKeyword, the pair gets a
// specific-pairing bonus.
type KeywordPair struct {
	SourceKeyword string
	TargetKeyword string
}

// Config holds the pairing tables: which categories complement each other,
// which name keywords pair especially well, and the human-readable reason
// templates keyed by "sourceCategory-targetCategory".
type Config struct {
	Complementary    map[domain.Category][]domain.Category
	SpecificPairings []KeywordPair
	Reasons          map[string]string
}

// DefaultConfig returns the curated pairing tables.
func DefaultConfig() Config {
	return Config{
		Complementary: map[domain.Category][]domain.Category{
			domain.CategoryFood:          {domain.CategoryEntertainment, domain.CategoryRetail, domain.CategoryServices},
			domain.CategoryRetail:        {domain.CategoryFood, domain.CategoryEntertainment},
			domain.CategoryServices:      {domain.CategoryFood, domain.CategoryRetail},
			domain.CategoryEntertainment: {domain.CategoryFood, domain.CategoryRetail},
			domain.CategoryHealth:        {domain.CategoryFood, domain.CategoryServices},
			domain.CategoryOther:         {domain.CategoryFood},
		},
		SpecificPairings: []KeywordPair{
			{SourceKeyword: "cafe", TargetKeyword: "book"},
			{SourceKeyword: "coffee", TargetKeyword: "book"},
			{SourceKeyword: "coffee", TargetKeyword: "record"},
			{SourceKeyword: "bakery", TargetKeyword: "coffee"},
			{SourceKeyword: "pizza", TargetKeyword: "arcade"},
			{SourceKeyword: "brewery", TargetKeyword: "taco"},
			{SourceKeyword: "wine", TargetKeyword: "cheese"},
			{SourceKeyword: "diner", TargetKeyword: "theater"},
			{SourceKeyword: "ice cream", TargetKeyword: "park"},
			{SourceKeyword: "yoga", TargetKeyword: "juice"},
			{SourceKeyword: "barber", TargetKeyword: "coffee"},
			{SourceKeyword: "gallery", TargetKeyword: "wine"},
		},
		Reasons: map[string]string{
			"food-entertainment":   "Grab a bite before the show",
			"food-retail":          "Browse the shops after you eat",
			"food-services":        "Make a stop on your way out",
			"retail-food":          "Refuel after shopping",
			"retail-entertainment": "Shop first, then make a night of it",
			"services-food":        "Treat yourself afterward",
			"entertainment-food":   "Dinner and a show, in either order",
			"entertainment-retail": "Pick up something to remember it by",
			"health-food":          "Earn your post-workout snack",
		},
	}
}
