package authenticity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ReviewTier penalizes candidates whose review count exceeds MinReviews.
// Tiers are checked in order and only the first matching tier applies.
type ReviewTier struct {
	MinReviews int     `yaml:"min_reviews"`
	Penalty    float64 `yaml:"penalty"`
}

// Config holds every word list, bonus, penalty and threshold used by the
// scorer. All lists are matched case-insensitively. Two presets exist:
// DefaultConfig (canonical) and LegacyConfig (the older tuning, kept so
// historical results stay reproducible).
type Config struct {
	KnownChains     []string `yaml:"known_chains"`
	ChainIndicators []string `yaml:"chain_indicators"`
	LocalIndicators []string `yaml:"local_indicators"`
	Neighborhoods   []string `yaml:"neighborhoods"`
	CommunityTerms  []string `yaml:"community_terms"`
	ExcludedTypes   []string `yaml:"excluded_types"`
	PreferredTypes  []string `yaml:"preferred_types"`

	// Address tokens that suggest a unit inside a larger building.
	AddressUnitTokens []string `yaml:"address_unit_tokens"`

	ChainNamePenalty      float64 `yaml:"chain_name_penalty"`
	ChainIndicatorPenalty float64 `yaml:"chain_indicator_penalty"`
	LocalIndicatorBonus   float64 `yaml:"local_indicator_bonus"`
	PlainAddressBonus     float64 `yaml:"plain_address_bonus"`
	PreferredTypeBonus    float64 `yaml:"preferred_type_bonus"`
	NeighborhoodBonus     float64 `yaml:"neighborhood_bonus"`
	CommunityTermBonus    float64 `yaml:"community_term_bonus"`

	ReviewTiers       []ReviewTier `yaml:"review_tiers"`
	HardRejectReviews int          `yaml:"hard_reject_reviews"`
	FewReviewsMax     int          `yaml:"few_reviews_max"`
	FewReviewsBonus   float64      `yaml:"few_reviews_bonus"`

	LongDescriptionChars    int     `yaml:"long_description_chars"`
	LongDescriptionBonus    float64 `yaml:"long_description_bonus"`
	ShortDescriptionChars   int     `yaml:"short_description_chars"`
	ShortDescriptionPenalty float64 `yaml:"short_description_penalty"`

	ChainWeight    float64 `yaml:"chain_weight"`
	SizeWeight     float64 `yaml:"size_weight"`
	LocalityWeight float64 `yaml:"locality_weight"`

	LocalThreshold float64 `yaml:"local_threshold"`
	ChainFloor     float64 `yaml:"chain_floor"`
	HighOverall    float64 `yaml:"high_overall"`
	HighChain      float64 `yaml:"high_chain"`
}

// DefaultConfig returns the canonical scorer tuning.
func DefaultConfig() Config {
	return Config{
		KnownChains: []string{
			"mcdonald", "burger king", "wendy's", "subway", "kfc", "taco bell",
			"chipotle", "panera", "chick-fil-a", "popeyes", "domino", "pizza hut",
			"papa john", "little caesars", "dunkin", "starbucks", "dairy queen",
			"five guys", "jimmy john", "panda express", "applebee", "chili's",
			"olive garden", "red lobster", "outback", "ihop", "denny's",
			"cheesecake factory", "buffalo wild wings",
			"hilton", "marriott", "hyatt", "sheraton", "holiday inn", "hampton inn",
			"best western", "courtyard", "doubletree", "embassy suites", "westin",
			"ramada", "days inn", "super 8", "motel 6", "la quinta", "comfort inn",
			"walmart", "target", "costco", "home depot", "lowe's", "best buy",
			"walgreens", "cvs", "rite aid", "7-eleven", "kroger", "safeway",
			"whole foods", "trader joe", "aldi", "dollar general", "dollar tree",
			"macy's", "nordstrom", "kohl's", "tj maxx", "marshalls", "ross",
			"gamestop", "petsmart", "petco", "staples", "office depot",
			"chase", "bank of america", "wells fargo", "citibank", "us bank",
			"pnc bank", "td bank", "fifth third",
			"planet fitness", "la fitness", "anytime fitness", "gold's gym",
			"orangetheory", "crunch fitness",
			"supercuts", "great clips", "sport clips", "massage envy",
			"jiffy lube", "midas", "autozone", "o'reilly", "advance auto",
			"enterprise rent", "hertz", "h&r block", "ups store", "fedex office",
		},
		ChainIndicators: []string{
			"franchise", "franchisee", "corporation", "corporate", "nationwide",
			"locations nationwide", "our locations", "incorporated", "llc national",
			"chain of", "across the country", "over 100 locations",
		},
		LocalIndicators: []string{
			"family", "family-owned", "family owned", "local", "locally owned",
			"independent", "artisan", "artisanal", "handmade", "homemade",
			"handcrafted", "small batch", "since 19", "owner", "mom and pop",
			"neighborhood", "community", "'s ",
		},
		Neighborhoods: []string{
			"wicker park", "logan square", "lincoln park", "lakeview", "pilsen",
			"hyde park", "andersonville", "bucktown", "ukrainian village",
			"west loop", "river north", "old town", "bridgeport", "avondale",
			"humboldt park", "rogers park", "edgewater", "uptown", "ravenswood",
			"little italy", "chinatown", "south loop", "gold coast",
		},
		CommunityTerms: []string{
			"neighborhood", "chicago-based", "chicago based", "small batch",
			"community", "locally sourced", "farm to table", "farm-to-table",
			"family recipe", "generations", "hometown",
		},
		ExcludedTypes: []string{
			"lodging", "gas_station", "bank", "atm", "pharmacy", "car_dealer",
			"car_rental", "insurance_agency", "real_estate_agency", "storage",
			"parking", "hospital", "airport", "transit_station",
		},
		PreferredTypes: []string{
			"bakery", "cafe", "book_store", "art_gallery", "florist",
			"bicycle_store", "clothing_store", "jewelry_store", "record_store",
			"pet_store", "hair_care", "spa",
		},
		AddressUnitTokens: []string{"suite", "ste ", "floor", "unit", "#"},

		ChainNamePenalty:      80,
		ChainIndicatorPenalty: 30,
		LocalIndicatorBonus:   15,
		PlainAddressBonus:     5,
		PreferredTypeBonus:    15,
		NeighborhoodBonus:     20,
		CommunityTermBonus:    15,

		ReviewTiers: []ReviewTier{
			{MinReviews: 100, Penalty: 40},
			{MinReviews: 50, Penalty: 20},
			{MinReviews: 20, Penalty: 10},
		},
		HardRejectReviews: 1000,
		FewReviewsMax:     5,
		FewReviewsBonus:   10,

		LongDescriptionChars:    150,
		LongDescriptionBonus:    10,
		ShortDescriptionChars:   50,
		ShortDescriptionPenalty: 20,

		ChainWeight:    0.5,
		SizeWeight:     0.3,
		LocalityWeight: 0.2,

		LocalThreshold: 75,
		ChainFloor:     70,
		HighOverall:    85,
		HighChain:      90,
	}
}

// LegacyConfig reproduces the older scorer variant: a larger local-indicator
// bonus and tighter review cutoffs. Kept only for reproducing historical
// classifications; new callers should use DefaultConfig.
func LegacyConfig() Config {
	cfg := DefaultConfig()
	cfg.LocalIndicatorBonus = 20
	cfg.HardRejectReviews = 500
	cfg.ReviewTiers = []ReviewTier{
		{MinReviews: 150, Penalty: 45},
		{MinReviews: 75, Penalty: 25},
		{MinReviews: 25, Penalty: 10},
	}
	return cfg
}

// LoadConfigFromFile loads a scorer config from YAML, falling back to the
// default preset values for anything the file leaves unset.
func LoadConfigFromFile(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scoring config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal scoring config: %w", err)
	}
	return cfg, nil
}
