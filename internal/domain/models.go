package domain

import "strings"

// Category is the fixed venue taxonomy used by the discovery engine.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryRetail        Category = "retail"
	CategoryServices      Category = "services"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryOther         Category = "other"
)

// ParseCategory maps free-form input to a Category; unknown values become other.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryFood, CategoryRetail, CategoryServices, CategoryEntertainment, CategoryHealth:
		return c
	default:
		return CategoryOther
	}
}

// BusinessCandidate is a normalized venue record produced by the place-search
// collaborator. The engine never mutates it, only derives scores from it.
type BusinessCandidate struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Description   string   `json:"description,omitempty"`
	Address       string   `json:"address,omitempty"`
	ProviderTypes []string `json:"provider_types,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// HasLocation reports whether both coordinates are present.
func (c BusinessCandidate) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Confidence buckets how certain the classifier is about a verdict.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// AuthenticityScore is the per-candidate output of the classifier.
// OverallScore is the weighted composite of the three sub-scores.
type AuthenticityScore struct {
	ChainScore    float64    `json:"chain_score"`
	SizeScore     float64    `json:"size_score"`
	LocalityScore float64    `json:"locality_score"`
	OverallScore  float64    `json:"overall_score"`
	IsLocal       bool       `json:"is_local"`
	Confidence    Confidence `json:"confidence"`
}

// LocalResult pairs a candidate id with its authenticity score; this is the
// classifier's output contract toward the application layer.
type LocalResult struct {
	ID           string            `json:"id"`
	Authenticity AuthenticityScore `json:"authenticity"`
}

// QueryExpansion is the expander's derivation of one search string.
type QueryExpansion struct {
	Original        string   `json:"original"`
	Corrected       string   `json:"corrected"`
	ExpandedTerms   []string `json:"expanded_terms"`
	ProviderQueries []string `json:"provider_queries"`
}

// PairingSuggestion relates two candidates that pair well on foot.
type PairingSuggestion struct {
	SourceID      string  `json:"source_id"`
	TargetID      string  `json:"target_id"`
	DistanceMiles float64 `json:"distance_miles"`
	PairingScore  float64 `json:"pairing_score"`
	Reason        string  `json:"reason"`
}

// Route is an ordered walking route of 2-3 stops.
type Route struct {
	Stops              []BusinessCandidate `json:"stops"`
	TotalDistanceMiles float64             `json:"total_distance_miles"`
	TotalWalkMinutes   int                 `json:"total_walk_minutes"`
	Score              float64             `json:"score"`
}
