package search

import (
	"strings"

	"github.com/localfinds/discovery-engine/internal/domain"
)

// defaultProviderQueryCap bounds how many query strings we hand to the
// external search provider per user query.
const defaultProviderQueryCap = 4

// Expander normalizes a free-text query, fixes common misspellings and widens
// it into related terms. Both tables are injectable so tests can run against
// small synthetic vocabularies.
type Expander struct {
	corrections      map[string]string
	synonyms         map[string][]string
	providerQueryCap int
}

// NewExpander builds an expander with the curated correction and synonym
// tables.
func NewExpander() *Expander {
	return &Expander{
		corrections:      defaultCorrections(),
		synonyms:         defaultSynonyms(),
		providerQueryCap: defaultProviderQueryCap,
	}
}

// NewExpanderWithTables builds an expander over caller-supplied tables.
// A cap <= 0 falls back to the default.
func NewExpanderWithTables(corrections map[string]string, synonyms map[string][]string, queryCap int) *Expander {
	if queryCap <= 0 {
		queryCap = defaultProviderQueryCap
	}
	return &Expander{corrections: corrections, synonyms: synonyms, providerQueryCap: queryCap}
}

// Expand derives the expansion for one query. An unknown query degrades to a
// literal single-term expansion; Expand never fails.
func (e *Expander) Expand(query string) domain.QueryExpansion {
	original := strings.ToLower(strings.TrimSpace(query))

	corrected := original
	if fixed, ok := e.corrections[original]; ok {
		corrected = fixed
	}

	terms := []string{corrected}
	seen := map[string]bool{corrected: true}

	appendTerms := func(related []string) {
		for _, t := range related {
			if !seen[t] {
				seen[t] = true
				terms = append(terms, t)
			}
		}
	}

	// Whole-query lookup first, then each individual word.
	if related, ok := e.synonyms[corrected]; ok {
		appendTerms(related)
	}
	for _, word := range strings.Fields(corrected) {
		if word == corrected {
			continue
		}
		if related, ok := e.synonyms[word]; ok {
			appendTerms(related)
		}
	}

	providerQueries := terms
	if len(providerQueries) > e.providerQueryCap {
		providerQueries = providerQueries[:e.providerQueryCap]
	}

	return domain.QueryExpansion{
		Original:        original,
		Corrected:       corrected,
		ExpandedTerms:   terms,
		ProviderQueries: append([]string(nil), providerQueries...),
	}
}

func defaultCorrections() map[string]string {
	return map[string]string{
		"restarant":   "restaurant",
		"resturant":   "restaurant",
		"restaraunt":  "restaurant",
		"cofee":       "coffee",
		"coffe":       "coffee",
		"expresso":    "espresso",
		"piza":        "pizza",
		"pizzza":      "pizza",
		"sandwhich":   "sandwich",
		"sandwech":    "sandwich",
		"bakry":       "bakery",
		"bakerry":     "bakery",
		"brewry":      "brewery",
		"buthcer":     "butcher",
		"florest":     "florist",
		"jewlery":     "jewelry",
		"jewellry":    "jewelry",
		"barbershop":  "barber shop",
		"thrift shop": "thrift store",
		"book shop":   "book store",
	}
}

func defaultSynonyms() map[string][]string {
	return map[string][]string{
		"pizza":      {"pizza", "italian restaurant", "pizzeria"},
		"coffee":     {"coffee", "cafe", "espresso bar", "coffee shop"},
		"espresso":   {"espresso", "coffee", "cafe"},
		"breakfast":  {"breakfast", "brunch", "diner", "cafe"},
		"brunch":     {"brunch", "breakfast", "cafe"},
		"tacos":      {"tacos", "mexican restaurant", "taqueria"},
		"mexican":    {"mexican restaurant", "taqueria", "tacos"},
		"sushi":      {"sushi", "japanese restaurant", "sushi bar"},
		"ramen":      {"ramen", "japanese restaurant", "noodle shop"},
		"burger":     {"burger", "burger joint", "american restaurant"},
		"sandwich":   {"sandwich", "deli", "sandwich shop"},
		"bbq":        {"bbq", "barbecue", "smokehouse"},
		"vegan":      {"vegan", "vegetarian restaurant", "plant-based"},
		"bakery":     {"bakery", "patisserie", "bread", "pastry shop"},
		"dessert":    {"dessert", "bakery", "ice cream", "sweet shop"},
		"ice cream":  {"ice cream", "gelato", "frozen yogurt"},
		"beer":       {"beer", "brewery", "taproom", "craft beer"},
		"brewery":    {"brewery", "taproom", "craft beer"},
		"wine":       {"wine", "wine bar", "wine shop"},
		"cocktails":  {"cocktails", "cocktail bar", "lounge"},
		"bar":        {"bar", "pub", "tavern"},
		"books":      {"books", "book store", "bookshop"},
		"book store": {"book store", "bookshop", "used books"},
		"records":    {"records", "record store", "vinyl"},
		"vintage":    {"vintage", "thrift store", "antique shop", "consignment"},
		"thrift":     {"thrift store", "vintage", "secondhand"},
		"flowers":    {"flowers", "florist", "flower shop"},
		"plants":     {"plants", "plant shop", "garden center", "nursery"},
		"gifts":      {"gifts", "gift shop", "boutique"},
		"boutique":   {"boutique", "clothing store", "gift shop"},
		"jewelry":    {"jewelry", "jewelry store", "jeweler"},
		"art":        {"art", "art gallery", "studio"},
		"music":      {"music", "record store", "music venue", "live music"},
		"yoga":       {"yoga", "yoga studio", "pilates"},
		"gym":        {"gym", "fitness studio", "training"},
		"massage":    {"massage", "spa", "wellness"},
		"haircut":    {"haircut", "barber shop", "hair salon"},
		"barber":     {"barber shop", "haircut", "hair salon"},
		"salon":      {"salon", "hair salon", "nail salon"},
		"nails":      {"nails", "nail salon", "manicure"},
		"pet":        {"pet", "pet store", "pet grooming"},
		"tattoo":     {"tattoo", "tattoo studio", "piercing"},
		"tailor":     {"tailor", "alterations", "seamstress"},
		"shoes":      {"shoes", "shoe store", "cobbler"},
		"cheese":     {"cheese", "cheese shop", "deli"},
		"butcher":    {"butcher", "butcher shop", "meat market"},
		"tea":        {"tea", "tea house", "tea shop"},
		"juice":      {"juice", "juice bar", "smoothies"},
		"donuts":     {"donuts", "doughnuts", "bakery"},
	}
}
