package catalog

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/guelo0987/gigante-storefront/models"
)

const (
	// MinQueryLength is the shortest query, in characters, that is ranked.
	MinQueryLength = 2

	// MaxSearchResults caps the type-ahead result list.
	MaxSearchResults = 5
)

// Relevance weights.
const (
	scoreName     = 10
	scoreBrand    = 5
	scoreCategory = 3
	scoreCeramics = 2
)

// RankedProduct is a search match with its relevance score.
type RankedProduct struct {
	models.Product
	Relevance int `json:"relevance"`
}

// QueryTooShort reports whether query is below the ranking threshold.
func QueryTooShort(query string) bool {
	return utf8.RuneCountInString(query) < MinQueryLength
}

// RankSearch returns up to MaxSearchResults products matching query, best
// first. Products with equal relevance keep their input order.
//
// A product matches when the query is a case-insensitive substring of its
// name, category, brand, description, measure or code. The score only
// depends on name, brand and category, so a product matched through its
// description alone can score zero and still be listed.
func RankSearch(products []models.Product, query string) []RankedProduct {
	ranked := make([]RankedProduct, 0)
	if QueryTooShort(query) {
		return ranked
	}

	q := strings.ToLower(query)
	for _, p := range products {
		if !matchesQuery(p, q) {
			continue
		}
		ranked = append(ranked, RankedProduct{Product: p, Relevance: relevance(p, q)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Relevance > ranked[j].Relevance
	})

	if len(ranked) > MaxSearchResults {
		ranked = ranked[:MaxSearchResults]
	}
	return ranked
}

func matchesQuery(p models.Product, q string) bool {
	return containsFold(p.Name, q) ||
		containsFold(p.CategoryName(), q) ||
		containsFold(p.Brand, q) ||
		containsFold(p.Description, q) ||
		containsFold(p.Measure, q) ||
		containsFold(string(p.Code), q)
}

func relevance(p models.Product, q string) int {
	score := 0
	if containsFold(p.Name, q) {
		score += scoreName
	}
	if containsFold(p.Brand, q) {
		score += scoreBrand
	}
	if containsFold(p.CategoryName(), q) {
		score += scoreCategory
	}
	if p.CategoryName() == CeramicsCategory {
		score += scoreCeramics
	}
	return score
}
