package usecase

import (
	"fmt"
	"slices"
	"strings"

	"github.com/productadvisor/backend/internal/domain"
)

// Heuristic scoring weights
const (
	tokenMatchPoints    = 20 // per query token found in name/description/category
	categoryMatchBonus  = 30 // once, when any token appears in the category
	brandMatchBonus     = 15 // once, when any token appears in the brand
	maxHeuristicScore   = 95 // 96-100 is left to the remote service
	maxRecommendations  = 5
	heuristicReasonText = "This product matches your search for %q based on its features and category."
)

var (
	heuristicPros = []string{"High-quality construction", "Good value for money", "Positive user reviews"}
	heuristicCons = []string{"May require setup time", "Consider warranty terms"}
)

// HeuristicScorer ranks products by keyword overlap with the query.
// It is a pure function of query and catalog.
type HeuristicScorer struct{}

// NewHeuristicScorer creates a heuristic scorer
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Recommend returns at most five products with a positive score, highest first.
// Ties keep catalog order.
func (s *HeuristicScorer) Recommend(query string, catalog []domain.Product) []domain.Recommendation {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return []domain.Recommendation{}
	}

	reasoning := fmt.Sprintf(heuristicReasonText, query)
	scored := make([]domain.Recommendation, 0, len(catalog))

	for _, product := range catalog {
		score := scoreProduct(tokens, product)
		if score <= 0 {
			continue
		}
		scored = append(scored, domain.Recommendation{
			Product:    product,
			MatchScore: score,
			Reasoning:  reasoning,
			Pros:       slices.Clone(heuristicPros),
			Cons:       slices.Clone(heuristicCons),
		})
	}

	return rankRecommendations(scored)
}

// scoreProduct applies the token, category and brand rules and clamps the total
func scoreProduct(tokens []string, product domain.Product) int {
	blob := strings.ToLower(product.ProductName + " " + product.Description + " " + product.Category)
	category := strings.ToLower(product.Category)
	brand := strings.ToLower(product.Brand)

	score := 0
	categoryHit, brandHit := false, false

	for _, token := range tokens {
		if strings.Contains(blob, token) {
			score += tokenMatchPoints
		}
		if strings.Contains(category, token) {
			categoryHit = true
		}
		if strings.Contains(brand, token) {
			brandHit = true
		}
	}

	if categoryHit {
		score += categoryMatchBonus
	}
	if brandHit {
		score += brandMatchBonus
	}

	return min(score, maxHeuristicScore)
}

// rankRecommendations stable-sorts by score descending and keeps the top five
func rankRecommendations(recs []domain.Recommendation) []domain.Recommendation {
	slices.SortStableFunc(recs, func(a, b domain.Recommendation) int {
		return b.MatchScore - a.MatchScore
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// tokenize splits on whitespace and lower-cases
func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}
