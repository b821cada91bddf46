package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-json"
	"github.com/productadvisor/backend/internal/domain"
)

// remoteRecommendation is one element of the JSON array the model is asked for
type remoteRecommendation struct {
	ProductID  int      `json:"productId"`
	MatchScore float64  `json:"matchScore"`
	Reasoning  string   `json:"reasoning"`
	Pros       []string `json:"pros"`
	Cons       []string `json:"cons"`
}

// JSONArrayParser implements domain.ResponseParser.
// It accepts the first JSON array of recommendation objects found in the text;
// prose before or after the array is ignored.
type JSONArrayParser struct{}

// NewJSONArrayParser creates a parser
func NewJSONArrayParser() *JSONArrayParser {
	return &JSONArrayParser{}
}

// Parse extracts recommendations and resolves them against catalog.
// Unknown product ids are dropped, as are repeats of an id already seen.
func (p *JSONArrayParser) Parse(raw string, catalog []domain.Product) ([]domain.Recommendation, error) {
	items, err := extractRecommendationArray(raw)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]domain.Product, len(catalog))
	for _, product := range catalog {
		byID[product.ID] = product
	}

	seen := make(map[int]bool, len(items))
	recs := make([]domain.Recommendation, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok || seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true

		recs = append(recs, domain.Recommendation{
			Product:    product,
			MatchScore: clampScore(item.MatchScore),
			Reasoning:  strings.TrimSpace(item.Reasoning),
			Pros:       nonNil(item.Pros),
			Cons:       nonNil(item.Cons),
		})
	}

	return recs, nil
}

// extractRecommendationArray tries each '[' in order and returns the first
// position that decodes as an array of recommendation objects
func extractRecommendationArray(raw string) ([]remoteRecommendation, error) {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '[' {
			continue
		}

		dec := json.NewDecoder(strings.NewReader(raw[i:]))
		var items []remoteRecommendation
		if err := dec.Decode(&items); err != nil {
			continue
		}
		return items, nil
	}
	return nil, fmt.Errorf("%w: no JSON array of recommendations in response", domain.ErrParseError)
}

func clampScore(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, score))))
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
