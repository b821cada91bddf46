package domain

import "github.com/shopspring/decimal"

// Product is an immutable catalog entry
type Product struct {
	ID          int             `json:"id"`
	ProductName string          `json:"product_name"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"` // major currency unit (INR)
	Description string          `json:"description"`
}

// Recommendation sources
const (
	SourceAI        = "ai"
	SourceHeuristic = "heuristic"
)

// Recommendation is a scored, explained association between a query and a product
type Recommendation struct {
	Product    Product  `json:"product"`
	MatchScore int      `json:"matchScore"` // 0-100
	Reasoning  string   `json:"reasoning"`
	Pros       []string `json:"pros"`
	Cons       []string `json:"cons"`
}

// RecommendationResult is the ordered output of a ranking run
type RecommendationResult struct {
	Query           string           `json:"query"`
	Source          string           `json:"source"` // "ai" or "heuristic"
	Recommendations []Recommendation `json:"recommendations"`
}

// CategoryAll disables the category filter
const CategoryAll = "All"

// SearchFilters narrows a product list. Nil/empty fields impose no constraint.
type SearchFilters struct {
	Category string           `json:"category,omitempty"`
	MinPrice *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice *decimal.Decimal `json:"maxPrice,omitempty"`
	Brand    string           `json:"brand,omitempty"`
}

// SortKey selects the ordering applied by SortProducts
type SortKey string

const (
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortName      SortKey = "name"
	SortRelevance SortKey = "relevance"
)

// PriceRange is the min/max price over a product list
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// CategoryCount pairs a category with the number of products in it
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
