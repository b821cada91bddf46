package usecase

import (
	"fmt"
	"slices"
	"strings"

	"github.com/productadvisor/backend/internal/domain"
)

// FilterProducts keeps products matching every set field of filters
func FilterProducts(products []domain.Product, filters domain.SearchFilters) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if filters.Category != "" && filters.Category != domain.CategoryAll && p.Category != filters.Category {
			continue
		}
		if filters.MinPrice != nil && p.Price.LessThan(*filters.MinPrice) {
			continue
		}
		if filters.MaxPrice != nil && p.Price.GreaterThan(*filters.MaxPrice) {
			continue
		}
		if filters.Brand != "" && !strings.EqualFold(p.Brand, filters.Brand) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SearchProducts keeps products where any query token occurs in name, description, brand or category.
// A blank query returns products unchanged.
func SearchProducts(products []domain.Product, query string) []domain.Product {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return products
	}

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		text := strings.ToLower(strings.Join([]string{p.ProductName, p.Description, p.Brand, p.Category}, " "))
		for _, token := range tokens {
			if strings.Contains(text, token) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// ParseSortKey validates a sort key; empty means relevance
func ParseSortKey(s string) (domain.SortKey, error) {
	switch key := domain.SortKey(s); key {
	case "":
		return domain.SortRelevance, nil
	case domain.SortPriceAsc, domain.SortPriceDesc, domain.SortName, domain.SortRelevance:
		return key, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidSortKey, s)
	}
}

// SortProducts returns a sorted copy. Relevance keeps the incoming order.
func SortProducts(products []domain.Product, key domain.SortKey) ([]domain.Product, error) {
	sorted := slices.Clone(products)

	switch key {
	case domain.SortPriceAsc:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int { return a.Price.Cmp(b.Price) })
	case domain.SortPriceDesc:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int { return b.Price.Cmp(a.Price) })
	case domain.SortName:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int { return strings.Compare(a.ProductName, b.ProductName) })
	case domain.SortRelevance, "":
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSortKey, key)
	}

	return sorted, nil
}

// UniqueCategories returns the distinct categories, sorted
func UniqueCategories(products []domain.Product) []string {
	return uniqueSorted(products, func(p domain.Product) string { return p.Category })
}

// UniqueBrands returns the distinct brands, sorted
func UniqueBrands(products []domain.Product) []string {
	return uniqueSorted(products, func(p domain.Product) string { return p.Brand })
}

func uniqueSorted(products []domain.Product, field func(domain.Product) string) []string {
	seen := make(map[string]bool, len(products))
	out := make([]string, 0)
	for _, p := range products {
		v := field(p)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// PriceRangeOf returns the lowest and highest price, or ErrEmptyCatalog
func PriceRangeOf(products []domain.Product) (domain.PriceRange, error) {
	if len(products) == 0 {
		return domain.PriceRange{}, domain.ErrEmptyCatalog
	}

	r := domain.PriceRange{Min: products[0].Price, Max: products[0].Price}
	for _, p := range products[1:] {
		if p.Price.LessThan(r.Min) {
			r.Min = p.Price
		}
		if p.Price.GreaterThan(r.Max) {
			r.Max = p.Price
		}
	}
	return r, nil
}

// CategoryCounts returns categories in first-seen order with their product counts
func CategoryCounts(products []domain.Product) []domain.CategoryCount {
	index := make(map[string]int)
	counts := make([]domain.CategoryCount, 0)
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(counts)
			index[p.Category] = i
			counts = append(counts, domain.CategoryCount{Name: p.Category})
		}
		counts[i].Count++
	}
	return counts
}

// FeaturedProducts picks the most expensive product of each of the first n categories.
// On equal prices the earlier product wins.
func FeaturedProducts(products []domain.Product, n int) []domain.Product {
	featured := make([]domain.Product, 0, n)
	index := make(map[string]int)

	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			if len(featured) >= n {
				continue
			}
			index[p.Category] = len(featured)
			featured = append(featured, p)
			continue
		}
		if p.Price.GreaterThan(featured[i].Price) {
			featured[i] = p
		}
	}
	return featured
}
