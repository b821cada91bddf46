package usecase

import (
	"github.com/productadvisor/backend/internal/domain"
	"github.com/shopspring/decimal"
)

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func pricePtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// testCatalog is a small fixed catalog shared by the usecase tests
func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: 1, ProductName: "Heat Pad", Brand: "ThermaCare", Category: "Healthtech and Wellness", Price: price(999), Description: "Soothes back pain and muscle cramps"},
		{ID: 2, ProductName: "Game Console", Brand: "Sony", Category: "Entertainment", Price: price(25000), Description: "4K gaming with a wireless controller"},
		{ID: 3, ProductName: "Wireless Headphones", Brand: "Sony", Category: "Entertainment", Price: price(14990), Description: "Noise cancelling headphones for travel"},
		{ID: 4, ProductName: "Air Fryer", Brand: "Philips", Category: "Kitchen Appliances", Price: price(8999), Description: "Crispy snacks with less oil"},
		{ID: 5, ProductName: "Beard Trimmer", Brand: "Philips", Category: "Personal Care", Price: price(1899), Description: "Cordless trimmer with steel blades"},
		{ID: 6, ProductName: "Fitness Band", Brand: "Mi", Category: "Healthtech and Wellness", Price: price(2799), Description: "Tracks steps, heart rate and sleep"},
		{ID: 7, ProductName: "Coffee Maker", Brand: "DeLonghi", Category: "Kitchen Appliances", Price: price(15990), Description: "Espresso machine with milk frother"},
	}
}

// staticCatalog adapts a product slice to domain.CatalogReader
type staticCatalog []domain.Product

func (c staticCatalog) Products() []domain.Product {
	out := make([]domain.Product, len(c))
	copy(out, c)
	return out
}

func (c staticCatalog) Get(id int) (domain.Product, error) {
	for _, p := range c {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func productIDs(products []domain.Product) []int {
	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func recommendationIDs(recs []domain.Recommendation) []int {
	ids := make([]int, len(recs))
	for i, r := range recs {
		ids[i] = r.Product.ID
	}
	return ids
}
