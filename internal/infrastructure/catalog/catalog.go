package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/productadvisor/backend/internal/domain"
)

//go:embed products.json
var defaultCatalog []byte

// Catalog is the read-only, ordered product collection loaded at startup
type Catalog struct {
	products []domain.Product
	index    map[int]int
}

// Load reads the catalog from path, or the bundled catalog when path is empty
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
	}
	return Parse(data)
}

// Parse decodes and validates a JSON array of products
func Parse(data []byte) (*Catalog, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	return New(products)
}

// New builds a catalog from products, rejecting duplicate or malformed entries
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, len(products)),
		index:    make(map[int]int, len(products)),
	}
	copy(c.products, products)

	for i, p := range c.products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("%w: product at position %d has non-positive id %d", domain.ErrInvalidCatalog, i, p.ID)
		}
		if strings.TrimSpace(p.ProductName) == "" {
			return nil, fmt.Errorf("%w: product %d has an empty name", domain.ErrInvalidCatalog, p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("%w: product %d has a negative price", domain.ErrInvalidCatalog, p.ID)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %d", domain.ErrInvalidCatalog, p.ID)
		}
		c.index[p.ID] = i
	}

	return c, nil
}

// Products returns a copy of the catalog in its original order
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given id
func (c *Catalog) Get(id int) (domain.Product, error) {
	i, ok := c.index[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	return c.products[i], nil
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}
