package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/productadvisor/backend/internal/domain"
	"github.com/productadvisor/backend/internal/usecase"
	"github.com/shopspring/decimal"
)

// ServiceName is reported by the health check
const ServiceName = "product-advisor"

// Version is reported by the health check; the binary overrides it at startup
var Version = "dev"

const defaultFeaturedLimit = 4

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog         domain.CatalogReader
	favorites       *usecase.FavoritesService
	recommendations *usecase.RecommendationService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog domain.CatalogReader,
	favorites *usecase.FavoritesService,
	recommendations *usecase.RecommendationService,
) *Handler {
	return &Handler{
		catalog:         catalog,
		favorites:       favorites,
		recommendations: recommendations,
	}
}

// RecommendationRequest is the body of POST /recommendations
type RecommendationRequest struct {
	Query string `json:"query"`
}

// FavoriteStatus reports whether a product is a favorite
type FavoriteStatus struct {
	ID       int  `json:"id"`
	Favorite bool `json:"favorite"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  ServiceName,
		"version":  Version,
		"products": len(h.catalog.Products()),
	})
}

// ListProducts filters, searches and sorts the catalog
func (h *Handler) ListProducts(c *gin.Context) {
	filters := domain.SearchFilters{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
	}

	var err error
	if filters.MinPrice, err = parsePrice(c.Query("minPrice")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "minPrice must be a number"})
		return
	}
	if filters.MaxPrice, err = parsePrice(c.Query("maxPrice")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "maxPrice must be a number"})
		return
	}

	sortKey, err := usecase.ParseSortKey(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products := usecase.FilterProducts(h.catalog.Products(), filters)
	products = usecase.SearchProducts(products, c.Query("q"))
	products, err = usecase.SortProducts(products, sortKey)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one catalog product
func (h *Handler) GetProduct(c *gin.Context) {
	product, ok := h.productFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListCategories returns the distinct categories
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": usecase.UniqueCategories(h.catalog.Products())})
}

// ListBrands returns the distinct brands
func (h *Handler) ListBrands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"brands": usecase.UniqueBrands(h.catalog.Products())})
}

// GetPriceRange returns the lowest and highest catalog price
func (h *Handler) GetPriceRange(c *gin.Context) {
	r, err := usecase.PriceRangeOf(h.catalog.Products())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r)
}

// ListFeatured returns the most expensive product of the first categories
func (h *Handler) ListFeatured(c *gin.Context) {
	limit := defaultFeaturedLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, gin.H{"products": usecase.FeaturedProducts(h.catalog.Products(), limit)})
}

// ListCategoryCounts returns each category with its product count
func (h *Handler) ListCategoryCounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": usecase.CategoryCounts(h.catalog.Products())})
}

// Recommend ranks catalog products for a free-text query
func (h *Handler) Recommend(c *gin.Context) {
	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON with a query field"})
		return
	}

	result, err := h.recommendations.Recommend(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to produce recommendations"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListFavorites returns favorites in insertion order
func (h *Handler) ListFavorites(c *gin.Context) {
	favorites := h.favorites.GetAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// ClearFavorites removes every favorite
func (h *Handler) ClearFavorites(c *gin.Context) {
	h.favorites.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// GetFavorite reports whether a product id is a favorite
func (h *Handler) GetFavorite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, FavoriteStatus{ID: id, Favorite: h.favorites.Contains(c.Request.Context(), id)})
}

// AddFavorite stores a snapshot of a catalog product
func (h *Handler) AddFavorite(c *gin.Context) {
	product, ok := h.productFromPath(c)
	if !ok {
		return
	}
	h.favorites.Add(c.Request.Context(), product)
	c.JSON(http.StatusOK, FavoriteStatus{ID: product.ID, Favorite: h.favorites.Contains(c.Request.Context(), product.ID)})
}

// RemoveFavorite deletes a favorite; unknown ids are not an error
func (h *Handler) RemoveFavorite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	h.favorites.Remove(c.Request.Context(), id)
	c.JSON(http.StatusOK, FavoriteStatus{ID: id, Favorite: false})
}

// ToggleFavorite flips the favorite state of a product.
// A favorite whose product left the catalog can still be toggled off.
func (h *Handler) ToggleFavorite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	product, err := h.catalog.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) && h.favorites.Contains(ctx, id) {
			h.favorites.Remove(ctx, id)
			c.JSON(http.StatusOK, FavoriteStatus{ID: id, Favorite: false})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, FavoriteStatus{ID: id, Favorite: h.favorites.Toggle(ctx, product)})
}

// productFromPath resolves :id against the catalog, writing 400/404 on failure
func (h *Handler) productFromPath(c *gin.Context) (domain.Product, bool) {
	id, ok := parseID(c)
	if !ok {
		return domain.Product{}, false
	}

	product, err := h.catalog.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return domain.Product{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read catalog"})
		return domain.Product{}, false
	}
	return product, true
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

// parsePrice returns nil for an absent bound
func parsePrice(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
