package main

import (
	"fmt"

	"github.com/productadvisor/backend/config"
	"github.com/productadvisor/backend/internal/domain"
	"github.com/productadvisor/backend/internal/infrastructure/catalog"
	"github.com/productadvisor/backend/internal/usecase"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newProductsCmd(cfg *config.Config) *cobra.Command {
	var (
		query      string
		category   string
		brand      string
		minPrice   string
		maxPrice   string
		sortKey    string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and filter the catalog",
		Example: `  advisor products --category "Kitchen Appliances" --sort price-asc
  advisor products --q wireless --max-price 20000 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := domain.SearchFilters{Category: category, Brand: brand}

			var err error
			if filters.MinPrice, err = parsePriceFlag("min-price", minPrice); err != nil {
				return err
			}
			if filters.MaxPrice, err = parsePriceFlag("max-price", maxPrice); err != nil {
				return err
			}
			key, err := usecase.ParseSortKey(sortKey)
			if err != nil {
				return err
			}

			// browsing needs only the catalog
			products, err := catalog.Load(cfg.Catalog.Path)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			result := usecase.FilterProducts(products.Products(), filters)
			result = usecase.SearchProducts(result, query)
			if result, err = usecase.SortProducts(result, key); err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return writeProducts(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&query, "q", "", "Search text matched against name, description, brand and category")
	cmd.Flags().StringVarP(&category, "category", "c", "", `Exact category, or "All"`)
	cmd.Flags().StringVarP(&brand, "brand", "b", "", "Brand, case-insensitive")
	cmd.Flags().StringVar(&minPrice, "min-price", "", "Lowest price, inclusive")
	cmd.Flags().StringVar(&maxPrice, "max-price", "", "Highest price, inclusive")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", "", "price-asc, price-desc, name or relevance")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Return structured output in JSON format")
	return cmd
}

func parsePriceFlag(name, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s must be a number, got %q", name, raw)
	}
	return &d, nil
}
