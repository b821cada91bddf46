package main

import (
	"fmt"
	"strconv"

	"github.com/productadvisor/backend/config"
	"github.com/spf13/cobra"
)

func newFavoritesCmd(cfg *config.Config) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List favorites in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			favorites := a.favorites.GetAll(cmd.Context())
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), favorites)
			}
			return writeProducts(cmd.OutOrStdout(), favorites)
		},
	}
	list.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Return structured output in JSON format")

	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a catalog product to favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			product, err := a.catalog.Get(id)
			if err != nil {
				return err
			}
			a.favorites.Add(cmd.Context(), product)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d (%s) to favorites\n", product.ID, product.ProductName)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			a.favorites.Remove(cmd.Context(), id)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d from favorites\n", id)
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <product-id>",
		Short: "Add a product to favorites, or remove it if already there",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			product, err := a.catalog.Get(id)
			if err != nil {
				return err
			}
			if a.favorites.Toggle(cmd.Context(), product) {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d (%s) to favorites\n", id, product.ProductName)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d from favorites\n", id)
			}
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			a.favorites.Clear(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared favorites")
			return nil
		},
	}

	cmd.AddCommand(list, add, remove, toggle, clearCmd)
	return cmd
}

func parseProductID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("product id must be a positive integer, got %q", raw)
	}
	return id, nil
}
