package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/productadvisor/backend/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeProducts(w io.Writer, products []domain.Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No products."))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "PRODUCT", "BRAND", "CATEGORY", "PRICE")
	for _, p := range products {
		t.Row(strconv.Itoa(p.ID), p.ProductName, p.Brand, p.Category, p.Price.StringFixed(2))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func writeRecommendations(w io.Writer, result *domain.RecommendationResult) error {
	fmt.Fprintf(w, "%s %q (%s)\n\n", headerStyle.Render("Recommendations for"), result.Query, result.Source)

	if len(result.Recommendations) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No matching products."))
		return err
	}

	for i, rec := range result.Recommendations {
		fmt.Fprintf(w, "%d. %s (%s) %s  match %d%%\n",
			i+1, headerStyle.Render(rec.Product.ProductName), rec.Product.Brand, rec.Product.Price.StringFixed(2), rec.MatchScore)
		fmt.Fprintf(w, "   %s\n", rec.Reasoning)
		if len(rec.Pros) > 0 {
			fmt.Fprintf(w, "   + %s\n", strings.Join(rec.Pros, ", "))
		}
		if len(rec.Cons) > 0 {
			fmt.Fprintf(w, "   - %s\n", mutedStyle.Render(strings.Join(rec.Cons, ", ")))
		}
	}
	return nil
}
