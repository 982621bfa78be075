package catalog

import (
	"sort"
	"strings"

	"github.com/guelo0987/gigante-storefront/models"
)

// Option is one selectable facet value with the number of products carrying it.
type Option struct {
	Value string
	Count int
}

// CategoryCount is a category with product counts for it and its subcategories.
type CategoryCount struct {
	ID            int
	Name          string
	Count         int
	Subcategories []CategoryCount
}

// Facets holds the sidebar options for the catalog page.
type Facets struct {
	Categories    []CategoryCount
	Brands        []Option
	CeramicBrands []Option
	Measures      []Option
	InStock       int
	OutOfStock    int
}

// BuildFacets derives facet options from the product list. Brands are split
// by whether the product is a ceramic; measures only come from ceramics.
// Category order follows categories; option lists are sorted by value.
func BuildFacets(products []models.Product, categories []models.Category) Facets {
	brands := map[string]int{}
	ceramicBrands := map[string]int{}
	measures := map[string]int{}
	var facets Facets

	for _, p := range products {
		if p.InStock() {
			facets.InStock++
		} else {
			facets.OutOfStock++
		}

		if IsCeramics(p.CategoryName()) {
			if p.Brand != "" {
				ceramicBrands[p.Brand]++
			}
			if p.Measure != "" {
				measures[p.Measure]++
			}
			continue
		}
		if p.Brand != "" {
			brands[p.Brand]++
		}
	}

	facets.Brands = sortedOptions(brands)
	facets.CeramicBrands = sortedOptions(ceramicBrands)
	facets.Measures = sortedOptions(measures)
	facets.Categories = countCategories(products, categories)
	return facets
}

func countCategories(products []models.Product, categories []models.Category) []CategoryCount {
	out := make([]CategoryCount, 0, len(categories))
	for _, cat := range categories {
		entry := CategoryCount{ID: cat.ID, Name: cat.Name}
		subCounts := make(map[string]int, len(cat.Subcategories))

		for _, p := range products {
			if p.Category == nil || !strings.EqualFold(p.Category.Name, cat.Name) {
				continue
			}
			entry.Count++
			if name := p.SubcategoryName(); name != "" {
				subCounts[name]++
			}
		}

		entry.Subcategories = make([]CategoryCount, 0, len(cat.Subcategories))
		for _, sub := range cat.Subcategories {
			entry.Subcategories = append(entry.Subcategories, CategoryCount{
				ID:    sub.ID,
				Name:  sub.Name,
				Count: subCounts[sub.Name],
			})
		}
		out = append(out, entry)
	}
	return out
}

func sortedOptions(counts map[string]int) []Option {
	out := make([]Option, 0, len(counts))
	for value, n := range counts {
		out = append(out, Option{Value: value, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].Value), strings.ToLower(out[j].Value)
		if li != lj {
			return li < lj
		}
		return out[i].Value < out[j].Value
	})
	return out
}
