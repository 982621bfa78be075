package catalog

import (
	"slices"
	"strings"

	"github.com/guelo0987/gigante-storefront/models"
)

// Active filter label prefixes, shown as chips above the product grid.
const (
	LabelSearch      = "Búsqueda: "
	LabelCategory    = "Categoría: "
	LabelSubcategory = "Subcategoría: "
	LabelBrand       = "Marca: "
	LabelMeasure     = "Medida: "
)

// Result is the output of FilterCatalog.
type Result struct {
	Results       []models.Product `json:"results"`
	ActiveFilters []string         `json:"active_filters"`
}

type predicate func(p models.Product) bool

// FilterCatalog returns the products matching state, in input order, and
// the labels of the facets that were applied.
//
// Facets combine with AND; the values selected within one facet combine
// with OR. A product missing a field that an active facet needs does not
// match. Labels are ordered search, category, subcategories, then brand
// and measure values in selection order.
func FilterCatalog(products []models.Product, state FilterState) Result {
	if len(products) == 0 {
		return Result{Results: []models.Product{}, ActiveFilters: []string{}}
	}

	var preds []predicate
	labels := make([]string, 0)

	if state.Search != "" {
		term := strings.ToLower(state.Search)
		preds = append(preds, func(p models.Product) bool {
			return containsFold(p.Name, term) || containsFold(p.CategoryName(), term)
		})
		labels = append(labels, LabelSearch+state.Search)
	}

	if state.CategoryActive() {
		category := state.Category
		preds = append(preds, func(p models.Product) bool {
			return p.Category != nil && strings.EqualFold(p.Category.Name, category)
		})
		labels = append(labels, LabelCategory+category)
	}

	if len(state.Subcategories) > 0 {
		subs := state.Subcategories
		preds = append(preds, func(p models.Product) bool {
			return p.Subcategory != nil && slices.Contains(subs, p.Subcategory.Name)
		})
		for _, sub := range subs {
			labels = append(labels, LabelSubcategory+sub)
		}
	}

	if state.Ceramics() {
		if len(state.CeramicBrands) > 0 {
			preds = append(preds, brandIn(state.CeramicBrands))
			for _, brand := range state.CeramicBrands {
				labels = append(labels, LabelBrand+brand)
			}
		}
		if len(state.Measures) > 0 {
			measures := state.Measures
			preds = append(preds, func(p models.Product) bool {
				return p.Measure != "" && slices.Contains(measures, p.Measure)
			})
			for _, measure := range measures {
				labels = append(labels, LabelMeasure+measure)
			}
		}
	} else if len(state.Brands) > 0 {
		preds = append(preds, brandIn(state.Brands))
		for _, brand := range state.Brands {
			labels = append(labels, LabelBrand+brand)
		}
	}

	results := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesAll(p, preds) {
			results = append(results, p)
		}
	}

	return Result{Results: results, ActiveFilters: labels}
}

// FindByCode looks a product up by its code.
func FindByCode(products []models.Product, code string) (models.Product, bool) {
	code = strings.TrimSpace(code)
	for _, p := range products {
		if string(p.Code) == code {
			return p, true
		}
	}
	return models.Product{}, false
}

// Featured returns the featured products whose category is (ceramics=true)
// or is not (ceramics=false) the ceramics category, in input order.
func Featured(products []models.Product, ceramics bool) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range products {
		if !p.Featured {
			continue
		}
		if IsCeramics(p.CategoryName()) == ceramics {
			out = append(out, p)
		}
	}
	return out
}

func brandIn(brands []string) predicate {
	return func(p models.Product) bool {
		return p.Brand != "" && slices.Contains(brands, p.Brand)
	}
}

func matchesAll(p models.Product, preds []predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

// containsFold reports whether s contains the already-lowercased term.
func containsFold(s, lowerTerm string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), lowerTerm)
}
