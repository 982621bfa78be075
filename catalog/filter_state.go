package catalog

import (
	"net/url"
	"slices"
	"strings"
)

const (
	// AllCategories is the sentinel for "no category selected".
	AllCategories = "all"

	// CeramicsCategory unlocks the ceramic brand and measure facets.
	CeramicsCategory = "Ceramicas y Porcelanatos"
)

// Query parameter names understood by FilterStateFromQuery.
const (
	ParamCategory     = "category"
	ParamSearch       = "search"
	ParamSubcategory  = "subcategory"
	ParamBrand        = "brand"
	ParamCeramicBrand = "ceramicBrand"
	ParamMeasure      = "measure"
)

// IsCeramics reports whether name is the ceramics category, ignoring case.
func IsCeramics(name string) bool {
	return strings.EqualFold(name, CeramicsCategory)
}

// FilterState is the catalog filter selection for one page visit.
//
// A FilterState is a value: every transition returns a new state and leaves
// the receiver untouched. The slices are ordered sets in selection order.
type FilterState struct {
	Category      string   `json:"category"`
	Search        string   `json:"search"`
	Subcategories []string `json:"subcategories"`
	Brands        []string `json:"brands"`
	CeramicBrands []string `json:"ceramic_brands"`
	Measures      []string `json:"measures"`
}

// NewFilterState returns the empty selection.
func NewFilterState() FilterState {
	return FilterState{Category: AllCategories}
}

// FilterStateFromQuery seeds a FilterState from URL query parameters.
// Blank and repeated facet values are dropped; selection order is preserved.
// The search term is kept verbatim, surrounding spaces included.
func FilterStateFromQuery(values url.Values) FilterState {
	s := NewFilterState()
	if category := strings.TrimSpace(values.Get(ParamCategory)); category != "" {
		s.Category = category
	}
	s.Search = values.Get(ParamSearch)
	s.Subcategories = uniqueValues(values[ParamSubcategory])
	s.Brands = uniqueValues(values[ParamBrand])
	s.CeramicBrands = uniqueValues(values[ParamCeramicBrand])
	s.Measures = uniqueValues(values[ParamMeasure])
	return s.normalized()
}

// Query encodes the state back into URL query parameters.
func (s FilterState) Query() url.Values {
	values := url.Values{}
	if s.CategoryActive() {
		values.Set(ParamCategory, s.Category)
	}
	if s.Search != "" {
		values.Set(ParamSearch, s.Search)
	}
	for _, v := range s.Subcategories {
		values.Add(ParamSubcategory, v)
	}
	for _, v := range s.Brands {
		values.Add(ParamBrand, v)
	}
	for _, v := range s.CeramicBrands {
		values.Add(ParamCeramicBrand, v)
	}
	for _, v := range s.Measures {
		values.Add(ParamMeasure, v)
	}
	return values
}

// CategoryActive reports whether a concrete category is selected.
func (s FilterState) CategoryActive() bool {
	return s.Category != "" && s.Category != AllCategories
}

// Ceramics reports whether the selected category is the ceramics category.
func (s FilterState) Ceramics() bool {
	return s.CategoryActive() && IsCeramics(s.Category)
}

// SelectCategory selects a category ("" or "all" clears it).
//
// Selecting any category, including the current one, clears the subcategory
// selection. Leaving the ceramics category clears the ceramic brand and
// measure selections, which would otherwise keep filtering while hidden.
func (s FilterState) SelectCategory(name string) FilterState {
	next := s.clone()
	name = strings.TrimSpace(name)
	if name == "" {
		name = AllCategories
	}

	next.Category = name
	next.Subcategories = nil
	if s.Ceramics() && !next.Ceramics() {
		next.CeramicBrands = nil
		next.Measures = nil
	}
	return next
}

// SetSearch replaces the free-text search term. The term is not trimmed.
func (s FilterState) SetSearch(term string) FilterState {
	next := s.clone()
	next.Search = term
	return next
}

// ToggleSubcategory adds or removes a subcategory.
func (s FilterState) ToggleSubcategory(name string) FilterState {
	next := s.clone()
	next.Subcategories = toggle(next.Subcategories, name)
	return next
}

// ToggleBrand adds or removes a brand from the non-ceramic brand facet.
func (s FilterState) ToggleBrand(name string) FilterState {
	next := s.clone()
	next.Brands = toggle(next.Brands, name)
	return next
}

// ToggleCeramicBrand adds or removes a ceramic brand. With no category
// selected this selects the ceramics category; with another category
// selected the facet is unavailable and the state is returned unchanged.
func (s FilterState) ToggleCeramicBrand(name string) FilterState {
	next, ok := s.enterCeramics()
	if !ok {
		return s
	}
	next.CeramicBrands = toggle(next.CeramicBrands, name)
	return next
}

// ToggleMeasure adds or removes a ceramic measure, with the same category
// rule as ToggleCeramicBrand.
func (s FilterState) ToggleMeasure(measure string) FilterState {
	next, ok := s.enterCeramics()
	if !ok {
		return s
	}
	next.Measures = toggle(next.Measures, measure)
	return next
}

// Clear resets every facet.
func (s FilterState) Clear() FilterState {
	return NewFilterState()
}

// Empty reports whether no facet is applied.
func (s FilterState) Empty() bool {
	return !s.CategoryActive() &&
		s.Search == "" &&
		len(s.Subcategories) == 0 &&
		len(s.Brands) == 0 &&
		len(s.CeramicBrands) == 0 &&
		len(s.Measures) == 0
}

func (s FilterState) enterCeramics() (FilterState, bool) {
	next := s.clone()
	switch {
	case !next.CategoryActive():
		next.Category = CeramicsCategory
	case !next.Ceramics():
		return s, false
	}
	return next, true
}

// normalized applies the ceramics facet rule to a state built from raw input.
func (s FilterState) normalized() FilterState {
	if len(s.CeramicBrands) == 0 && len(s.Measures) == 0 {
		return s
	}
	if !s.CategoryActive() {
		s.Category = CeramicsCategory
	}
	if !s.Ceramics() {
		s.CeramicBrands = nil
		s.Measures = nil
	}
	return s
}

func (s FilterState) clone() FilterState {
	s.Subcategories = slices.Clone(s.Subcategories)
	s.Brands = slices.Clone(s.Brands)
	s.CeramicBrands = slices.Clone(s.CeramicBrands)
	s.Measures = slices.Clone(s.Measures)
	return s
}

func toggle(set []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return set
	}
	if i := slices.Index(set, value); i >= 0 {
		return slices.Delete(set, i, i+1)
	}
	return append(set, value)
}

func uniqueValues(raw []string) []string {
	var out []string
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
