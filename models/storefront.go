// ════════════════════════════════════════════════════════════
// STOREFRONT RESPONSE MODELS
// File: models/storefront.go
// ════════════════════════════════════════════════════════════

package models

// StorefrontProduct is the customer-facing shape of a product.
type StorefrontProduct struct {
	Code        string `json:"code"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Measure     string `json:"measure,omitempty"`
	Stock       int    `json:"stock"`
	InStock     bool   `json:"in_stock"`
	Image       string `json:"image"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
}

// StorefrontRankedProduct is a search match with its relevance score.
type StorefrontRankedProduct struct {
	StorefrontProduct
	Relevance int `json:"relevance"`
}

// StorefrontCategory represents a category in the storefront
type StorefrontCategory struct {
	ID            int                  `json:"id"`
	Name          string               `json:"name"`
	Slug          string               `json:"slug"`
	ProductCount  int                  `json:"product_count"`
	Subcategories []StorefrontCategory `json:"subcategories,omitempty"`
}

// CatalogPage is the payload of GET /store/catalog.
type CatalogPage struct {
	Products      []StorefrontProduct `json:"products"`
	ActiveFilters []string            `json:"active_filters"`
	Category      string              `json:"category"`
	Ceramics      bool                `json:"ceramics"`
	Facets        *FilterMetadata     `json:"facets,omitempty"`
	Version       string              `json:"version,omitempty"`
	UpstreamError bool                `json:"upstream_error,omitempty"`
}

// SearchResults is the payload of GET /store/search.
type SearchResults struct {
	Query         string                    `json:"query"`
	Results       []StorefrontRankedProduct `json:"results"`
	Cached        bool                      `json:"cached"`
	UpstreamError bool                      `json:"upstream_error,omitempty"`
}
