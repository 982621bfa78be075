// models/filters.go
package models

// FilterMetadata represents all facet data for the catalog sidebar
type FilterMetadata struct {
	Categories    []StorefrontCategory `json:"categories"`
	Brands        []FilterOption       `json:"brands"`
	CeramicBrands []FilterOption       `json:"ceramic_brands"`
	Measures      []FilterOption       `json:"measures"`
	Availability  *AvailabilityData    `json:"availability"`
	UpstreamError bool                 `json:"upstream_error,omitempty"`
}

// FilterOption represents a single filter option
type FilterOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// AvailabilityData represents product availability counts
type AvailabilityData struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
}
