package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ═══════════════════════════════════════════════════════════
// Upstream product records (api/Producto)
// ═══════════════════════════════════════════════════════════

// ProductCode is the unique product identifier. The backend sends it either
// as a JSON string or as a number; both decode to the same string form.
type ProductCode string

func (pc *ProductCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*pc = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid product code: %w", err)
		}
		*pc = ProductCode(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid product code %s: %w", string(data), err)
	}
	*pc = ProductCode(n.String())
	return nil
}

func (pc ProductCode) String() string {
	return string(pc)
}

// CategoryRef is the category embedded in a product record.
type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

// SubcategoryRef is the subcategory embedded in a product record.
type SubcategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

// Product is one sellable item as returned by the backend.
type Product struct {
	Code        ProductCode     `json:"codigo"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion,omitempty"`
	Brand       string          `json:"marca,omitempty"`
	Measure     string          `json:"medida,omitempty"`
	Stock       int             `json:"stock"`
	ImageRef    string          `json:"imageUrl,omitempty"`
	Featured    bool            `json:"esDestacado,omitempty"`
	Category    *CategoryRef    `json:"categoria,omitempty"`
	Subcategory *SubcategoryRef `json:"subCategoria,omitempty"`
}

// UnmarshalJSON clamps negative stock to zero.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Stock < 0 {
		raw.Stock = 0
	}
	*p = Product(raw)
	return nil
}

// InStock reports whether the product is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// CategoryName returns the category name, or "" when the product has none.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// SubcategoryName returns the subcategory name, or "" when the product has none.
func (p Product) SubcategoryName() string {
	if p.Subcategory == nil {
		return ""
	}
	return p.Subcategory.Name
}
