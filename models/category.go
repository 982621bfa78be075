package models

// Subcategory belongs to exactly one Category.
type Subcategory struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

// Category represents a category from api/Categoria with its subcategories.
type Category struct {
	ID            int           `json:"id"`
	Name          string        `json:"nombre"`
	Subcategories []Subcategory `json:"subCategorias"`
}
