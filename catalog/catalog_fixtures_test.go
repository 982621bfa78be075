package catalog

import "github.com/guelo0987/gigante-storefront/models"

func product(code, name, category, subcategory, brand string) models.Product {
	p := models.Product{Code: models.ProductCode(code), Name: name, Brand: brand, Stock: 1}
	if category != "" {
		p.Category = &models.CategoryRef{Name: category}
	}
	if subcategory != "" {
		p.Subcategory = &models.SubcategoryRef{Name: subcategory}
	}
	return p
}

func tile(code, name, brand, measure string) models.Product {
	p := product(code, name, CeramicsCategory, "Pisos", brand)
	p.Measure = measure
	return p
}

func sampleProducts() []models.Product {
	return []models.Product{
		product("1", "Tubería PVC 1/2 pulgada", "Plomeria", "Tuberías", "PAVCO"),
		product("2", "Llave de Lavamanos Cromada", "Plomeria", "Llaves y Grifos", "TYLBA ULTRA"),
		product("3", "Cemento Gris", "Materiales de Construcción", "Cemento", "ARGOS"),
		tile("4", "Porcelanato Mármol Blanco", "Lamosa", "60x60"),
		tile("5", "Cerámica Madera Roble", "Interceramic", "20x120"),
		tile("6", "Porcelanato Gris Pulido", "Lamosa", "60x120"),
		product("7", "Llave Ajustable 10\"", "Herramientas", "", "STANLEY"),
		{Code: "8", Name: "Producto sin categoría"},
	}
}

func codes(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, string(p.Code))
	}
	return out
}

func rankedCodes(ranked []RankedProduct) []string {
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, string(r.Code))
	}
	return out
}
