package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/guelo0987/gigante-storefront/catalog"
	"github.com/guelo0987/gigante-storefront/models"
)

type fakeBackend struct {
	products   []models.Product
	categories []models.Category
	err        error

	productCalls atomic.Int32

	mu        sync.Mutex
	vacantes  []models.Vacante
	mensajes  []models.MensajeRequest
	submitErr error
}

func (f *fakeBackend) GetProducts(ctx context.Context) ([]models.Product, error) {
	f.productCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeBackend) GetProduct(ctx context.Context, code string) (models.Product, error) {
	if f.err != nil {
		return models.Product{}, f.err
	}
	if p, ok := catalog.FindByCode(f.products, code); ok {
		return p, nil
	}
	return models.Product{}, ErrNotFound
}

func (f *fakeBackend) GetCategories(ctx context.Context) ([]models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeBackend) CreateVacante(ctx context.Context, v models.Vacante) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return f.submitErr
	}
	f.vacantes = append(f.vacantes, v)
	return nil
}

func (f *fakeBackend) SendMensaje(ctx context.Context, msg models.MensajeRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return f.submitErr
	}
	f.mensajes = append(f.mensajes, msg)
	return nil
}

func storeProducts() []models.Product {
	tools := &models.CategoryRef{ID: 1, Name: "Herramientas"}
	tiles := &models.CategoryRef{ID: 2, Name: catalog.CeramicsCategory}
	return []models.Product{
		{Code: "100", Name: "Taladro percutor", Brand: "DeWalt", Stock: 4, ImageRef: "taladro.png", Featured: true,
			Category: tools, Subcategory: &models.SubcategoryRef{ID: 10, Name: "Eléctricas"}},
		{Code: "101", Name: "Martillo de uña", Brand: "Stanley", Stock: 0, Category: tools,
			Subcategory: &models.SubcategoryRef{ID: 11, Name: "Manuales"}},
		{Code: "200", Name: "Piso gris mate", Brand: "Porcelanite", Measure: "60x60", Stock: 30, Featured: true,
			ImageRef: "https://cdn.example.com/piso.jpg", Category: tiles},
		{Code: "201", Name: "Piso madera", Brand: "Lamosa", Measure: "20x120", Stock: 12, Category: tiles},
	}
}

func storeCategories() []models.Category {
	return []models.Category{
		{ID: 1, Name: "Herramientas", Subcategories: []models.Subcategory{{ID: 10, Name: "Eléctricas"}, {ID: 11, Name: "Manuales"}}},
		{ID: 2, Name: catalog.CeramicsCategory},
	}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{products: storeProducts(), categories: storeCategories()}
}
