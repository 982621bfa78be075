package storefront_routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guelo0987/gigante-storefront/config"
	"github.com/guelo0987/gigante-storefront/models"
)

const upstreamProducts = `[
	{"codigo": 100, "nombre": "Taladro percutor", "marca": "DeWalt", "stock": 4, "esDestacado": true,
	 "imageUrl": "taladro.png", "categoria": {"id": 1, "nombre": "Herramientas"}},
	{"codigo": "200", "nombre": "Piso gris mate", "marca": "Porcelanite", "medida": "60x60", "stock": 30,
	 "categoria": {"id": 2, "nombre": "Ceramicas y Porcelanatos"}}
]`

const upstreamCategories = `[
	{"id": 1, "nombre": "Herramientas", "subCategorias": []},
	{"id": 2, "nombre": "Ceramicas y Porcelanatos", "subCategorias": []}
]`

// fakeUpstream records form submissions and can be switched into failure.
type fakeUpstream struct {
	mu       sync.Mutex
	failing  bool
	vacantes []*multipart.Form
	mensajes []models.MensajeRequest
}

func (u *fakeUpstream) setFailing(v bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failing = v
}

func (u *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.failing {
		http.Error(w, "down", http.StatusInternalServerError)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/Producto":
		_, _ = io.WriteString(w, upstreamProducts)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/Producto/"):
		http.NotFound(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/api/Categoria":
		_, _ = io.WriteString(w, upstreamCategories)
	case r.Method == http.MethodPost && r.URL.Path == "/api/vacantes":
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		u.vacantes = append(u.vacantes, r.MultipartForm)
		w.WriteHeader(http.StatusCreated)
	case r.Method == http.MethodPost && r.URL.Path == "/api/Mensajes":
		var msg models.MensajeRequest
		_ = json.NewDecoder(r.Body).Decode(&msg)
		u.mensajes = append(u.mensajes, msg)
		w.WriteHeader(http.StatusCreated)
	default:
		http.NotFound(w, r)
	}
}

func setupRouter(t *testing.T, mw ...gin.HandlerFunc) (*gin.Engine, *fakeUpstream) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := &fakeUpstream{}
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := config.AppConfig{
		APIBaseURL:      srv.URL + "/",
		UpstreamTimeout: 2 * time.Second,
		ImageBaseURL:    "https://img.example.com",
		CatalogTTL:      time.Minute,
		SearchCacheTTL:  time.Minute,
	}

	router := gin.New()
	router.Use(mw...)
	SetupStorefrontRoutes(router.Group("/api/v1"), NewStoreServices(cfg, nil, nil, nil))
	return router, upstream
}

func perform(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data any) models.ApiResponse {
	t.Helper()
	var env struct {
		models.ApiResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.ApiResponse
}

func TestCatalog_FiltersAndPaginates(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, httptest.NewRequest(http.MethodGet, "/api/v1/store/catalog?category=Herramientas&include_facets=true", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("ETag"))

	var page models.CatalogPage
	env := decodeEnvelope(t, w, &page)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "100", page.Products[0].Code)
	assert.Equal(t, "https://img.example.com/taladro.png", page.Products[0].Image)
	assert.False(t, page.Ceramics)
	assert.False(t, page.UpstreamError)
	require.NotNil(t, page.Facets)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Total)
}

func TestCatalog_NotModified(t *testing.T) {
	router, _ := setupRouter(t)

	first := perform(router, httptest.NewRequest(http.MethodGet, "/api/v1/store/catalog", nil))
	require.Equal(t, http.StatusOK, first.Code)
	tag := first.Header().Get("ETag")
	require.NotEmpty(t, tag)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/store/catalog", nil)
	req.Header.Set("If-None-Match", tag)
	second := perform(router, req)
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.Bytes())
}

func TestCatalog_UpstreamFailureIsEmpty(t *testing.T) {
	router, upstream := setupRouter(t)
	upstream.setFailing(true)

	w := perform(router, httptest.NewRequest(http.MethodGet, "/api/v1/store/catalog", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("ETag"))

	var page models.CatalogPage
	decodeEnvelope(t, w, &page)
	assert.Empty(t, page.Products)
	assert.True(t, page.UpstreamError)
}

func TestCatalog_UpstreamFailureWithFacetsRecordsOneError(t *testing.T) {
	var recorded []*gin.Error
	router, upstream := setupRouter(t, func(c *gin.Context) {
		c.Next()
		recorded = c.Errors
	})
	upstream.setFailing(true)

	w := perform(router, httptest.NewRequest(http.MethodGet, "/api/v1/store/catalog?include_facets=true", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var page models.CatalogPage
	decodeEnvelope(t, w, &page)
	assert.True(t, page.UpstreamError)
	require.NotNil(t, page.Facets)
	assert.True(t, page.Facets.UpstreamError)
	assert.Len(t, recorded, 1)
}

func TestSearch(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, httptest.NewRequest(http.MethodGet, "/api/v1/store/search?q=piso", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var results models.SearchResults
	decodeEnvelope(t, w, &results)
	require.Len(t, results.Results, 1)
	assert.Equal(t, "200", results.Results[0].Code)
	assert.False(t, results.Cached)

	w = perform(router, httptest.NewRequest(http.MethodGet, "/api/v1/store/search?q=piso", nil))
	decodeEnvelope(t, w, &results)
	assert.True(t, results.Cached)

	w = perform(router, httptest.NewRequest(http.MethodGet, "/api/v1/store/search?q=p", nil))
	decodeEnvelope(t, w, &results)
	assert.Empty(t, results.Results)
}

func TestPopularSearches_WithoutDatabase(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, httptest.NewRequest(http.MethodGet, "/api/v1/store/search/popular", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var top []models.TopSearch
	decodeEnvelope(t, w, &top)
	assert.Empty(t, top)
}

func TestProducts(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, httptest.NewRequest(http.MethodGet, "/api/v1/store/products/100", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var product models.StorefrontProduct
	decodeEnvelope(t, w, &product)
	assert.Equal(t, "Taladro percutor", product.Name)
	assert.True(t, product.InStock)

	w = perform(router, httptest.NewRequest(http.MethodGet, "/api/v1/store/products/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w, nil)
	assert.True(t, env.Error)

	w = perform(router, httptest.NewRequest(http.MethodGet, "/api/v1/store/products/featured?ceramics=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, httptest.NewRequest(http.MethodGet, "/api/v1/store/products/featured", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var featured []models.StorefrontProduct
	decodeEnvelope(t, w, &featured)
	require.Len(t, featured, 1)
	assert.Equal(t, "100", featured[0].Code)
}

func TestCategories(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, httptest.NewRequest(http.MethodGet, "/api/v1/store/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var categories []models.StorefrontCategory
	decodeEnvelope(t, w, &categories)
	require.Len(t, categories, 2)
	assert.Equal(t, "herramientas", categories[0].Slug)
	assert.Equal(t, 1, categories[0].ProductCount)
}

func quoteRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/store/quotes/pdf", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestQuotePDF(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, quoteRequest(`{"customer_name": "Ana", "items": [{"code": "100", "quantity": 0}, {"code": "200", "quantity": 3}]}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "cotizacion-COT-")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestQuotePDF_Errors(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, quoteRequest(`{"items": []}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, quoteRequest(`{"items": [{"code": "100"}, {"code": "404"}]}`))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeEnvelope(t, w, nil)
	assert.Contains(t, env.Message, "404")
}

func vacanteRequest(t *testing.T, fields map[string]string, contentType string, cv []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if cv != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="Curriculum"; filename="cv.pdf"`)
		header.Set("Content-Type", contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(cv)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/store/vacantes", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func completeVacante() map[string]string {
	return map[string]string{
		"nombre":         "Ana Pérez",
		"cedula":         "001-0000000-1",
		"Correo":         "ana@example.com",
		"telefono":       "809-555-0101",
		"sexo":           "F",
		"NivelAcademico": "Universitario",
		"FuncionLaboral": "Ventas",
		"NivelLaboral":   "Junior",
	}
}

func TestVacante(t *testing.T) {
	router, upstream := setupRouter(t)

	w := perform(router, vacanteRequest(t, completeVacante(), "application/pdf", []byte("%PDF-1.4 cv")))
	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w, nil)
	assert.Equal(t, "¡Solicitud enviada con éxito!", env.Message)

	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	require.Len(t, upstream.vacantes, 1)
	assert.Equal(t, []string{"Ana Pérez"}, upstream.vacantes[0].Value["nombre"])
	require.Len(t, upstream.vacantes[0].File["Curriculum"], 1)
}

func TestVacante_Validation(t *testing.T) {
	router, upstream := setupRouter(t)

	w := perform(router, vacanteRequest(t, map[string]string{"nombre": "Ana"}, "", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w, nil)
	assert.True(t, strings.HasPrefix(env.Message, "Complete los campos obligatorios"))
	assert.True(t, strings.HasSuffix(env.Message, "Curriculum"))

	w = perform(router, vacanteRequest(t, completeVacante(), "image/png", []byte("png")))
	require.Equal(t, http.StatusBadRequest, w.Code)
	env = decodeEnvelope(t, w, nil)
	assert.Equal(t, "El currículum debe ser un archivo PDF", env.Message)

	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	assert.Empty(t, upstream.vacantes)
}

func TestVacante_UpstreamFailure(t *testing.T) {
	router, upstream := setupRouter(t)
	upstream.setFailing(true)

	w := perform(router, vacanteRequest(t, completeVacante(), "application/pdf", []byte("%PDF")))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func mensajeRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/store/mensajes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestMensaje(t *testing.T) {
	router, upstream := setupRouter(t)

	w := perform(router, mensajeRequest(`{"email": " ana@example.com ", "descripcion": "Necesito una cotización"}`))
	require.Equal(t, http.StatusCreated, w.Code)

	upstream.mu.Lock()
	require.Len(t, upstream.mensajes, 1)
	assert.Equal(t, "ana@example.com", upstream.mensajes[0].Email)
	upstream.mu.Unlock()

	w = perform(router, mensajeRequest(`{"email": "", "descripcion": ""}`))
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w, nil)
	assert.Contains(t, env.Message, "Correo electrónico")

	w = perform(router, mensajeRequest(`{"email": "ana", "descripcion": "hola"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	upstream.setFailing(true)
	w = perform(router, mensajeRequest(`{"email": "ana@example.com", "descripcion": "hola"}`))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
