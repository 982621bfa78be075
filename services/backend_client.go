package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/observability"
)

var (
	// ErrUpstream wraps every failure talking to the backend API.
	ErrUpstream = errors.New("upstream backend unavailable")
	// ErrNotFound is returned when the backend answers 404.
	ErrNotFound = errors.New("not found")
)

// maxErrorBody bounds how much of an error response is kept for logging.
const maxErrorBody = 2048

// BackendClient talks to the store's REST backend.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.StoreMetrics
}

// NewBackendClient creates a client for baseURL, which must end in a slash.
func NewBackendClient(baseURL string, timeout time.Duration, metrics *observability.StoreMetrics) *BackendClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BackendClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
	}
}

// GetProducts fetches the full product list.
func (b *BackendClient) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := b.getJSON(ctx, "productos", "api/Producto", &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProduct fetches a single product by its code.
func (b *BackendClient) GetProduct(ctx context.Context, code string) (models.Product, error) {
	var product models.Product
	if err := b.getJSON(ctx, "producto", "api/Producto/"+url.PathEscape(code), &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// GetCategories fetches the category tree.
func (b *BackendClient) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := b.getJSON(ctx, "categorias", "api/Categoria", &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// CreateVacante forwards a job application as multipart/form-data.
func (b *BackendClient) CreateVacante(ctx context.Context, v models.Vacante) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	for _, field := range models.VacanteFields {
		value, ok := v.Fields[field.Name]
		if !ok {
			continue
		}
		if err := w.WriteField(field.Name, value); err != nil {
			return fmt.Errorf("encode vacante field %s: %w", field.Name, err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
		models.VacanteCurriculumField, v.CurriculumName))
	header.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("encode curriculum: %w", err)
	}
	if _, err := part.Write(v.Curriculum); err != nil {
		return fmt.Errorf("encode curriculum: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("encode vacante: %w", err)
	}

	return b.post(ctx, "vacantes", "api/vacantes", w.FormDataContentType(), &body)
}

// SendMensaje forwards a contact message.
func (b *BackendClient) SendMensaje(ctx context.Context, msg models.MensajeRequest) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode mensaje: %w", err)
	}
	return b.post(ctx, "mensajes", "api/Mensajes", "application/json", bytes.NewReader(payload))
}

func (b *BackendClient) getJSON(ctx context.Context, endpoint, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.do(endpoint, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		zap.L().Error("decode upstream response", zap.String("endpoint", endpoint), zap.Error(err))
		return fmt.Errorf("%w: decode %s: %v", ErrUpstream, endpoint, err)
	}
	return nil
}

func (b *BackendClient) post(ctx context.Context, endpoint, path, contentType string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := b.do(endpoint, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// do sends req and maps transport failures and non-2xx answers onto the
// package sentinels. On success the caller owns resp.Body.
func (b *BackendClient) do(endpoint string, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.metrics.RecordUpstream(endpoint, observability.OutcomeError, time.Since(start))
		zap.L().Warn("upstream request failed",
			zap.String("endpoint", endpoint),
			zap.String("method", req.Method),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, endpoint, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		b.metrics.RecordUpstream(endpoint, observability.OutcomeNotFound, time.Since(start))
		return nil, fmt.Errorf("%s: %w", endpoint, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		b.metrics.RecordUpstream(endpoint, observability.OutcomeError, time.Since(start))
		zap.L().Warn("upstream returned error status",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUpstream, endpoint, resp.StatusCode)
	}

	b.metrics.RecordUpstream(endpoint, observability.OutcomeOK, time.Since(start))
	return resp, nil
}
