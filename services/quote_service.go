package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
	"go.uber.org/zap"

	"github.com/guelo0987/gigante-storefront/models"
)

// UnknownProductsError lists quote codes that are not in the catalog.
type UnknownProductsError struct {
	Codes []string
}

func (e *UnknownProductsError) Error() string {
	return "unknown products: " + strings.Join(e.Codes, ", ")
}

// Quote is a resolved cotización ready to render.
type Quote struct {
	Number        string
	Date          time.Time
	CustomerName  string
	CustomerEmail string
	Lines         []models.QuoteLine
}

// TotalUnits is the sum of all line quantities.
func (q Quote) TotalUnits() int {
	total := 0
	for _, l := range q.Lines {
		total += l.Quantity
	}
	return total
}

// QuoteService builds quotes from the cached catalog.
type QuoteService struct {
	catalog *CatalogService
	now     func() time.Time
}

func NewQuoteService(catalogSvc *CatalogService) *QuoteService {
	return &QuoteService{catalog: catalogSvc, now: time.Now}
}

// NormalizeQuantity raises quantities below one to one.
func NormalizeQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	return quantity
}

// BuildQuote resolves the requested items. Repeated codes are merged into
// one line, keeping the position of the first occurrence.
func (s *QuoteService) BuildQuote(ctx context.Context, req models.QuoteRequest) (Quote, error) {
	codes := make([]string, 0, len(req.Items))
	quantities := make(map[string]int, len(req.Items))
	for _, item := range req.Items {
		code := strings.TrimSpace(item.Code)
		if _, seen := quantities[code]; !seen {
			codes = append(codes, code)
		}
		quantities[code] += NormalizeQuantity(item.Quantity)
	}

	found, missing, err := s.catalog.Lookup(ctx, codes)
	if err != nil {
		return Quote{}, err
	}
	if len(missing) > 0 {
		return Quote{}, &UnknownProductsError{Codes: missing}
	}

	quote := Quote{
		Number:        "COT-" + strings.ToUpper(strings.ReplaceAll(uuid.Must(uuid.NewV7()).String(), "-", "")[:10]),
		Date:          s.now(),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		Lines:         make([]models.QuoteLine, 0, len(codes)),
	}
	for _, code := range codes {
		p := found[code]
		quote.Lines = append(quote.Lines, models.QuoteLine{
			Code:     p.Code.String(),
			Name:     p.Name,
			Brand:    p.Brand,
			Measure:  p.Measure,
			Quantity: quantities[code],
		})
	}
	return quote, nil
}

// RenderQuotePDF lays the quote out as an A4 document.
func RenderQuotePDF(q Quote) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	darkGray := color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray := color.Color{Red: 121, Green: 119, Blue: 109}

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text("COTIZACIÓN", props.Text{
				Size:  24,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text("FERRETERÍA GIGANTE", props.Text{
				Size:  16,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})

	m.Row(8, func() {})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text("CLIENTE", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Cotización #%s", q.Number), props.Text{
				Size:  10,
				Color: darkGray,
				Align: consts.Right,
			})
		})
	})

	customer := q.CustomerName
	if customer == "" {
		customer = "Cliente"
	}
	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(customer, props.Text{
				Size:  10,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(6, func() {
			m.Text("Fecha: "+q.Date.Format("02/01/2006"), props.Text{
				Size:  9,
				Color: mediumGray,
				Align: consts.Right,
			})
		})
	})

	if q.CustomerEmail != "" {
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text(q.CustomerEmail, props.Text{
					Size:  9,
					Color: mediumGray,
				})
			})
		})
	}

	m.Row(8, func() {})

	header := []string{"Código", "Producto", "Marca", "Medida", "Cantidad"}
	rows := make([][]string, 0, len(q.Lines))
	for _, l := range q.Lines {
		rows = append(rows, []string{l.Code, l.Name, l.Brand, l.Measure, fmt.Sprintf("%d", l.Quantity)})
	}
	m.TableList(header, rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      8,
			GridSizes: []uint{2, 4, 2, 2, 2},
			Style:     consts.Bold,
		},
		ContentProp: props.TableListContent{
			Size:      9,
			GridSizes: []uint{2, 4, 2, 2, 2},
		},
		Align:                consts.Left,
		HeaderContentSpace:   2,
		Line:                 true,
		AlternatedBackground: &color.Color{Red: 245, Green: 245, Blue: 240},
	})

	m.Row(8, func() {})

	m.Row(8, func() {
		m.Col(8, func() {})
		m.Col(2, func() {
			m.Text("Unidades", props.Text{
				Size:  12,
				Style: consts.Bold,
				Color: darkGray,
				Align: consts.Right,
			})
		})
		m.Col(2, func() {
			m.Text(fmt.Sprintf("%d", q.TotalUnits()), props.Text{
				Size:  12,
				Style: consts.Bold,
				Color: darkGray,
				Align: consts.Right,
			})
		})
	})

	m.Row(12, func() {})

	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("Precios y disponibilidad sujetos a confirmación por un asesor.", props.Text{
				Size:  8,
				Color: mediumGray,
			})
		})
	})

	buf, err := m.Output()
	if err != nil {
		zap.L().Error("failed to render quote PDF", zap.String("quote", q.Number), zap.Error(err))
		return nil, fmt.Errorf("render quote pdf: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}
