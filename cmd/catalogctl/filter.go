package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/guelo0987/gigante-storefront/catalog"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/services"
)

type filterOptions struct {
	category      string
	search        string
	subcategories []string
	brands        []string
	ceramicBrands []string
	measures      []string
	limit         int
	asJSON        bool
}

// state parses the flags the same way the HTTP handler parses a query string.
func (o filterOptions) state() catalog.FilterState {
	values := url.Values{}
	if o.category != "" {
		values.Set(catalog.ParamCategory, o.category)
	}
	if o.search != "" {
		values.Set(catalog.ParamSearch, o.search)
	}
	values[catalog.ParamSubcategory] = o.subcategories
	values[catalog.ParamBrand] = o.brands
	values[catalog.ParamCeramicBrand] = o.ceramicBrands
	values[catalog.ParamMeasure] = o.measures
	return catalog.FilterStateFromQuery(values)
}

func newFilterCommand(catalogSvc func() *services.CatalogService) *cobra.Command {
	var opts filterOptions

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List catalog products matching a filter selection",
		Example: `  catalogctl filter --category Herramientas --brand DeWalt --brand Stanley
  catalogctl filter --category "Ceramicas y Porcelanatos" --measure 60x60 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := catalogSvc()
			result, version, err := svc.Filter(cmd.Context(), opts.state())
			if err != nil {
				return fmt.Errorf("catalog unavailable: %w", err)
			}

			products := svc.ToStorefrontList(result.Results)
			if opts.limit > 0 && len(products) > opts.limit {
				products = products[:opts.limit]
			}

			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), models.CatalogPage{
					Products:      products,
					ActiveFilters: result.ActiveFilters,
					Category:      opts.state().Category,
					Ceramics:      opts.state().Ceramics(),
					Version:       version,
				})
			}

			out := cmd.OutOrStdout()
			if len(result.ActiveFilters) > 0 {
				fmt.Fprintf(out, "Filters: %s\n", strings.Join(result.ActiveFilters, ", "))
			}
			fmt.Fprintf(out, "%d of %d products\n\n", len(products), len(result.Results))
			return writeProducts(out, products)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.category, "category", "", "category name")
	f.StringVar(&opts.search, "search", "", "search term (name or category)")
	f.StringSliceVar(&opts.subcategories, "subcategory", nil, "subcategory names")
	f.StringSliceVar(&opts.brands, "brand", nil, "brands")
	f.StringSliceVar(&opts.ceramicBrands, "ceramic-brand", nil, "ceramic brands")
	f.StringSliceVar(&opts.measures, "measure", nil, "ceramic measures")
	f.IntVar(&opts.limit, "limit", 0, "maximum rows to print")
	f.BoolVar(&opts.asJSON, "json", false, "print JSON")
	return cmd
}

func writeProducts(w io.Writer, products []models.StorefrontProduct) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tBRAND\tMEASURE\tSTOCK\tCATEGORY")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", p.Code, p.Name, p.Brand, p.Measure, p.Stock, p.Category)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
