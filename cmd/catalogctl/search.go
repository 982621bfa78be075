package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/guelo0987/gigante-storefront/catalog"
	"github.com/guelo0987/gigante-storefront/debounce"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/services"
)

type searchFunc func(ctx context.Context, query string) (models.SearchResults, error)

func newSearchCommand(searchSvc func() *services.SearchService) *cobra.Command {
	var (
		interactive bool
		delay       time.Duration
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Rank products for a type-ahead query",
		Example: `  catalogctl search taladro
  catalogctl search -i --delay 300ms`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			search := searchSvc().Search

			if interactive {
				fmt.Fprintln(cmd.ErrOrStderr(), "Type a query per line, Ctrl-D to quit.")
				return runInteractive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), search, delay)
			}
			if len(args) == 0 {
				return fmt.Errorf("a query is required unless -i is set")
			}

			results, err := search(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("catalog unavailable: %w", err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			return writeSearchResults(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "search as you type, one query per line")
	cmd.Flags().DurationVar(&delay, "delay", debounce.DefaultDelay, "quiet period before an interactive search runs")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// runInteractive reads one query per line and searches only once input has
// been quiet for delay. Results of a superseded query are never printed.
// At end of input the last query is searched if it has not been shown yet.
func runInteractive(ctx context.Context, in io.Reader, out io.Writer, search searchFunc, delay time.Duration) error {
	d := debounce.New(delay)

	var (
		mu          sync.Mutex
		latest      string
		lastPrinted string
		printed     bool

		// searching serializes searches and output
		searching sync.Mutex
	)

	show := func(query string, results models.SearchResults, err error) {
		if err != nil {
			fmt.Fprintf(out, "> %s\n  catalog unavailable: %v\n", query, err)
		} else {
			fmt.Fprintf(out, "> %s\n", query)
			_ = writeSearchResults(out, results)
		}
		mu.Lock()
		lastPrinted, printed = query, true
		mu.Unlock()
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())

		mu.Lock()
		latest = query
		mu.Unlock()

		d.Trigger(func(token debounce.Token) {
			searching.Lock()
			defer searching.Unlock()

			mu.Lock()
			q := latest
			mu.Unlock()

			results, err := search(ctx, q)
			if d.Current(token) {
				show(q, results, err)
			}
		})

		if ctx.Err() != nil {
			break
		}
	}

	d.Stop()
	searching.Lock()
	defer searching.Unlock()

	mu.Lock()
	q, done := latest, printed && lastPrinted == latest
	mu.Unlock()
	if !done && q != "" && ctx.Err() == nil {
		results, err := search(ctx, q)
		show(q, results, err)
	}
	return scanner.Err()
}

func writeSearchResults(w io.Writer, results models.SearchResults) error {
	if catalog.QueryTooShort(results.Query) {
		_, err := fmt.Fprintln(w, "  (type at least 2 characters)")
		return err
	}
	if len(results.Results) == 0 {
		_, err := fmt.Fprintln(w, "  no matches")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range results.Results {
		stock := "agotado"
		if r.InStock {
			stock = "disponible"
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\n", r.Relevance, r.Code, r.Name, r.Brand, stock)
	}
	return tw.Flush()
}
