// catalogctl queries the storefront catalog straight from the upstream API.
//
// Usage:
//
//	catalogctl filter --category "Ceramicas y Porcelanatos" --measure 60x60
//	catalogctl search taladro
//	catalogctl search -i
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/guelo0987/gigante-storefront/cache"
	"github.com/guelo0987/gigante-storefront/config"
	"github.com/guelo0987/gigante-storefront/services"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
)

type cliServices struct {
	catalog *services.CatalogService
	search  *services.SearchService
}

func newCLIServices(cfg config.AppConfig) cliServices {
	backend := services.NewBackendClient(cfg.APIBaseURL, cfg.UpstreamTimeout, nil)
	catalogSvc := services.NewCatalogService(backend, cfg.CatalogTTL, services.NewImageResolver(cfg.ImageBaseURL), nil)
	return cliServices{
		catalog: catalogSvc,
		search:  services.NewSearchService(catalogSvc, cache.NewSearchCache(nil, time.Hour), nil),
	}
}

func newRootCommand() *cobra.Command {
	var (
		apiURL  string
		verbose bool
		svc     cliServices
	)

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Browse and search the storefront catalog from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if apiURL != "" {
				cfg.APIBaseURL = strings.TrimRight(apiURL, "/") + "/"
			}

			level := "warn"
			if verbose {
				level = "debug"
			}
			if _, err := config.NewLogger(level); err != nil {
				return err
			}

			svc = newCLIServices(cfg)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "upstream API root (defaults to API_BASE_URL)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log upstream calls")

	root.AddCommand(
		newFilterCommand(func() *services.CatalogService { return svc.catalog }),
		newSearchCommand(func() *services.SearchService { return svc.search }),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "catalogctl %s (%s)\n", version, commit)
			},
		},
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	_ = zap.L().Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
