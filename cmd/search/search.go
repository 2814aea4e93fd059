// Package search implements the one-shot search command.
package search

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/ukdirectory/internal/config"
	"github.com/jonesrussell/ukdirectory/internal/domain"
	"github.com/jonesrussell/ukdirectory/internal/logger"
	"github.com/jonesrussell/ukdirectory/internal/scraper"
	"github.com/jonesrussell/ukdirectory/internal/search"
)

const (
	defaultMaxPages = 2

	nameColumnWidth     = 40
	industryColumnWidth = 30
)

// Command returns the search command.
func Command() *cobra.Command {
	var (
		query    string
		location string
		sources  []string
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search UK business directories from the command line",
		Long: `Search runs a one-shot directory search and prints the
deduplicated results as a table.

Examples:
  # Search the default sources
  ukdirectory search -q plumber -l leeds

  # Search specific sources with deeper pagination
  ukdirectory search -q "indian restaurant" -l manchester --sources yell,yelp -p 3
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd.Context(), query, location, sources, maxPages)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Business type or name to search for (required)")
	cmd.Flags().StringVarP(&location, "location", "l", "", "UK town, city, or postcode (required)")
	cmd.Flags().StringSliceVar(&sources, "sources", nil, "Directories to search (default yell,freeindex)")
	cmd.Flags().IntVarP(&maxPages, "pages", "p", defaultMaxPages, "Result pages to fetch per directory")

	cobra.CheckErr(cmd.MarkFlagRequired("query"))
	cobra.CheckErr(cmd.MarkFlagRequired("location"))

	return cmd
}

func runSearch(ctx context.Context, query, location string, sources []string, maxPages int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		Development: cfg.Logger.Development,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	client := scraper.NewClient(cfg.Scraper.RequestTimeout, cfg.Scraper.UserAgent)
	adapters := scraper.DefaultAdapters(scraper.Options{
		Client:   client,
		DelayMin: cfg.Scraper.DelayMin,
		DelayMax: cfg.Scraper.DelayMax,
		Logger:   log,
	})

	orchestrator := search.NewOrchestrator(adapters, log)
	listings := orchestrator.Search(ctx, query, location, sources, maxPages)

	if len(listings) == 0 {
		fmt.Fprintf(os.Stdout, "No results found for %q in %q\n", query, location)
		return nil
	}

	renderListings(listings, query, location)
	return nil
}

func renderListings(listings []*domain.Listing, query, location string) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: nameColumnWidth},
		{Number: 6, WidthMax: industryColumnWidth},
	})

	t.AppendHeader(table.Row{"#", "Name", "Phone", "Postcode", "Rating", "Industry", "Source"})

	for i, l := range listings {
		t.AppendRow(table.Row{
			i + 1,
			l.Name,
			orNA(l.Phone),
			orNA(l.Postcode),
			orNA(l.Rating),
			orNA(l.Industry),
			l.Source,
		})
	}

	t.AppendFooter(table.Row{"Total", len(listings), "", "", "", "", fmt.Sprintf("%s in %s", query, location)})
	t.Render()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
