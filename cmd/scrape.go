package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/output"
	"github.com/gaurav-prasanna/legispipe/core/pipeline"
	"github.com/gaurav-prasanna/legispipe/core/render"
	"github.com/gaurav-prasanna/legispipe/jurisdictions"
)

var (
	flagJurisdictions []string
	flagTerm          string
	flagChambers      []string
	flagLatestOnly    bool
	flagCheckSessions bool
	flagFormat        string
	flagOutputDir     string
	flagParallel      int
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Extract committees and legislators for one or more jurisdictions",
	Long: `Scrape validates the term against the jurisdiction metadata, extracts every
committee and legislator the jurisdiction publishes, and writes one JSON file
per entity under <output_dir>/<jurisdiction>/. Entities that cannot be built
are skipped and reported as warnings.

Examples:
  legispipe scrape --jurisdiction id --term 2011-2012
  legispipe scrape -j ny -j id --term 2011-2012 --chamber upper --format markdown
  legispipe scrape -j ne --check_sessions --output_dir ./data`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringSliceVarP(&flagJurisdictions, "jurisdiction", "j", nil, "Jurisdiction abbreviation (repeatable)")
	scrapeCmd.Flags().StringVar(&flagTerm, "term", "", "Term to scrape (default: latest term of a single jurisdiction)")
	scrapeCmd.Flags().StringSliceVar(&flagChambers, "chamber", nil, "Chamber: upper, lower or joint (repeatable, default: all)")
	scrapeCmd.Flags().BoolVar(&flagLatestOnly, "latest_only", false, "Refuse any term but the latest")
	scrapeCmd.Flags().BoolVar(&flagCheckSessions, "check_sessions", false, "Warn about site sessions missing from metadata")
	scrapeCmd.Flags().StringVar(&flagFormat, "format", "", "Also write a roster: markdown, json or pdf")
	scrapeCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	scrapeCmd.Flags().IntVar(&flagParallel, "parallel", 4, "Jurisdictions extracted at once")

	_ = scrapeCmd.MarkFlagRequired("jurisdiction")
}

func runScrape(cmd *cobra.Command, args []string) error {
	meta, err := loadMetadata()
	if err != nil {
		return err
	}

	term := flagTerm
	if term == "" {
		if len(flagJurisdictions) != 1 {
			return fmt.Errorf("--term is required with more than one jurisdiction")
		}
		j, err := meta.Jurisdiction(flagJurisdictions[0])
		if err != nil {
			return err
		}
		term = j.LatestTerm().Name
	}

	chambers := make([]core.Chamber, 0, len(flagChambers))
	for _, s := range flagChambers {
		c, ok := core.ParseChamber(s)
		if !ok {
			return fmt.Errorf("invalid chamber %q (want upper, lower or joint)", s)
		}
		chambers = append(chambers, c)
	}

	var renderer render.Renderer
	if flagFormat != "" {
		if renderer, err = render.ForFormat(flagFormat); err != nil {
			return err
		}
	}

	outputDir := flagOutputDir
	if outputDir == "" {
		if outputDir, err = os.Getwd(); err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
	}
	writer, err := output.New(outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	fetcher, err := newFetcher()
	if err != nil {
		return err
	}

	p := pipeline.New(jurisdictions.Registry(), fetcher, writer,
		pipeline.WithMetadata(meta),
		pipeline.WithLogger(log.Logger),
		pipeline.WithParallelism(flagParallel),
	)
	report, err := p.Run(context.Background(), pipeline.Request{
		Jurisdictions: flagJurisdictions,
		Term:          term,
		Chambers:      chambers,
		LatestOnly:    flagLatestOnly,
		CheckSessions: flagCheckSessions,
	})
	if report != nil {
		printReport(report)
	}
	if err != nil {
		return err
	}

	if renderer != nil {
		for _, res := range report.Results {
			data, err := renderer.Render(writer.Snapshot(res.Jurisdiction))
			if err != nil {
				return fmt.Errorf("rendering %s roster: %w", res.Jurisdiction, err)
			}
			path, err := writer.WriteFile(res.Jurisdiction+"_roster"+renderer.Extension(), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
		}
	}
	return nil
}

func printReport(report *pipeline.Report) {
	for _, res := range report.Results {
		fmt.Fprintf(os.Stdout, "✓ %s: %d committees, %d legislators\n", res.Jurisdiction, res.Committees, res.Legislators)
		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "  ✗ %v\n", w)
		}
	}
	if n := report.Warnings(); n > 0 {
		fmt.Fprintf(os.Stderr, "\n%d entities or documents skipped\n", n)
	}
}
