package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/extract"
	"github.com/gaurav-prasanna/legispipe/jurisdictions"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions <jurisdiction>",
	Short: "List the sessions a jurisdiction's site offers and check them against metadata",
	Long: `Sessions lists the session names the legislature's site publishes. Names that
are neither a known session nor explicitly ignored in the metadata are flagged,
and the command fails so the metadata can be updated.

Example:
  legispipe sessions nd`,
	Args: cobra.ExactArgs(1),
	RunE: runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	adapter, err := jurisdictions.Registry().Lookup(args[0])
	if err != nil {
		return err
	}
	lister, ok := adapter.(extract.SessionLister)
	if !ok {
		return fmt.Errorf("%s session list: %w", adapter.ID(), core.ErrUnsupported)
	}
	meta, err := loadMetadata()
	if err != nil {
		return err
	}
	j, err := meta.Jurisdiction(adapter.ID())
	if err != nil {
		return err
	}

	fetcher, err := newFetcher()
	if err != nil {
		return err
	}
	env := extract.NewEnv(fetcher, log.Logger.With().Str("jurisdiction", adapter.ID()).Logger())
	scraped, err := lister.Sessions(context.Background(), env)
	if err != nil {
		return err
	}

	unknown := map[string]bool{}
	for _, name := range j.UnknownSessions(scraped) {
		unknown[name] = true
	}
	for _, name := range scraped {
		if unknown[name] {
			fmt.Fprintf(os.Stdout, "✗ %s (not in metadata)\n", name)
		} else {
			fmt.Fprintf(os.Stdout, "✓ %s\n", name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%d sessions missing from %s metadata", len(unknown), adapter.ID())
	}
	return nil
}
