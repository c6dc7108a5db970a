// Package cmd implements the CLI commands for LegisPipe using Cobra.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/legispipe/core/fetch"
	"github.com/gaurav-prasanna/legispipe/core/metadata"
)

const cacheSize = 256

var (
	flagVerbose  bool
	flagMetadata string
)

var rootCmd = &cobra.Command{
	Use:   "legispipe",
	Short: "LegisPipe: extract committees, legislators and bill text from legislature websites",
	Long: `LegisPipe fetches state legislature web pages and PDFs and turns them into
structured committee and legislator records, session lists and bill full text.

Usage:
  legispipe scrape --jurisdiction id --term 2011-2012 [flags]
  legispipe sessions <jurisdiction>
  legispipe text <jurisdiction> <url>`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.TimeFieldFormat = time.RFC3339
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		if flagVerbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every fetch")
	rootCmd.PersistentFlags().StringVar(&flagMetadata, "metadata", "", "Jurisdiction metadata YAML (default: built-in table)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadMetadata() (*metadata.Table, error) {
	if flagMetadata == "" {
		return metadata.Default()
	}
	return metadata.LoadFile(flagMetadata)
}

func newFetcher() (*fetch.Cached, error) {
	return fetch.NewCached(fetch.New(), cacheSize)
}
