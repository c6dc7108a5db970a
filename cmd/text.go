package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/extract"
	"github.com/gaurav-prasanna/legispipe/core/links"
	"github.com/gaurav-prasanna/legispipe/core/output"
	"github.com/gaurav-prasanna/legispipe/jurisdictions"
)

var flagTextOutputDir string

var textCmd = &cobra.Command{
	Use:   "text <jurisdiction> <url>",
	Short: "Extract the full text of a bill document",
	Long: `Text fetches one bill document (HTML or PDF) and prints the plain text the
jurisdiction's rules extract from it.

Examples:
  legispipe text ne http://nebraskalegislature.gov/FloorDocs/102/PDF/Intro/LR1.pdf
  legispipe text de http://legis.delaware.gov/LIS/lis146.nsf/vwLegislation/HB+1 --output_dir ./text`,
	Args: cobra.ExactArgs(2),
	RunE: runText,
}

func init() {
	rootCmd.AddCommand(textCmd)
	textCmd.Flags().StringVar(&flagTextOutputDir, "output_dir", "", "Write <host_path>.txt here instead of stdout")
}

func runText(cmd *cobra.Command, args []string) error {
	rawURL := args[1]
	if !links.IsAbsolute(rawURL) {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. http://legis.delaware.gov/)", rawURL)
	}

	adapter, err := jurisdictions.Registry().Lookup(args[0])
	if err != nil {
		return err
	}
	te, ok := adapter.(extract.TextExtractor)
	if !ok {
		return fmt.Errorf("%s full text: %w", adapter.ID(), core.ErrUnsupported)
	}

	fetcher, err := newFetcher()
	if err != nil {
		return err
	}
	res, err := fetcher.Fetch(context.Background(), rawURL)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	doc := core.Document{URL: res.URL, MimeType: res.MimeType}
	if doc.MimeType == "application/octet-stream" && links.IsPDF(res.URL) {
		doc.MimeType = "application/pdf"
	}
	text, err := te.Text(doc, res.Body)
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}

	if flagTextOutputDir == "" {
		fmt.Fprintln(os.Stdout, text)
		return nil
	}
	writer, err := output.New(flagTextOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.WriteFile(output.FilenameFromURL(rawURL)+".txt", []byte(text+"\n"))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}
