// Package scan implements the scan command for running pricing discovery
// from the command line.
package scan

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/pricescout/cmd/common"
	"github.com/jonesrussell/pricescout/internal/domain"
	"github.com/jonesrussell/pricescout/internal/output"
)

// errNoDomains is returned when neither arguments nor an input file
// provide any domains to scan.
var errNoDomains = errors.New("no domains to scan: pass domains as arguments or use --input")

// Command returns the scan command for scanning domains.
func Command() *cobra.Command {
	var inputFile string
	var outputFile string

	cmd := &cobra.Command{
		Use:   "scan [domains...]",
		Short: "Scan domains for pricing plans",
		Long: `Scan one or more domains for pricing pages and extract their plan
tiers, prices, and features. Domains come from the arguments or from the
first column of a CSV file passed with --input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, inputFile, outputFile)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "CSV file whose first column lists domains")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write results to a CSV file")

	return cmd
}

// runScan executes the scan and renders its results.
func runScan(cmd *cobra.Command, args []string, inputFile, outputFile string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	domains, err := collectDomains(args, inputFile)
	if err != nil {
		return err
	}
	if len(domains) == 0 {
		return errNoDomains
	}

	deps.Logger.Info("Starting scan", "domains", len(domains))

	scanner := deps.BuildScanner()
	results, summary := scanner.ProcessBatch(cmd.Context(), domains)

	if outputFile != "" {
		if writeErr := writeCSV(outputFile, results); writeErr != nil {
			return writeErr
		}
		deps.Logger.Info("Results written", "path", outputFile)
	}

	renderTable(cmd, results)
	renderSummary(cmd, summary)

	return nil
}

// collectDomains merges argument domains with the optional input CSV,
// arguments first.
func collectDomains(args []string, inputFile string) ([]string, error) {
	domains := make([]string, 0, len(args))
	for _, arg := range args {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			domains = append(domains, trimmed)
		}
	}

	if inputFile == "" {
		return domains, nil
	}

	file, err := os.Open(inputFile)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	fromFile, err := output.ParseDomains(file)
	if err != nil {
		return nil, fmt.Errorf("parse input file: %w", err)
	}

	return append(domains, fromFile...), nil
}

// writeCSV exports the results to the given path.
func writeCSV(path string, results []domain.DomainResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	if err := output.WriteResults(file, results); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	return nil
}

// renderTable prints one row per extracted plan record.
func renderTable(cmd *cobra.Command, results []domain.DomainResult) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Domain", "Plan", "Price", "Model", "Features", "Status"})

	for i := range results {
		result := &results[i]
		for j := range result.Plans {
			plan := &result.Plans[j]
			t.AppendRow(table.Row{
				plan.Domain,
				plan.PlanName,
				plan.Price,
				plan.PricingModel,
				truncateFeatures(plan.Features),
				string(result.Status),
			})
		}
	}

	t.Render()
}

// renderSummary prints the batch tally beneath the table.
func renderSummary(cmd *cobra.Command, summary domain.BatchSummary) {
	fmt.Fprintf(cmd.OutOrStdout(),
		"\nScanned %d domains: %d with pricing, %d without, %d errors\n",
		summary.Total, summary.Success, summary.NoPricing, summary.Error,
	)
}

// maxFeatureCell bounds the rendered feature column width.
const maxFeatureCell = 60

// truncateFeatures joins features for display, clipped to keep rows readable.
func truncateFeatures(features []string) string {
	joined := strings.Join(features, "; ")
	if len(joined) > maxFeatureCell {
		return joined[:maxFeatureCell-3] + "..."
	}
	return joined
}
