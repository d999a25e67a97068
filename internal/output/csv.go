// Package output implements the CSV import and export contracts: domain
// lists come in as the first column of a CSV, and plan records go out one
// row per record.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonesrussell/pricescout/internal/domain"
)

// featureSeparator joins feature lines into the export's single column.
const featureSeparator = "; "

// exportHeader is the column layout of the plan export.
var exportHeader = []string{
	"Domain", "Plan Name", "Price", "Features / Pricing Model", "Source URL", "Scraped At",
}

// ParseDomains reads candidate domains from CSV input: the first column of
// each line is a domain, blank lines are ignored, and a leading "domain"
// header row is skipped.
func ParseDomains(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var domains []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if len(record) == 0 {
			continue
		}

		candidate := strings.TrimSpace(record[0])
		if candidate == "" {
			continue
		}
		if len(domains) == 0 && strings.EqualFold(candidate, "domain") {
			continue
		}

		domains = append(domains, candidate)
	}

	return domains, nil
}

// WriteResults exports all plan records across the results, one row per
// record. Text fields containing separators are quoted by encoding/csv.
func WriteResults(w io.Writer, results []domain.DomainResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i := range results {
		for j := range results[i].Plans {
			if err := writer.Write(recordRow(&results[i].Plans[j])); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

// recordRow renders one plan record as an export row. The combined column
// carries the feature list when present, otherwise the pricing model.
func recordRow(record *domain.PlanRecord) []string {
	featuresOrModel := record.PricingModel
	if len(record.Features) > 0 {
		featuresOrModel = strings.Join(record.Features, featureSeparator)
	}

	return []string{
		record.Domain,
		record.PlanName,
		record.Price,
		featuresOrModel,
		record.SourceURL,
		record.ScrapedAt.Format(time.RFC3339),
	}
}
