package output_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pricescout/internal/domain"
	"github.com/jonesrussell/pricescout/internal/output"
)

func TestParseDomains(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain list",
			input: "example.com\nother.org\n",
			want:  []string{"example.com", "other.org"},
		},
		{
			name:  "header row skipped",
			input: "Domain\nexample.com\n",
			want:  []string{"example.com"},
		},
		{
			name:  "first column only",
			input: "example.com,extra,columns\nother.org,more\n",
			want:  []string{"example.com", "other.org"},
		},
		{
			name:  "blank lines skipped",
			input: "example.com\n\n  \nother.org\n",
			want:  []string{"example.com", "other.org"},
		},
		{
			name:  "header only in first row",
			input: "example.com\ndomain.net\n",
			want:  []string{"example.com", "domain.net"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := output.ParseDomains(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteResults(t *testing.T) {
	scrapedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	results := []domain.DomainResult{
		{
			Domain: "example.com",
			Status: domain.StatusSuccess,
			Plans: []domain.PlanRecord{
				{
					Domain:       "example.com",
					PlanName:     "Pro",
					Price:        "$29.99",
					PricingModel: "Monthly",
					Features:     []string{"Unlimited projects", "Priority support"},
					SourceURL:    "https://example.com/pricing",
					ScrapedAt:    scrapedAt,
				},
				{
					Domain:       "example.com",
					PlanName:     "Basic",
					Price:        "$9.99",
					PricingModel: "Monthly",
					SourceURL:    "https://example.com/pricing",
					ScrapedAt:    scrapedAt,
				},
			},
		},
		{
			Domain: "down.invalid",
			Status: domain.StatusError,
			Plans: []domain.PlanRecord{
				domain.ErrorSentinel("down.invalid", "https://down.invalid", scrapedAt),
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, output.WriteResults(&buf, results))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{
		"Domain", "Plan Name", "Price", "Features / Pricing Model", "Source URL", "Scraped At",
	}, rows[0])

	assert.Equal(t, []string{
		"example.com", "Pro", "$29.99", "Unlimited projects; Priority support",
		"https://example.com/pricing", "2026-08-01T12:00:00Z",
	}, rows[1])

	// No features falls back to the pricing model.
	assert.Equal(t, "Monthly", rows[2][3])

	// Sentinel rows are exported like any other record.
	assert.Equal(t, "Error", rows[3][1])
	assert.Equal(t, "N/A", rows[3][2])
}

func TestWriteResultsQuoting(t *testing.T) {
	scrapedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	results := []domain.DomainResult{{
		Domain: "example.com",
		Plans: []domain.PlanRecord{{
			Domain:    "example.com",
			PlanName:  `Pro, "Best Value"`,
			Price:     "$29.99",
			SourceURL: "https://example.com",
			ScrapedAt: scrapedAt,
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, output.WriteResults(&buf, results))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, `Pro, "Best Value"`, rows[1][1])
}

func TestWriteResultsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.WriteResults(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
