package extractor_test

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pricescout/internal/domain"
	"github.com/jonesrussell/pricescout/internal/extractor"
)

const testSourceURL = "https://example.com/pricing"

var testScrapedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func parseDoc(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<html><head></head><body>" + body + "</body></html>",
	))
	require.NoError(t, err)
	return doc
}

func extract(t *testing.T, body string) []domain.PlanRecord {
	t.Helper()
	return extractor.New().Extract(parseDoc(t, body), testSourceURL, testScrapedAt)
}

func TestExtractStructuralCandidate(t *testing.T) {
	records := extract(t, `<div class="pricing-card">Pro Plan $29.99 per month</div>`)

	require.Len(t, records, 1)
	assert.Equal(t, "example.com", records[0].Domain)
	assert.Equal(t, "Pro", records[0].PlanName)
	assert.Equal(t, "$29.99", records[0].Price)
	assert.Equal(t, "Monthly", records[0].PricingModel)
	assert.Empty(t, records[0].Features)
	assert.Equal(t, testSourceURL, records[0].SourceURL)
	assert.Equal(t, testScrapedAt, records[0].ScrapedAt)
}

func TestExtractNestedDuplicatesCollapsed(t *testing.T) {
	records := extract(t, `
		<section class="pricing">
			<div class="plan-card">Basic plan $9.99 per month</div>
		</section>`)

	// The section and the inner card yield the same plan fields.
	require.Len(t, records, 1)
	assert.Equal(t, "Basic", records[0].PlanName)
	assert.Equal(t, "$9.99", records[0].Price)
}

func TestExtractMultiplePlans(t *testing.T) {
	records := extract(t, `
		<div class="plan-card">Starter tier at $9.99 per month</div>
		<div class="plan-card">Business tier at $49.99 per month</div>`)

	require.Len(t, records, 2)
	assert.Equal(t, "Starter", records[0].PlanName)
	assert.Equal(t, "Business", records[1].PlanName)
}

func TestExtractKeywordTierWithoutStructure(t *testing.T) {
	// No class, id, or landmark element matches the structural catalog.
	records := extract(t, `<p>Premium membership for $19.99 per month</p>`)

	require.NotEmpty(t, records)
	assert.Equal(t, "Premium", records[0].PlanName)
	assert.Equal(t, "$19.99", records[0].Price)
	assert.Equal(t, "Monthly", records[0].PricingModel)
}

func TestExtractLineScanFallback(t *testing.T) {
	// The structural match carries no signal, forcing the line scan over
	// the whole document text.
	records := extract(t, `
		<footer>All rights reserved worldwide since 2004</footer>
		<p>x</p>
		<p>Premium upgrade costs $99 per year for everyone</p>`)

	require.NotEmpty(t, records)
	assert.Equal(t, "Premium", records[0].PlanName)
	assert.Equal(t, "$99", records[0].Price)
	assert.Equal(t, "Yearly", records[0].PricingModel)
}

func TestExtractNoSignalYieldsNothing(t *testing.T) {
	records := extract(t, `
		<div class="content">hello world, cooking recipes and kitchen ideas for the weekend</div>`)

	assert.Empty(t, records)
}

func TestExtractLengthGate(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		records := extract(t, `<div class="price">$9</div>`)
		assert.Empty(t, records)
	})

	t.Run("too long", func(t *testing.T) {
		filler := strings.Repeat("lorem ipsum dolor sit amet consectetur ", 100)
		records := extract(t, `<div class="pricing">`+filler+`</div>`)
		assert.Empty(t, records)
	})
}

func TestExtractScriptAndStyleStripped(t *testing.T) {
	records := extract(t, `
		<script>var plan = "Pro $29.99 per month";</script>
		<style>.pricing { color: red; }</style>
		<div>nothing relevant rendered on this page at all</div>`)

	assert.Empty(t, records)
}

func TestExtractFeatures(t *testing.T) {
	records := extract(t, `<div class="plan-card">Premium Plan
$49.99 per month
✓ Unlimited projects
✓ Priority support
✓ Advanced analytics</div>`)

	require.Len(t, records, 1)
	assert.Equal(t, "Premium", records[0].PlanName)
	assert.Contains(t, records[0].Features, "Unlimited projects")
	assert.Contains(t, records[0].Features, "Priority support")
	assert.Contains(t, records[0].Features, "Advanced analytics")
}

func TestExtractFeaturesRequireDelimiter(t *testing.T) {
	records := extract(t, `<div class="plan-card">Pro tier includes many things for $29.99 per month</div>`)

	require.Len(t, records, 1)
	assert.Empty(t, records[0].Features, "undivided text must not become features")
}

func TestExtractFeaturesCapped(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<div class="plan-card">Enterprise plan $199 per month`)
	for i := 0; i < 12; i++ {
		sb.WriteString("\n✓ Included capability number ")
		sb.WriteString(strings.Repeat("x", i+1))
	}
	sb.WriteString(`</div>`)

	records := extract(t, sb.String())

	require.Len(t, records, 1)
	assert.LessOrEqual(t, len(records[0].Features), 8)
}

func TestExtractUnknownFieldsWhenPartialSignal(t *testing.T) {
	// A price without any keyword still carries signal; the plan name and
	// cadence fall back to their unknown labels.
	records := extract(t, `<div class="tier-box">Everything included for just $5.00 today</div>`)

	require.Len(t, records, 1)
	assert.Equal(t, domain.UnknownPlanName, records[0].PlanName)
	assert.Equal(t, "$5.00", records[0].Price)
	assert.Equal(t, domain.UnknownPricingModel, records[0].PricingModel)
}
