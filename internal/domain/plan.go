// Package domain provides domain models used across the application.
package domain

import "time"

// Status classifies the outcome of processing one input domain.
type Status string

const (
	// StatusSuccess means at least one genuine plan was extracted.
	StatusSuccess Status = "success"
	// StatusNoPricing means the domain was reachable but no plan was found.
	StatusNoPricing Status = "no_pricing"
	// StatusError means the domain could not be resolved or fetched at all.
	StatusError Status = "error"
)

// Sentinel field values used when no genuine plan could be extracted.
const (
	// UnknownPlanName is the plan name used when no keyword matched.
	UnknownPlanName = "Unknown Plan"
	// UnknownPricingModel is the cadence label used when no cadence matched.
	UnknownPricingModel = "Unknown"
	// NoPricingPlanName is the sentinel plan name for reachable domains without pricing.
	NoPricingPlanName = "No pricing found"
	// ErrorPlanName is the sentinel plan name for unreachable domains.
	ErrorPlanName = "Error"
	// SentinelPrice is the price carried by sentinel records.
	SentinelPrice = "N/A"
)

// PlanRecord represents one detected pricing plan occurrence.
type PlanRecord struct {
	// Hostname the plan was extracted for, lowercase, no scheme or path
	Domain string `json:"domain"`
	// Detected plan name, or UnknownPlanName if no keyword matched
	PlanName string `json:"plan_name"`
	// Raw matched price text (e.g. "$29.99"); empty if no pattern matched
	Price string `json:"price"`
	// Billing cadence label (e.g. "Monthly"), or UnknownPricingModel
	PricingModel string `json:"pricing_model"`
	// Feature lines found near the plan, bounded in count and length
	Features []string `json:"features,omitempty"`
	// Absolute URL of the document the record was extracted from
	SourceURL string `json:"source_url"`
	// Capture time, set once per fetch
	ScrapedAt time.Time `json:"scraped_at"`
}

// HasSignal reports whether the record carries any extraction signal.
// Records without signal are never emitted (sentinels excepted).
func (p *PlanRecord) HasSignal() bool {
	return p.Price != "" || p.PlanName != UnknownPlanName || len(p.Features) > 0
}

// IsSentinel reports whether the record is a synthetic substitute rather
// than a genuine extraction.
func (p *PlanRecord) IsSentinel() bool {
	return p.PlanName == NoPricingPlanName || p.PlanName == ErrorPlanName
}

// NoPricingSentinel returns the record substituted when a reachable domain
// yields no genuine plan, preserving the non-empty plans invariant.
func NoPricingSentinel(host, sourceURL string, scrapedAt time.Time) PlanRecord {
	return PlanRecord{
		Domain:       host,
		PlanName:     NoPricingPlanName,
		Price:        SentinelPrice,
		PricingModel: UnknownPricingModel,
		SourceURL:    sourceURL,
		ScrapedAt:    scrapedAt,
	}
}

// ErrorSentinel returns the record substituted when a domain could not be
// fetched at all.
func ErrorSentinel(host, sourceURL string, scrapedAt time.Time) PlanRecord {
	return PlanRecord{
		Domain:       host,
		PlanName:     ErrorPlanName,
		Price:        SentinelPrice,
		PricingModel: UnknownPricingModel,
		SourceURL:    sourceURL,
		ScrapedAt:    scrapedAt,
	}
}

// DomainResult aggregates all plans extracted for one input domain.
type DomainResult struct {
	// Hostname derived from the input, lowercase
	Domain string `json:"domain"`
	// Resolved base URL the scan started from
	URL string `json:"url"`
	// Capture time for the whole domain scan
	ScrapedAt time.Time `json:"scraped_at"`
	// Extracted plans in discovery order; never empty (sentinel substitution)
	Plans []PlanRecord `json:"plans"`
	// Outcome classification
	Status Status `json:"status"`
	// Failure detail, present only when Status is StatusError
	ErrorMessage string `json:"error_message,omitempty"`
}

// BatchSummary tallies per-domain statuses across one batch.
// Total always equals Success + NoPricing + Error.
type BatchSummary struct {
	Total     int `json:"total"`
	Success   int `json:"success"`
	NoPricing int `json:"no_pricing"`
	Error     int `json:"error"`
}

// Add counts one result into the summary.
func (s *BatchSummary) Add(r *DomainResult) {
	s.Total++
	switch r.Status {
	case StatusSuccess:
		s.Success++
	case StatusNoPricing:
		s.NoPricing++
	case StatusError:
		s.Error++
	}
}
