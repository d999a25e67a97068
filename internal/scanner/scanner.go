// Package scanner orchestrates pricing discovery across domains: it
// normalizes inputs, drives the locator and extractor over each candidate
// URL, classifies per-domain outcomes, and tallies batch summaries.
//
// Domains are processed strictly sequentially, and candidate URLs within a
// domain are fetched sequentially, keeping per-site request pacing
// predictable. Failures are contained at the narrowest scope: a failed
// candidate fetch is skipped, a failed domain becomes an error result, and
// the batch always yields one result per submitted domain.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/pricescout/internal/config"
	"github.com/jonesrussell/pricescout/internal/domain"
	"github.com/jonesrussell/pricescout/internal/fetch"
	"github.com/jonesrussell/pricescout/internal/logger"
)

// errEmptyDomain is returned when an input normalizes to nothing usable.
var errEmptyDomain = errors.New("empty domain")

// Locator produces candidate pricing URLs for a base URL.
type Locator interface {
	Locate(ctx context.Context, baseURL string) []string
}

// Fetcher fetches a URL as a parsed document.
type Fetcher interface {
	Get(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// Extractor extracts plan records from a parsed document.
type Extractor interface {
	Extract(doc *goquery.Document, sourceURL string, scrapedAt time.Time) []domain.PlanRecord
}

// Scanner processes domains into DomainResults.
type Scanner struct {
	locator       Locator
	fetcher       Fetcher
	extractor     Extractor
	log           logger.Interface
	maxCandidates int
}

// New creates a scanner.
func New(
	loc Locator,
	fetcher Fetcher,
	ext Extractor,
	log logger.Interface,
	cfg config.ScannerConfig,
) *Scanner {
	return &Scanner{
		locator:       loc,
		fetcher:       fetcher,
		extractor:     ext,
		log:           log,
		maxCandidates: cfg.MaxCandidates,
	}
}

// Process scans one input domain and returns its complete result. The
// input may be a bare hostname or an absolute URL.
func (s *Scanner) Process(ctx context.Context, input string) domain.DomainResult {
	scrapedAt := time.Now().UTC()

	baseURL, host, err := normalizeInput(input)
	if err != nil {
		return errorResult(strings.TrimSpace(input), baseURL, scrapedAt, err)
	}

	candidates := s.locator.Locate(ctx, baseURL)
	reachable := len(candidates) > 0

	if len(candidates) == 0 {
		candidates = []string{baseURL}
	}
	if len(candidates) > s.maxCandidates {
		candidates = candidates[:s.maxCandidates]
	}

	plans, fetchedAny, lastErr := s.scanCandidates(ctx, candidates, scrapedAt)
	reachable = reachable || fetchedAny

	return s.classify(host, baseURL, scrapedAt, plans, reachable, lastErr)
}

// ProcessBatch scans domains strictly sequentially, preserving input order
// in the output, and tallies a summary over the per-domain statuses.
func (s *Scanner) ProcessBatch(ctx context.Context, inputs []string) ([]domain.DomainResult, domain.BatchSummary) {
	results := make([]domain.DomainResult, 0, len(inputs))

	var summary domain.BatchSummary
	for _, input := range inputs {
		result := s.Process(ctx, input)
		summary.Add(&result)
		results = append(results, result)

		s.log.Info("domain processed",
			"domain", result.Domain,
			"status", string(result.Status),
			"plans", len(result.Plans),
		)
	}

	return results, summary
}

// scanCandidates fetches each candidate URL sequentially and accumulates
// extracted plans. A fetch or extraction failure on one candidate is
// logged and skipped; it never aborts the remaining candidates.
func (s *Scanner) scanCandidates(
	ctx context.Context,
	candidates []string,
	scrapedAt time.Time,
) (plans []domain.PlanRecord, fetchedAny bool, lastErr error) {
	for _, candidateURL := range candidates {
		doc, err := s.fetcher.Get(ctx, candidateURL)
		if err != nil {
			// A status error still proves the host answered.
			var statusErr *fetch.StatusError
			if errors.As(err, &statusErr) {
				fetchedAny = true
			}
			lastErr = err
			s.log.Debug("candidate fetch failed",
				"url", candidateURL,
				"error", err.Error(),
			)
			continue
		}

		fetchedAny = true
		plans = append(plans, s.extractor.Extract(doc, candidateURL, scrapedAt)...)
	}

	return plans, fetchedAny, lastErr
}

// classify turns accumulated plans and reachability into the final
// DomainResult, substituting a sentinel record when no genuine plan was
// found so the plans sequence is never empty.
func (s *Scanner) classify(
	host, baseURL string,
	scrapedAt time.Time,
	plans []domain.PlanRecord,
	reachable bool,
	lastErr error,
) domain.DomainResult {
	result := domain.DomainResult{
		Domain:    host,
		URL:       baseURL,
		ScrapedAt: scrapedAt,
		Plans:     plans,
	}

	switch {
	case len(plans) > 0:
		result.Status = domain.StatusSuccess
	case reachable:
		result.Status = domain.StatusNoPricing
		result.Plans = []domain.PlanRecord{domain.NoPricingSentinel(host, baseURL, scrapedAt)}
	default:
		result.Status = domain.StatusError
		result.ErrorMessage = errorMessage(lastErr)
		result.Plans = []domain.PlanRecord{domain.ErrorSentinel(host, baseURL, scrapedAt)}
	}

	return result
}

// errorResult builds the result for a domain that failed before any
// candidate could be scanned.
func errorResult(host, baseURL string, scrapedAt time.Time, err error) domain.DomainResult {
	return domain.DomainResult{
		Domain:       host,
		URL:          baseURL,
		ScrapedAt:    scrapedAt,
		Plans:        []domain.PlanRecord{domain.ErrorSentinel(host, baseURL, scrapedAt)},
		Status:       domain.StatusError,
		ErrorMessage: errorMessage(err),
	}
}

// errorMessage renders err for the ErrorMessage field, never empty for an
// error result.
func errorMessage(err error) string {
	if err == nil {
		return "domain unreachable"
	}
	return err.Error()
}

// normalizeInput turns a bare hostname or URL into an absolute base URL
// and its lowercase hostname. Inputs without a scheme get https.
func normalizeInput(input string) (baseURL, host string, err error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", "", errEmptyDomain
	}

	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	parsed, parseErr := url.Parse(trimmed)
	if parseErr != nil {
		return "", "", fmt.Errorf("parse domain: %w", parseErr)
	}

	host = strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", "", fmt.Errorf("no hostname in %q", input)
	}

	return parsed.String(), host, nil
}
