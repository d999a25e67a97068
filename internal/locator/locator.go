// Package locator discovers candidate pricing-page URLs for a base URL.
// It combines anchors scraped from the root document with existence
// probes against a catalog of conventional pricing paths.
package locator

import (
	"context"
	"strings"

	colly "github.com/gocolly/colly/v2"

	"github.com/jonesrussell/pricescout/internal/config"
	"github.com/jonesrussell/pricescout/internal/logger"
	"github.com/jonesrussell/pricescout/internal/vocab"
)

// Prober checks whether a URL exists without fetching its body.
type Prober interface {
	Probe(ctx context.Context, pageURL string) bool
}

// Locator produces a deduplicated, discovery-ordered list of candidate
// pricing-page URLs for a domain.
type Locator struct {
	cfg    config.ScannerConfig
	prober Prober
	log    logger.Interface
}

// New creates a locator.
func New(cfg config.ScannerConfig, prober Prober, log logger.Interface) *Locator {
	return &Locator{
		cfg:    cfg,
		prober: prober,
		log:    log,
	}
}

// Locate returns candidate pricing URLs for the base URL: link-derived
// URLs first, then path-probe URLs, deduplicated in discovery order.
// An empty result is not an error; callers fall back to the base URL.
func (l *Locator) Locate(ctx context.Context, baseURL string) []string {
	candidates := l.scanRootLinks(ctx, baseURL)
	candidates = append(candidates, l.probeConventionalPaths(ctx, baseURL)...)
	return dedupe(candidates)
}

// scanRootLinks fetches the root document and collects anchors whose href
// contains a pricing hint, resolved to absolute URLs. A failed root fetch
// yields an empty set; the caller falls back to the base URL itself.
func (l *Locator) scanRootLinks(ctx context.Context, baseURL string) []string {
	collector := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.MaxDepth(1),
		colly.UserAgent(l.cfg.UserAgent),
	)
	collector.SetRequestTimeout(l.cfg.RequestTimeout)
	if l.cfg.MaxBodyBytes > 0 {
		collector.MaxBodySize = l.cfg.MaxBodyBytes
	}

	var links []string
	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := e.Attr("href")
		if !hasPricingHint(href) {
			return
		}
		if abs := e.Request.AbsoluteURL(href); abs != "" {
			links = append(links, abs)
		}
	})

	if err := collector.Visit(baseURL); err != nil {
		l.log.Debug("root document fetch failed",
			"url", baseURL,
			"error", err.Error(),
		)
		return nil
	}
	collector.Wait()

	return links
}

// probeConventionalPaths checks each conventional pricing path against the
// base URL. Probe failures are expected for nonexistent paths and do not
// abort the scan of remaining paths.
func (l *Locator) probeConventionalPaths(ctx context.Context, baseURL string) []string {
	root := strings.TrimRight(baseURL, "/")

	var found []string
	for _, path := range vocab.PricingPaths {
		select {
		case <-ctx.Done():
			return found
		default:
		}

		candidate := root + path
		if l.prober.Probe(ctx, candidate) {
			found = append(found, candidate)
		}
	}

	return found
}

// hasPricingHint reports whether the href contains any pricing-indicating
// substring.
func hasPricingHint(href string) bool {
	lower := strings.ToLower(href)
	for _, hint := range vocab.HrefHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// dedupe removes duplicate URLs preserving first-seen order.
func dedupe(urls []string) []string {
	if len(urls) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}

	return out
}
