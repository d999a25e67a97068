// Package fetch retrieves remote pages as parsed documents. It owns the
// outbound HTTP clients: a full-page client with bounded redirects and a
// short-timeout probe client for path-existence checks.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/jonesrussell/pricescout/internal/config"
	"github.com/jonesrussell/pricescout/internal/logger"
)

// acceptHeader mirrors what desktop browsers send; some sites vary their
// markup on it.
const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// StatusError reports a response with a non-fetchable status code. The
// host answered, so the caller can still treat the domain as reachable.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d fetching %s", e.Code, e.URL)
}

// Fetcher fetches and parses remote HTML documents.
type Fetcher struct {
	client       *resty.Client
	probe        *resty.Client
	log          logger.Interface
	maxBodyBytes int
}

// New creates a fetcher from scanner configuration.
func New(cfg config.ScannerConfig, log logger.Interface) *Fetcher {
	client := resty.New()
	client.SetTimeout(cfg.RequestTimeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(cfg.MaxRedirects))
	client.SetHeader("User-Agent", cfg.UserAgent)
	client.SetHeader("Accept", acceptHeader)
	client.SetHeader("Accept-Language", "en-US,en;q=0.9")

	probe := resty.New()
	probe.SetTimeout(cfg.ProbeTimeout)
	probe.SetRedirectPolicy(resty.FlexibleRedirectPolicy(cfg.MaxRedirects))
	probe.SetHeader("User-Agent", cfg.UserAgent)

	return &Fetcher{
		client:       client,
		probe:        probe,
		log:          log,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// Get fetches the URL and parses the response body as HTML.
// Any status below 400 is treated as fetchable; 400 and above returns a
// StatusError so callers can distinguish reachable hosts from dead ones.
func (f *Fetcher) Get(ctx context.Context, pageURL string) (*goquery.Document, error) {
	resp, err := f.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, &StatusError{URL: pageURL, Code: resp.StatusCode()}
	}

	if !isHTMLContentType(resp.Header().Get("Content-Type")) {
		return nil, fmt.Errorf("non-HTML content type %q at %s",
			resp.Header().Get("Content-Type"), pageURL)
	}

	body := resp.Body()
	if f.maxBodyBytes > 0 && len(body) > f.maxBodyBytes {
		body = body[:f.maxBodyBytes]
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return doc, nil
}

// Probe issues a lightweight HEAD request against the URL and reports
// whether it answered with a success status. Failures are expected for
// nonexistent paths and are never surfaced as errors.
func (f *Fetcher) Probe(ctx context.Context, pageURL string) bool {
	resp, err := f.probe.R().SetContext(ctx).Head(pageURL)
	if err != nil {
		return false
	}
	return resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices
}

// isHTMLContentType reports whether the Content-Type header looks like an
// HTML document. An absent header is given the benefit of the doubt.
func isHTMLContentType(contentType string) bool {
	if contentType == "" {
		return true
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	return strings.Contains(ct, "text/html") ||
		strings.Contains(ct, "application/xhtml+xml")
}
