package locator_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/pricescout/internal/config"
	"github.com/jonesrussell/pricescout/internal/locator"
	"github.com/jonesrussell/pricescout/internal/logger"
)

// stubProber answers true only for the URLs it was seeded with.
type stubProber struct {
	existing map[string]bool
}

func (p *stubProber) Probe(_ context.Context, pageURL string) bool {
	return p.existing[pageURL]
}

func testConfig() config.ScannerConfig {
	return config.ScannerConfig{
		RequestTimeout: 2 * time.Second,
		ProbeTimeout:   time.Second,
		UserAgent:      "test-agent",
		MaxRedirects:   3,
		MaxCandidates:  8,
		MaxBodyBytes:   1 << 20,
	}
}

func newLocator(prober locator.Prober) *locator.Locator {
	return locator.New(testConfig(), prober, logger.NewNoOp())
}

func TestLocateFindsAnchors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<a href="/pricing">Pricing</a>
			<a href="/blog">Blog</a>
			<a href="/about">About</a>
			<a href="https://external.example/plans">Plans elsewhere</a>
		</body></html>`))
	}))
	defer server.Close()

	candidates := newLocator(&stubProber{}).Locate(context.Background(), server.URL)

	assert.Contains(t, candidates, server.URL+"/pricing")
	assert.Contains(t, candidates, "https://external.example/plans")
	assert.NotContains(t, candidates, server.URL+"/blog")
	assert.NotContains(t, candidates, server.URL+"/about")
}

func TestLocateProbesConventionalPaths(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><a href="/contact">Contact</a></body></html>`))
	}))
	defer server.Close()

	prober := &stubProber{existing: map[string]bool{
		server.URL + "/pricing": true,
		server.URL + "/plans":   true,
	}}

	candidates := newLocator(prober).Locate(context.Background(), server.URL)

	assert.Equal(t, []string{server.URL + "/pricing", server.URL + "/plans"}, candidates)
}

func TestLocateDeduplicatesAnchorAndProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<a href="/pricing">Pricing</a>
			<a href="/pricing">Pricing again</a>
		</body></html>`))
	}))
	defer server.Close()

	prober := &stubProber{existing: map[string]bool{
		server.URL + "/pricing": true,
	}}

	candidates := newLocator(prober).Locate(context.Background(), server.URL)

	assert.Equal(t, []string{server.URL + "/pricing"}, candidates)
}

func TestLocateAnchorsComeBeforeProbes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><a href="/upgrade">Upgrade</a></body></html>`))
	}))
	defer server.Close()

	prober := &stubProber{existing: map[string]bool{
		server.URL + "/pricing": true,
	}}

	candidates := newLocator(prober).Locate(context.Background(), server.URL)

	assert.Equal(t, []string{server.URL + "/upgrade", server.URL + "/pricing"}, candidates)
}

func TestLocateUnreachableRoot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	candidates := newLocator(&stubProber{}).Locate(context.Background(), baseURL)

	assert.Empty(t, candidates)
}

func TestLocateTrailingSlashBase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body></body></html>`))
	}))
	defer server.Close()

	prober := &stubProber{existing: map[string]bool{
		server.URL + "/pricing": true,
	}}

	candidates := newLocator(prober).Locate(context.Background(), server.URL+"/")

	assert.Equal(t, []string{server.URL + "/pricing"}, candidates)
}
