package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/pricescout/internal/domain"
	"github.com/jonesrussell/pricescout/internal/logger"
	"github.com/jonesrussell/pricescout/internal/output"
)

// csvExportFilename is the attachment name for CSV-formatted responses.
const csvExportFilename = "pricing-results.csv"

// BatchScanner defines the interface for running a batch scan.
// This allows the handler to be tested without network access.
type BatchScanner interface {
	ProcessBatch(ctx context.Context, domains []string) ([]domain.DomainResult, domain.BatchSummary)
}

// ScanHandler handles scan-related HTTP requests.
type ScanHandler struct {
	scanner BatchScanner
	log     logger.Interface
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(scanner BatchScanner, log logger.Interface) *ScanHandler {
	return &ScanHandler{
		scanner: scanner,
		log:     log,
	}
}

// Scan handles POST /api/v1/scan.
// The request body carries the domain list; ?format=csv streams the plan
// export instead of the JSON response.
func (h *ScanHandler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	h.runScan(c, req.Domains)
}

// ScanCSV handles POST /api/v1/scan/csv.
// The uploaded CSV's first column holds candidate domains.
func (h *ScanHandler) ScanCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing CSV upload: " + err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unreadable CSV upload: " + err.Error(),
		})
		return
	}
	defer file.Close()

	domains, err := output.ParseDomains(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid CSV: " + err.Error(),
		})
		return
	}

	h.runScan(c, domains)
}

// runScan validates the domain list, runs the batch, and renders the
// response in the requested format.
func (h *ScanHandler) runScan(c *gin.Context, rawDomains []string) {
	domains := compactDomains(rawDomains)
	if len(domains) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "domains must not be empty",
		})
		return
	}

	results, summary := h.scanner.ProcessBatch(c.Request.Context(), domains)

	if c.Query("format") == "csv" {
		h.renderCSV(c, results)
		return
	}

	c.JSON(http.StatusOK, ScanResponse{
		Results: results,
		Summary: summary,
	})
}

// renderCSV streams the plan export as a CSV attachment.
func (h *ScanHandler) renderCSV(c *gin.Context, results []domain.DomainResult) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+csvExportFilename+`"`)
	c.Status(http.StatusOK)

	if err := output.WriteResults(c.Writer, results); err != nil {
		// Headers are already sent; all we can do is log.
		h.log.Error("csv export failed", "error", err.Error())
	}
}

// compactDomains trims whitespace and drops empty entries, preserving order.
func compactDomains(raw []string) []string {
	domains := make([]string, 0, len(raw))
	for _, d := range raw {
		if trimmed := strings.TrimSpace(d); trimmed != "" {
			domains = append(domains, trimmed)
		}
	}
	return domains
}
