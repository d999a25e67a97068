// Package api implements the HTTP API for the pricing scan service.
package api

import "github.com/jonesrussell/pricescout/internal/domain"

// ScanRequest represents the structure of a batch scan request.
type ScanRequest struct {
	Domains []string `json:"domains" binding:"required"`
}

// ScanResponse represents the structure of a batch scan response.
type ScanResponse struct {
	Results []domain.DomainResult `json:"results"`
	Summary domain.BatchSummary   `json:"summary"`
}
