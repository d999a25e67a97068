// Package extractor pulls pricing-plan records out of parsed documents.
// Extraction is a pure function of the document: a tiered cascade of
// candidate-selection strategies feeds one shared field-extraction pass,
// and only records carrying signal are emitted.
package extractor

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonesrussell/pricescout/internal/domain"
	"github.com/jonesrussell/pricescout/internal/vocab"
)

// Candidate text length gate: rejects noise below the floor and
// whole-page containers above the ceiling. Applies to tiers 1 and 2.
const (
	minCandidateChars = 10
	maxCandidateChars = 3000
)

// Feature extraction bounds.
const (
	minFeatureChars = 5
	maxFeatureChars = 120
	maxFeatures     = 8
)

// strippedSelectors lists non-rendered elements removed before any text
// inspection; they otherwise pollute keyword and price matching.
const strippedSelectors = "script, style, noscript, template"

// Extractor extracts plan records from parsed documents.
type Extractor struct{}

// New creates a new plan extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the plan records found in the document, in discovery
// order. The scrapedAt timestamp is stamped onto every record so a fetch
// produces one consistent capture time.
//
// Candidate selection is tiered: structural selectors first, then a
// whole-document keyword scan if the structural tier matched nothing, and
// finally a strict line scan if neither tier emitted any record.
func (e *Extractor) Extract(doc *goquery.Document, sourceURL string, scrapedAt time.Time) []domain.PlanRecord {
	doc.Find(strippedSelectors).Remove()

	host := hostnameOf(sourceURL)

	candidates := structuralCandidates(doc)
	if len(candidates) == 0 {
		candidates = keywordCandidates(doc)
	}

	records := e.buildRecords(candidates, host, sourceURL, scrapedAt)
	if len(records) == 0 {
		records = e.lineScan(doc, host, sourceURL, scrapedAt)
	}

	return records
}

// structuralCandidates returns the union of elements matching the fixed
// selector catalog, deduplicated by node, in catalog order.
func structuralCandidates(doc *goquery.Document) []*goquery.Selection {
	seen := make(map[*html.Node]bool)

	var candidates []*goquery.Selection
	for _, selector := range vocab.CandidateSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			node := s.Get(0)
			if seen[node] {
				return
			}
			seen[node] = true
			candidates = append(candidates, s)
		})
	}

	return candidates
}

// keywordCandidates inspects every element in the document and keeps those
// whose lower-cased text contains a pricing keyword from any supported
// language or matches a price pattern.
func keywordCandidates(doc *goquery.Document) []*goquery.Selection {
	var candidates []*goquery.Selection
	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		if !withinLengthGate(text) {
			return
		}
		if vocab.HasPlanKeyword(text) || vocab.MatchPrice(text) != "" {
			candidates = append(candidates, s)
		}
	})

	return candidates
}

// buildRecords runs field extraction over each candidate element and
// emits the records that carry signal. Identical records produced by
// nested candidates are collapsed.
func (e *Extractor) buildRecords(
	candidates []*goquery.Selection,
	host, sourceURL string,
	scrapedAt time.Time,
) []domain.PlanRecord {
	emitted := make(map[string]bool)

	var records []domain.PlanRecord
	for _, candidate := range candidates {
		text := strings.TrimSpace(candidate.Text())
		if !withinLengthGate(text) {
			continue
		}

		record := e.recordFromText(text, host, sourceURL, scrapedAt)
		if !record.HasSignal() {
			continue
		}

		key := recordKey(&record)
		if emitted[key] {
			continue
		}
		emitted[key] = true
		records = append(records, record)
	}

	return records
}

// lineScan splits the document's rendered text into lines and extracts a
// record from each line containing BOTH a price match and a keyword match.
// The conjunctive test compensates for the lack of structural context.
func (e *Extractor) lineScan(
	doc *goquery.Document,
	host, sourceURL string,
	scrapedAt time.Time,
) []domain.PlanRecord {
	emitted := make(map[string]bool)

	var records []domain.PlanRecord
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if vocab.MatchPrice(line) == "" || !vocab.HasPlanKeyword(line) {
			continue
		}

		record := e.recordFromText(line, host, sourceURL, scrapedAt)
		if !record.HasSignal() {
			continue
		}

		key := recordKey(&record)
		if emitted[key] {
			continue
		}
		emitted[key] = true
		records = append(records, record)
	}

	return records
}

// recordFromText applies the shared field extraction to one candidate
// text block. Used identically regardless of the tier that produced it.
func (e *Extractor) recordFromText(
	text, host, sourceURL string,
	scrapedAt time.Time,
) domain.PlanRecord {
	planName := domain.UnknownPlanName
	if keyword, ok := vocab.MatchPlanKeyword(text); ok {
		planName = vocab.TitleCase(keyword)
	}

	return domain.PlanRecord{
		Domain:       host,
		PlanName:     planName,
		Price:        vocab.MatchPrice(text),
		PricingModel: vocab.MatchCadence(text, domain.UnknownPricingModel),
		Features:     extractFeatures(text),
		SourceURL:    sourceURL,
		ScrapedAt:    scrapedAt,
	}
}

// extractFeatures splits the candidate text on newlines and common bullet
// glyphs, keeps pieces within the length window, and caps the count.
// Text without any delimiter yields no features; a single undivided block
// is plan copy, not a feature list.
func extractFeatures(text string) []string {
	if !strings.ContainsAny(text, vocab.BulletGlyphs+"\n") {
		return nil
	}

	pieces := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || strings.ContainsRune(vocab.BulletGlyphs, r)
	})

	var features []string
	for _, piece := range pieces {
		feature := strings.TrimSpace(piece)
		length := utf8.RuneCountInString(feature)
		if length < minFeatureChars || length > maxFeatureChars {
			continue
		}
		features = append(features, feature)
		if len(features) == maxFeatures {
			break
		}
	}

	return features
}

// withinLengthGate reports whether the candidate text passes the
// [minCandidateChars, maxCandidateChars] gate.
func withinLengthGate(text string) bool {
	length := utf8.RuneCountInString(text)
	return length >= minCandidateChars && length <= maxCandidateChars
}

// recordKey builds a dedup key from the extracted fields; nested
// candidates frequently carry the same plan text.
func recordKey(r *domain.PlanRecord) string {
	return r.PlanName + "|" + r.Price + "|" + r.PricingModel
}

// hostnameOf returns the lowercase hostname of the URL, or the empty
// string when it cannot be parsed.
func hostnameOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
