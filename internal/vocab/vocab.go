// Package vocab holds the static pricing vocabulary: multilingual plan
// keyword tables, currency and price patterns, cadence terms, conventional
// pricing-page paths, and the selector catalog used by the extractor.
// Pure reference data plus lookup helpers; no network or document access.
package vocab

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LanguageKeywords pairs a language tag with its ordered keyword list.
// Order matters twice: languages are scanned in declaration order, and
// within a language the first matching keyword wins, so specific plan
// tiers ("pro") must precede generic pricing terms ("plan").
type LanguageKeywords struct {
	Language string
	Keywords []string
}

// PlanKeywords is the multilingual pricing vocabulary used for plan-name
// detection and for the keyword-scan extraction tier.
var PlanKeywords = []LanguageKeywords{
	{"en", []string{
		"free", "basic", "starter", "standard", "lite", "essential",
		"pro", "premium", "plus", "advanced", "business", "team",
		"enterprise", "growth", "ultimate", "personal", "professional",
		"pricing", "price", "plan", "subscription", "billing", "tier",
	}},
	{"de", []string{
		"kostenlos", "basis", "einsteiger", "standard", "profi",
		"premium", "unternehmen", "preise", "preis", "tarif",
		"abonnement", "abo",
	}},
	{"fr", []string{
		"gratuit", "essentiel", "standard", "pro", "premium",
		"entreprise", "équipe", "tarifs", "tarif", "prix",
		"abonnement", "forfait",
	}},
	{"es", []string{
		"gratis", "básico", "estándar", "pro", "premium", "empresa",
		"equipo", "precios", "precio", "tarifa", "suscripción", "plan",
	}},
	{"it", []string{
		"gratuito", "base", "standard", "pro", "premium", "azienda",
		"prezzi", "prezzo", "tariffa", "abbonamento", "piano",
	}},
	{"pt", []string{
		"grátis", "gratuito", "básico", "padrão", "pro", "premium",
		"empresa", "preços", "preço", "tarifa", "assinatura", "plano",
	}},
	{"nl", []string{
		"gratis", "basis", "standaard", "pro", "premium", "zakelijk",
		"prijzen", "prijs", "tarief", "abonnement",
	}},
	{"ja", []string{
		"無料", "ベーシック", "スタンダード", "プロ", "プレミアム",
		"エンタープライズ", "料金", "価格", "プラン",
	}},
	{"zh", []string{
		"免费", "基础", "标准", "专业", "高级", "企业",
		"价格", "定价", "套餐", "订阅",
	}},
}

// PricePatterns is the ordered list of currency/locale price patterns.
// First match wins: symbol-prefixed amounts, then currency-code-suffixed
// amounts, then named currencies, then time-period-qualified amounts.
var PricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[$€£¥₹₩₽₺]\s?\d+(?:[.,]\d{3})*(?:[.,]\d{1,2})?`),
	regexp.MustCompile(`(?i)\d+(?:[.,]\d{3})*(?:[.,]\d{1,2})?\s?(?:USD|EUR|GBP|JPY|CNY|INR|AUD|CAD|CHF|SEK|NOK|DKK|PLN|BRL|MXN|KRW)\b`),
	regexp.MustCompile(`(?i)\d+(?:[.,]\d{1,2})?\s?(?:dollars?|euros?|pounds?|francs?|yen|yuan|rupees?|reais|pesos?|kronor)\b`),
	regexp.MustCompile(`(?i)\d+(?:[.,]\d{1,2})?\s?(?:/|per\s?)(?:mo|month|yr|year|annum|user|seat|licen[cs]e)\b`),
}

// CadenceEntry pairs a canonical cadence label with the terms that map to it.
type CadenceEntry struct {
	Label string
	Terms []string
}

// CadenceTable maps billing-period terms to canonical cadence labels.
// Scanned in order; the first entry with a matching term wins.
var CadenceTable = []CadenceEntry{
	{"Monthly", []string{
		"per month", "/month", "/mo", "monthly", "every month", "a month",
		"pro monat", "monatlich", "par mois", "mensuel", "al mes",
		"mensual", "mensile", "por mês", "mensal", "per maand",
		"毎月", "月額", "每月",
	}},
	{"Yearly", []string{
		"per year", "/year", "/yr", "yearly", "annually", "annual",
		"per annum", "a year", "pro jahr", "jährlich", "par an",
		"annuel", "al año", "anual", "annuale", "per jaar",
		"毎年", "年額", "每年",
	}},
	{"Weekly", []string{
		"per week", "/week", "/wk", "weekly", "pro woche", "wöchentlich",
		"par semaine", "semanal", "settimanale",
	}},
	{"One-Time", []string{
		"one-time", "one time", "lifetime", "pay once", "einmalig",
		"lebenslang", "à vie", "pago único", "una tantum", "vitalício",
		"eenmalig", "買い切り", "一次性",
	}},
}

// HrefHints are substrings that mark an anchor href as pricing-related.
var HrefHints = []string{
	"pricing", "prices", "price", "plans", "plan",
	"subscription", "subscribe", "billing", "upgrade",
	"premium", "enterprise",
	"tarif", "preise", "precios", "prezzi", "precos", "preços",
	"prijzen", "料金", "价格",
}

// PricingPaths is the catalog of conventional pricing-page paths probed
// against each base URL, English first, then other languages.
var PricingPaths = []string{
	"/pricing", "/prices", "/price", "/plans", "/plan",
	"/subscription", "/subscriptions", "/subscribe", "/billing",
	"/premium", "/upgrade",
	"/preise", "/tarife", "/tarifs", "/precios", "/tarifas",
	"/prezzi", "/precos", "/prijzen", "/料金", "/价格",
	"/pricing.html", "/plans.html",
}

// CandidateSelectors is the structural (Tier 1) selector catalog. Order
// matters: first class/id/test-id vocabulary, then scoped semantic
// containers, then generic landmark tags as last resort within the tier.
var CandidateSelectors = []string{
	"[class*='pricing']", "[class*='price']", "[class*='plan']",
	"[class*='subscription']", "[class*='billing']", "[class*='tier']",
	"[class*='package']",
	"[id*='pricing']", "[id*='price']", "[id*='plan']",
	"[id*='subscription']",
	"[data-testid*='pricing']", "[data-testid*='price']",
	"[data-testid*='plan']", "[data-test*='pricing']",
	"section[class*='premium']", "div[class*='premium']",
	"section[class*='pro']", "div[class*='enterprise']",
	"div[class*='basic']",
	"table[class*='compare']", "tr[class*='price']", "td[class*='price']",
	"ul[class*='plan']", "li[class*='plan']",
	"article", "main", "aside", "header", "footer",
}

// BulletGlyphs are the characters feature lists are split on, in addition
// to newlines.
const BulletGlyphs = "•✓✔→▶▪▫"

// MatchPrice returns the first price-pattern match in the given text,
// tried in table order, or the empty string if nothing matched.
func MatchPrice(text string) string {
	for _, re := range PricePatterns {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// MatchPlanKeyword scans the multilingual keyword table against the text.
// Exact word-boundary matches take precedence over substring matches;
// within each pass the first keyword in table order wins.
func MatchPlanKeyword(text string) (string, bool) {
	lower := strings.ToLower(text)

	for _, lang := range PlanKeywords {
		for _, kw := range lang.Keywords {
			if containsWord(lower, kw) {
				return kw, true
			}
		}
	}

	for _, lang := range PlanKeywords {
		for _, kw := range lang.Keywords {
			if strings.Contains(lower, kw) {
				return kw, true
			}
		}
	}

	return "", false
}

// HasPlanKeyword reports whether the text contains any pricing keyword
// from any supported language.
func HasPlanKeyword(text string) bool {
	_, ok := MatchPlanKeyword(text)
	return ok
}

// MatchCadence returns the canonical cadence label for the first matching
// billing-period term, or fallback if none matched.
func MatchCadence(text, fallback string) string {
	lower := strings.ToLower(text)
	for _, entry := range CadenceTable {
		for _, term := range entry.Terms {
			if strings.Contains(lower, term) {
				return entry.Label
			}
		}
	}
	return fallback
}

// TitleCase upper-cases the first rune of each whitespace-separated word.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// containsWord reports whether needle occurs in haystack bounded by
// non-letter, non-digit runes on both sides.
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}

	for start := 0; ; {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start

		if boundaryBefore(haystack, idx) && boundaryAfter(haystack, idx+len(needle)) {
			return true
		}

		start = idx + len(needle)
	}
}

// boundaryBefore reports whether the rune ending at pos is a word boundary.
func boundaryBefore(s string, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:pos])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// boundaryAfter reports whether the rune starting at pos is a word boundary.
func boundaryAfter(s string, pos int) bool {
	if pos >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
