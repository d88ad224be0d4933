package ocr

import (
	"regexp"
	"strings"
)

// codePattern matches product-code-like tokens: 2-4 letters, an optional
// separator, then 2-6 digits, with an optional letter suffix (e.g. ARV225A,
// FX-1200, ab.33).
var codePattern = regexp.MustCompile(`\b[A-Za-z]{2,4}[-._ ]?\d{2,6}[A-Za-z]?\b`)

// quantityPattern matches a trailing quantity token such as "14L", "3kg"
// or "25pz".
var quantityPattern = regexp.MustCompile(`^\d+(?:[.,]\d+)?[A-Za-z]{1,3}$`)

// pricePattern matches a trailing price token, with or without a currency
// symbol: "12,50", "€9.90", "14.00€".
var pricePattern = regexp.MustCompile(`^[€$£]?\d+(?:[.,]\d{1,2})?[€$£]?$`)

// Candidate is one product-code-like line detected in extracted text.
// All fields are prefills for human review, never trusted values.
type Candidate struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Price    string `json:"price,omitempty"`
	RawLine  string `json:"rawLine"`
}

// ScanText scans extracted text line by line for product-code candidates.
// Each matching line yields at most one candidate; codes are upper-cased
// and deduplicated across the document, first occurrence wins.
func ScanText(text string) []Candidate {
	var candidates []Candidate
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		match := codePattern.FindString(line)
		if match == "" {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(match))
		if seen[code] {
			continue
		}
		seen[code] = true

		c := Candidate{Code: code, RawLine: line}
		rest := strings.TrimSpace(strings.Replace(line, match, "", 1))
		c.Name, c.Quantity, c.Price = splitTrailing(rest)
		candidates = append(candidates, c)
	}
	return candidates
}

// splitTrailing peels quantity and price tokens off the end of the line
// remainder; whatever is left becomes the name prefill.
func splitTrailing(rest string) (name, quantity, price string) {
	tokens := strings.Fields(rest)

	for len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		switch {
		case price == "" && pricePattern.MatchString(last) && !quantityPattern.MatchString(last):
			price = last
		case quantity == "" && quantityPattern.MatchString(last):
			quantity = last
		default:
			return strings.Join(tokens, " "), quantity, price
		}
		tokens = tokens[:len(tokens)-1]
	}
	return "", quantity, price
}
