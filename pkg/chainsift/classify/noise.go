package classify

import (
	"regexp"
	"strings"
	"unicode"
)

// Noise rules recognize sentence-shaped fragments that leak out of legal
// boilerplate, tables of contents, and tabular exhibits. They run only
// on sentences that already passed the relevance test.
var (
	// Table-of-contents leader dots: "Supplier Agreements......15".
	leaderDotsRE = regexp.MustCompile(`\.{3,}`)

	// Trailing page number with no terminal period.
	trailingNumberRE = regexp.MustCompile(`\s\d+$`)

	// Enumerated-list or subclause heading: a short, optionally
	// parenthesized or dotted label, with content ending in a colon,
	// semicolon, or bare alphanumeric.
	listHeadingRE = regexp.MustCompile(`^\(?[A-Za-z0-9]{1,3}[.)]\s.*[:;A-Za-z0-9]$`)

	// Legal definitions: a quoted term being defined, or a clause
	// scoping a definition to the instrument.
	definitionQuoteRE = regexp.MustCompile(`(?i)["\x{201c}][^"\x{201d}]+["\x{201d}]\s+shall\s+(?:mean|include)`)
	definitionScopeRE = regexp.MustCompile(`(?i)^for\s+purposes\s+of\s+this\s+(?:agreement|section|indenture)\b`)

	// Court-procedure jargon and statute citations.
	legalMotionRE = regexp.MustCompile(`(?i)\bmotion\s+(?:for|relating\s+to)\b.*\b(?:order|entry|authority|vendors?|customers?)\b`)
	usCodeRE      = regexp.MustCompile(`(?i)\b\d+\s+U\.?\s?S\.?\s?C\.?\s*(?:\x{00a7}+\s*)?\d+[^A-Za-z]*$`)

	// Tabular-report artifacts: separators, page labels, aging-report
	// headers, total rows, and ledger rows (code then numeric column).
	dashRunRE   = regexp.MustCompile(`[-_=\x{2014}]{6,}`)
	pageLabelRE = regexp.MustCompile(`(?i)\bPAGE\s+\d+\b`)
	vendorIDRE  = regexp.MustCompile(`(?i)\bVENDOR\s*ID\b`)
	apAgingRE   = regexp.MustCompile(`(?i)\bA/?P\s+AGING\b`)
	totalRowRE  = regexp.MustCompile(`(?i)\bTOTAL\s+\$?[\d,]+(?:\.\d+)?\b`)
	ledgerRowRE = regexp.MustCompile(`^[A-Z0-9][A-Z0-9./-]*\s+\$?[\d,]+\.\d{2}\b`)
)

// noisy reports whether a whitespace-normalized sentence trips any
// suppression rule.
func noisy(s string) bool {
	if leaderDotsRE.MatchString(s) {
		return true
	}
	if !containsLetter(s) {
		return true
	}
	// A trailing number only disqualifies when the sentence lacks a
	// terminal period; "delivered 15." is a sentence, "Deliveries 15" a
	// TOC entry.
	if trailingNumberRE.MatchString(s) && !strings.HasSuffix(s, ".") {
		return true
	}
	if listHeadingRE.MatchString(s) {
		return true
	}
	if definitionQuoteRE.MatchString(s) || definitionScopeRE.MatchString(s) {
		return true
	}
	if legalMotionRE.MatchString(s) || usCodeRE.MatchString(s) {
		return true
	}
	if dashRunRE.MatchString(s) || pageLabelRE.MatchString(s) ||
		vendorIDRE.MatchString(s) || apAgingRE.MatchString(s) ||
		totalRowRE.MatchString(s) || ledgerRowRE.MatchString(s) {
		return true
	}
	return false
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
