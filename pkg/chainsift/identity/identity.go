// Package identity resolves the canonical (CIK, company name) pair for
// one company folder. The folder name is the default; a CIK and name
// parsed from the primary filing's header replace it; the reference
// table backfills a missing name. Resolution degrades gracefully and
// never fails the company.
package identity

import (
	"regexp"
	"strings"
)

// UnknownName is the sentinel used when no name source resolves.
const UnknownName = "unknown"

// Header-region declarations in EDGAR-style filings. The CIK token is
// fixed-width with leading zeros; section precedence is SUBJECT COMPANY
// over FILER over an unscoped hit.
var (
	subjectCIKRE = regexp.MustCompile(`(?is)SUBJECT COMPANY:.*?CENTRAL INDEX KEY:\s*(\d{10})`)
	filerCIKRE   = regexp.MustCompile(`(?is)(?:FILER:|FILED BY:).*?CENTRAL INDEX KEY:\s*(\d{10})`)
	directCIKRE  = regexp.MustCompile(`(?i)CENTRAL INDEX KEY:\s*(\d{10})`)

	conformedNameRE = regexp.MustCompile(`(?i)COMPANY CONFORMED NAME:[ \t]*([^\n]+)`)
)

// Identity is the authoritative result for one company, applied to
// every record produced under it.
type Identity struct {
	CompanyID   string
	CompanyName string
}

// Resolver resolves identities against a bounded header window and a
// preloaded reference table.
type Resolver struct {
	window int
	names  *RefTable
}

// NewResolver returns a Resolver. The window bounds the leading span of
// the primary filing searched for declarations; names may be empty but
// not nil.
func NewResolver(window int, names *RefTable) *Resolver {
	return &Resolver{window: window, names: names}
}

// Resolve determines the identity for one company folder. folderID is
// the numeric folder name; primaryText is the normalized text of the
// primary filing, or "" when it could not be located or read.
func (r *Resolver) Resolve(folderID, primaryText string) Identity {
	id := Identity{CompanyID: folderID, CompanyName: UnknownName}

	header := head(primaryText, r.window)

	if cik, ok := extractCIK(header); ok {
		id.CompanyID = cik
	}

	// The name parse is independent of whether the CIK parse matched.
	if name, ok := extractName(header); ok {
		id.CompanyName = name
	} else if name, ok := r.names.Lookup(id.CompanyID); ok {
		id.CompanyName = name
	}

	return id
}

// extractCIK searches the header region by section precedence and
// returns the canonical id with leading zeros stripped.
func extractCIK(header string) (string, bool) {
	for _, re := range []*regexp.Regexp{subjectCIKRE, filerCIKRE, directCIKRE} {
		if m := re.FindStringSubmatch(header); m != nil {
			if cik := canonicalCIK(m[1]); cik != "" {
				return cik, true
			}
		}
	}
	return "", false
}

func extractName(header string) (string, bool) {
	m := conformedNameRE.FindStringSubmatch(header)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	return name, name != ""
}

// canonicalCIK strips leading zeros from a fixed-width CIK token.
func canonicalCIK(raw string) string {
	return strings.TrimLeft(raw, "0")
}

// head returns the leading n runes of s.
func head(s string, n int) string {
	if n <= 0 || n >= len(s) {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
