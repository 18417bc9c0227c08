package classify

import (
	"regexp"
	"strings"
)

// The core vocabulary qualifies a sentence on its own.
var coreVocabRE = regexp.MustCompile(`(?i)\bsupply[\s-]chains?\b`)

// entityTerms name trade-relationship counterparties. A hit here is not
// enough by itself: "an illegal gift to a customer" names a customer but
// says nothing about a trade relationship.
var entityTerms = []string{
	`suppliers?`,
	`customers?`,
	`vendors?`,
	`distributors?`,
	`resellers?`,
	`manufacturers?`,
	`licensors?`,
	`licensees?`,
	`subcontractors?`,
	`service\s+providers?`,
	`clients?`,
	`franchisees?`,
}

// operationalTerms describe the substance of the relationship: the
// relation itself, the verbs of trade, and the contract or asset nouns
// that flow through it.
var operationalTerms = []string{
	`relationships?`,
	`relations?`,
	`doing\s+business`,
	`goodwill`,
	`franchises?`,
	`supply|supplies|supplied|supplying`,
	`purchases?|purchased|purchasing`,
	`procures?|procured|procuring|procurement`,
	`fulfills?|fulfilled|fulfilling|fulfillment`,
	`ships?|shipped|shipping|shipments?`,
	`delivers?|delivered|delivering|delivery|deliveries`,
	`transports?|transported|transporting|transportation`,
	`agreements?`,
	`contracts?`,
	`inventory|inventories`,
	`stocks?`,
	`materials?`,
	`goods`,
	`products?`,
	`services?`,
	`parts?`,
	`components?`,
	`equipment`,
	`software`,
	`orders?`,
}

// compileVocab joins term alternatives into one case-insensitive,
// word-boundary-delimited regex.
func compileVocab(terms []string, extra []string) *regexp.Regexp {
	all := make([]string, 0, len(terms)+len(extra))
	all = append(all, terms...)
	for _, t := range extra {
		t = strings.TrimSpace(t)
		if t != "" {
			all = append(all, t)
		}
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(all, `|`) + `)\b`)
}
