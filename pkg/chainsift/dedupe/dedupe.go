// Package dedupe suppresses near-duplicate sentences by letter-content
// fingerprint. The fingerprint ignores punctuation, digits, and
// whitespace entirely, so "Sentence A." and "Sentence  A" collide while
// any letter substitution separates them.
package dedupe

import (
	"regexp"
	"strings"
)

// Everything outside Latin letters and the CJK unified block is
// stripped before lower-casing.
var nonLetterRE = regexp.MustCompile(`[^a-zA-Z\x{4e00}-\x{9fa5}]+`)

// Fingerprint reduces a sentence to its lowercased letter content. An
// empty result means the sentence has no letters at all.
func Fingerprint(s string) string {
	return strings.ToLower(nonLetterRE.ReplaceAllString(s, ""))
}

// Set tracks fingerprints seen within one company's scope. It must be
// discarded when processing moves to the next company; carrying it over
// would suppress duplicates across companies.
type Set struct {
	seen map[string]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Accept reports whether the sentence is new within this scope and
// records its fingerprint when it is. Sentences with an empty
// fingerprint are always rejected.
func (d *Set) Accept(sentence string) bool {
	fp := Fingerprint(sentence)
	if fp == "" {
		return false
	}
	if _, ok := d.seen[fp]; ok {
		return false
	}
	d.seen[fp] = struct{}{}
	return true
}

// Len returns the number of distinct fingerprints recorded.
func (d *Set) Len() int {
	return len(d.seen)
}
