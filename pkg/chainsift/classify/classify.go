// Package classify decides whether a sentence discusses a supply-chain
// relationship. The test is two-tiered: a core vocabulary ("supply
// chain") qualifies on its own, otherwise an entity term and an
// operational term must both be present. Sentences that qualify are
// then screened against noise rules for legal and tabular boilerplate.
package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Options configures a Classifier. Zero values take the defaults noted
// on each field.
type Options struct {
	// MinSentenceLength rejects shorter sentences before any other
	// test. Default 50.
	MinSentenceLength int
	// ExtraEntityTerms and ExtraOperationalTerms extend the built-in
	// vocabularies with additional regex alternatives.
	ExtraEntityTerms      []string
	ExtraOperationalTerms []string
}

// Classifier is immutable after construction and safe for concurrent
// use.
type Classifier struct {
	minLen      int
	entityRE    *regexp.Regexp
	operationRE *regexp.Regexp
}

// New compiles the vocabularies once and returns a Classifier.
func New(opts Options) *Classifier {
	minLen := opts.MinSentenceLength
	if minLen <= 0 {
		minLen = 50
	}
	return &Classifier{
		minLen:      minLen,
		entityRE:    compileVocab(entityTerms, opts.ExtraEntityTerms),
		operationRE: compileVocab(operationalTerms, opts.ExtraOperationalTerms),
	}
}

// Relevant reports whether the sentence should be kept. The input is
// whitespace-normalized first, so length and noise checks see the same
// form the caller will emit.
func (c *Classifier) Relevant(sentence string) bool {
	s := strings.Join(strings.Fields(sentence), " ")

	if utf8.RuneCountInString(s) < c.minLen {
		return false
	}

	match := coreVocabRE.MatchString(s)
	if !match {
		match = c.entityRE.MatchString(s) && c.operationRE.MatchString(s)
	}
	if !match {
		return false
	}

	return !noisy(s)
}
