// Package segment wraps a punkt-style sentence tokenizer behind the
// narrow capability the pipeline needs: normalized text in, ordered
// sentence candidates out.
package segment

import (
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// The tokenizer reads a period after a digit as part of a numeric token
// ("2004." in "effective as of February 9, 2004. The Company"), so it
// misses the boundary and glues two sentences together. A period after
// a digit, followed by whitespace and an upper-case letter, is such a
// boundary; mid-number periods like "1.5" carry no whitespace and are
// untouched.
var numericBreakRE = regexp.MustCompile(`(\d\.)\s+(\p{Lu})`)

// Segmenter splits document text into sentence candidates.
type Segmenter struct {
	tok *sentences.DefaultSentenceTokenizer
}

// New builds a Segmenter with the embedded English training data.
func New() (*Segmenter, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, err
	}
	return &Segmenter{tok: tok}, nil
}

// Sentences returns whitespace-normalized sentence candidates. Line
// breaks are flattened first so sentences spanning wrapped lines stay
// whole.
func (s *Segmenter) Sentences(text string) []string {
	if text == "" {
		return nil
	}
	flat := strings.ReplaceAll(text, "\n", " ")

	var out []string
	for _, sent := range s.tok.Tokenize(flat) {
		for _, part := range splitAfterNumbers(sent.Text) {
			cleaned := strings.Join(strings.Fields(part), " ")
			if cleaned != "" {
				out = append(out, cleaned)
			}
		}
	}
	return out
}

// splitAfterNumbers re-splits one tokenizer sentence at the
// digit-period boundaries the tokenizer missed.
func splitAfterNumbers(s string) []string {
	matches := numericBreakRE.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return []string{s}
	}

	var parts []string
	start := 0
	for _, m := range matches {
		parts = append(parts, s[start:m[3]])
		start = m[4]
	}
	return append(parts, s[start:])
}
