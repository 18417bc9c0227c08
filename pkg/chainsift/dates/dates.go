// Package dates finds a contract's effective date in normalized filing
// text using a layered pattern search: cue-anchored dates in the header
// window first, bare dates in the header next, then the whole document.
package dates

import (
	"regexp"
	"strings"
)

const (
	months = `(?:January|February|March|April|May|June|July|August|September|October|November|December)`
	// Cue phrases that anchor a date to contract effectiveness. Longer
	// alternatives come first so the regex prefers them.
	cues = `(?:effective\s+date|effective\s+as\s+of|dated\s+as\s+of|dated\s+this|agreement\s+dated|dated|as\s+of)`

	longDate = months + `\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}`
	isoDate  = `\d{4}-\d{2}-\d{2}`
)

var (
	anchoredPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)` + cues + `\s*[:=]?\s+(` + longDate + `)`),
		regexp.MustCompile(`(?i)` + cues + `\s*[:=]?\s+(` + isoDate + `)`),
	}
	barePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(` + longDate + `)`),
		regexp.MustCompile(`(?i)(` + isoDate + `)`),
	}
)

// Extractor searches for effective dates with a bounded header window.
type Extractor struct {
	headerWindow int
}

// NewExtractor returns an Extractor whose header phase covers the
// leading headerWindow bytes of the document.
func NewExtractor(headerWindow int) *Extractor {
	return &Extractor{headerWindow: headerWindow}
}

// Extract returns the first matching date as display text, whitespace
// collapsed but otherwise verbatim. It reports false when no pattern
// matches anywhere, which rejects the whole attachment.
func (e *Extractor) Extract(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	header := head(text, e.headerWindow)

	// Phase 1: anchored dates in the header window.
	if d, ok := firstMatch(anchoredPatterns, header); ok {
		return d, true
	}
	// Phase 2: bare dates in the header window.
	if d, ok := firstMatch(barePatterns, header); ok {
		return d, true
	}
	// Phase 3: both tiers over the full document.
	if d, ok := firstMatch(anchoredPatterns, text); ok {
		return d, true
	}
	return firstMatch(barePatterns, text)
}

func firstMatch(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.Join(strings.Fields(m[1]), " "), true
		}
	}
	return "", false
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
