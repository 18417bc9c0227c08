package normalize

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"

	"github.com/cognicore/chainsift/pkg/chainsift/internalerr"
)

var (
	// Any tag-like token means the document is markup, not plain text.
	markupRE = regexp.MustCompile(`(?i)</?[a-z][a-z0-9]*(?:\s[^<>]*)?>`)
	hspaceRE = regexp.MustCompile(`[ \t\r\f\v]+`)
	vspaceRE = regexp.MustCompile(`\s*\n\s*`)
)

// Block-level elements get a line break so visible text keeps its
// paragraph and table-row separation after stripping.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"table": true, "tr": true, "td": true, "th": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "section": true, "article": true,
}

// File reads and normalizes one document. Files above maxBytes are
// rejected with ErrTooLarge before being read. A non-nil error always
// means "skip this document", never "treat as empty".
func File(path string, maxBytes int64) (string, error) {
	if maxBytes > 0 {
		if fi, err := os.Stat(path); err == nil && fi.Size() > maxBytes {
			return "", fmt.Errorf("%s (%d bytes): %w", filepath.Base(path), fi.Size(), internalerr.ErrTooLarge)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return Bytes(raw)
}

// Bytes normalizes a raw document buffer: decode, strip markup when the
// content looks tag-structured, collapse whitespace.
func Bytes(raw []byte) (string, error) {
	text := Decode(raw)

	if markupRE.MatchString(text) {
		if visible, err := stripMarkup(text); err == nil {
			text = visible
		}
		// On a parse failure the raw text is kept; the whitespace pass
		// still applies.
	}

	text = Collapse(text)
	if text == "" {
		return "", internalerr.ErrEmptyDocument
	}
	return text, nil
}

// Decode interprets raw bytes as UTF-8, falling back to Latin-1. The
// fallback cannot fail: every byte value is a valid Latin-1 code point.
func Decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// Collapse squeezes runs of horizontal whitespace to one space and any
// whitespace run containing a line break to one break, then trims the
// ends.
func Collapse(text string) string {
	text = hspaceRE.ReplaceAllString(text, " ")
	text = vspaceRE.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// stripMarkup extracts the visible text of an HTML-ish document,
// inserting a line break where block-level separation existed.
func stripMarkup(text string) (string, error) {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
			if blockElements[n.Data] {
				buf.WriteByte('\n')
			}
		case html.TextNode:
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteByte('\n')
		}
	}
	walk(doc)

	return buf.String(), nil
}
