// Package edgar walks an EDGAR-style filing archive:
// {root}/{cik}/{filing_id}/{files}, with one or more primary filing
// documents directly under the company folder.
package edgar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/chainsift/pkg/chainsift/internalerr"
)

// Company is one numeric CIK folder under the archive root.
type Company struct {
	// FolderID is the folder name, a numeric string.
	FolderID string
	Path     string
}

// Attachment is a candidate document inside a filing folder.
type Attachment struct {
	FilingID string
	Path     string
	Name     string
	// Stem is the file name without its extension; contract ids are
	// built as {filing_id}_{stem}.
	Stem string
}

// Companies lists the numeric company folders under root in name order.
// A missing root or a root with no company folders is fatal to the run.
func Companies(root string) ([]Company, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read archive root %s: %w", root, err)
	}

	var companies []Company
	for _, e := range entries {
		if !e.IsDir() || !isNumeric(e.Name()) {
			continue
		}
		companies = append(companies, Company{
			FolderID: e.Name(),
			Path:     filepath.Join(root, e.Name()),
		})
	}
	if len(companies) == 0 {
		return nil, fmt.Errorf("%s: %w", root, internalerr.ErrNoCompanies)
	}
	return companies, nil
}

// Filings lists the filing folders under a company in name order.
func (c Company) Filings() ([]string, error) {
	entries, err := os.ReadDir(c.Path)
	if err != nil {
		return nil, fmt.Errorf("read company folder %s: %w", c.Path, err)
	}

	var filings []string
	for _, e := range entries {
		if e.IsDir() {
			filings = append(filings, filepath.Join(c.Path, e.Name()))
		}
	}
	return filings, nil
}

// PrimaryFiling locates the company's primary filing document: the
// first plain-text file directly in the company folder, or, failing
// that, a filing folder's own cover document.
func (c Company) PrimaryFiling() (string, bool) {
	entries, err := os.ReadDir(c.Path)
	if err != nil {
		return "", false
	}

	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			return filepath.Join(c.Path, e.Name()), true
		}
	}

	// Fallback: the cover document inside a filing folder, identified
	// the same way attachments are excluded.
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		filingDir := filepath.Join(c.Path, e.Name())
		files, err := os.ReadDir(filingDir)
		if err != nil {
			continue
		}
		for _, f := range files {
			if !f.IsDir() && IsPrimary(f.Name(), e.Name()) {
				return filepath.Join(filingDir, f.Name()), true
			}
		}
	}
	return "", false
}

// Attachments lists the processable documents of one filing folder,
// excluding the filing's own cover document.
func Attachments(filingPath string) ([]Attachment, error) {
	filingID := filepath.Base(filingPath)

	entries, err := os.ReadDir(filingPath)
	if err != nil {
		return nil, fmt.Errorf("read filing folder %s: %w", filingPath, err)
	}

	var atts []Attachment
	for _, e := range entries {
		if e.IsDir() || !hasDocumentExt(e.Name()) {
			continue
		}
		if IsPrimary(e.Name(), filingID) {
			continue
		}
		atts = append(atts, Attachment{
			FilingID: filingID,
			Path:     filepath.Join(filingPath, e.Name()),
			Name:     e.Name(),
			Stem:     stem(e.Name()),
		})
	}
	return atts, nil
}

// IsPrimary reports whether a file is the filing's own cover document:
// its stem equals the filing id with hyphens ignored, or its name
// carries an "(8-K)"-style form marker.
func IsPrimary(name, filingID string) bool {
	s := strings.ReplaceAll(stem(name), "-", "")
	id := strings.ReplaceAll(filingID, "-", "")
	if s == id {
		return true
	}
	return strings.Contains(name, "(8-K)")
}

func hasDocumentExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".htm", ".html":
		return true
	}
	return false
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
