// Package csvfile writes records to a CSV file incrementally: the
// header once, then one append per company batch, so partial results
// survive a mid-run failure.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/cognicore/chainsift/pkg/chainsift/store"
)

var header = []string{"company_id", "company_name", "contract_id", "effective_date", "sentence"}

// Store appends records to a CSV file.
type Store struct {
	f *os.File
	w *csv.Writer
}

// Open creates or appends to the output file. A new or empty file gets
// a UTF-8 byte order mark and the header row first, so spreadsheet
// tools round-trip non-ASCII company names.
func Open(path string) (*Store, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat output %s: %w", path, err)
	}

	s := &Store{f: f, w: csv.NewWriter(f)}
	if fi.Size() == 0 {
		if _, err := f.WriteString("\uFEFF"); err != nil {
			f.Close()
			return nil, fmt.Errorf("write BOM: %w", err)
		}
		if err := s.w.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
		s.w.Flush()
		if err := s.w.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	return s, nil
}

// AppendBatch writes one company's records and flushes them to disk.
func (s *Store) AppendBatch(ctx context.Context, recs []store.Record) error {
	for _, r := range recs {
		row := []string{r.CompanyID, r.CompanyName, r.ContractID, r.EffectiveDate, r.Sentence}
		if err := s.w.Write(row); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("flush batch: %w", err)
	}
	return nil
}

// Close flushes pending rows and closes the file.
func (s *Store) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
