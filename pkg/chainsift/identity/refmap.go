package identity

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/cognicore/chainsift/pkg/chainsift/normalize"
)

// RefTable maps canonical CIKs to company names. It is read-only after
// load and safe to share across companies.
type RefTable struct {
	names map[string]string
}

// EmptyRefTable returns a table that resolves nothing. Used when the
// reference file is missing or malformed, which is non-fatal.
func EmptyRefTable() *RefTable {
	return &RefTable{names: make(map[string]string)}
}

// LoadRefTable reads a header-addressed CSV mapping idColumn to
// nameColumn. Duplicate ids keep the first occurrence. The file bytes
// are decoded like any other document (UTF-8, Latin-1 fallback).
func LoadRefTable(path, idColumn, nameColumn string) (*RefTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return EmptyRefTable(), fmt.Errorf("read reference table: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(normalize.Decode(raw)))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return EmptyRefTable(), fmt.Errorf("parse reference table %s: %w", path, err)
	}
	if len(rows) < 2 {
		return EmptyRefTable(), nil
	}

	idIdx, nameIdx := -1, -1
	for i, h := range rows[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
		if idIdx < 0 && strings.EqualFold(h, idColumn) {
			idIdx = i
		}
		if nameIdx < 0 && strings.EqualFold(h, nameColumn) {
			nameIdx = i
		}
	}
	if idIdx < 0 || nameIdx < 0 {
		return EmptyRefTable(), fmt.Errorf("reference table %s: missing %q or %q column", path, idColumn, nameColumn)
	}

	t := EmptyRefTable()
	for _, row := range rows[1:] {
		if idIdx >= len(row) || nameIdx >= len(row) {
			continue
		}
		id := canonicalKey(row[idIdx])
		name := strings.TrimSpace(row[nameIdx])
		if id == "" || name == "" {
			continue
		}
		if _, ok := t.names[id]; !ok {
			t.names[id] = name
		}
	}
	return t, nil
}

// Lookup returns the name for a canonical CIK.
func (t *RefTable) Lookup(cik string) (string, bool) {
	name, ok := t.names[canonicalKey(cik)]
	return name, ok
}

// Len returns the number of distinct ids loaded.
func (t *RefTable) Len() int {
	return len(t.names)
}

// canonicalKey matches the folder/header canonical form: trimmed, no
// leading zeros.
func canonicalKey(id string) string {
	id = strings.TrimSpace(id)
	trimmed := strings.TrimLeft(id, "0")
	if trimmed == "" && id != "" {
		return "0"
	}
	return trimmed
}
