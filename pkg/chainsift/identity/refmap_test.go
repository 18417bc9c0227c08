package identity

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRefCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cik_tickers.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRefTable(t *testing.T) {
	path := writeRefCSV(t, "CIK,TICKER,COMPANY_NAME\n12345,EXC,Example Corp\n0000054321,OFI,Other Filer Inc\n")

	table, err := LoadRefTable(path, "CIK", "COMPANY_NAME")
	if err != nil {
		t.Fatal("Load failed:", err)
	}
	if table.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", table.Len())
	}

	if name, ok := table.Lookup("12345"); !ok || name != "Example Corp" {
		t.Errorf("Lookup(12345) = %q, %v", name, ok)
	}
	// Keys are canonical: padded and unpadded forms resolve alike.
	if name, ok := table.Lookup("0000054321"); !ok || name != "Other Filer Inc" {
		t.Errorf("Lookup with leading zeros = %q, %v", name, ok)
	}
	if name, ok := table.Lookup("54321"); !ok || name != "Other Filer Inc" {
		t.Errorf("Lookup canonical = %q, %v", name, ok)
	}
}

func TestLoadRefTableKeepsFirstDuplicate(t *testing.T) {
	path := writeRefCSV(t, "CIK,COMPANY_NAME\n12345,First Name Corp\n12345,Second Name Corp\n")

	table, err := LoadRefTable(path, "CIK", "COMPANY_NAME")
	if err != nil {
		t.Fatal("Load failed:", err)
	}
	if name, _ := table.Lookup("12345"); name != "First Name Corp" {
		t.Errorf("Duplicate ids should keep the first occurrence, got %q", name)
	}
}

func TestLoadRefTableMissingFileIsNonFatal(t *testing.T) {
	table, err := LoadRefTable(filepath.Join(t.TempDir(), "absent.csv"), "CIK", "COMPANY_NAME")
	if err == nil {
		t.Error("Expected an error for a missing file")
	}
	if table == nil || table.Len() != 0 {
		t.Error("A missing file must still yield a usable empty table")
	}
}

func TestLoadRefTableMissingColumns(t *testing.T) {
	path := writeRefCSV(t, "ID,NAME\n1,Foo\n")

	table, err := LoadRefTable(path, "CIK", "COMPANY_NAME")
	if err == nil {
		t.Error("Expected an error for missing columns")
	}
	if table.Len() != 0 {
		t.Error("Malformed table must resolve nothing")
	}
}

func TestLoadRefTableLatin1Fallback(t *testing.T) {
	// 0xE9 is "é" in Latin-1 and invalid as standalone UTF-8.
	path := writeRefCSV(t, "CIK,COMPANY_NAME\n12345,Soci\xe9t\xe9 Anonyme\n")

	table, err := LoadRefTable(path, "CIK", "COMPANY_NAME")
	if err != nil {
		t.Fatal("Load failed:", err)
	}
	if name, _ := table.Lookup("12345"); name != "Société Anonyme" {
		t.Errorf("Latin-1 names should round-trip: got %q", name)
	}
}
