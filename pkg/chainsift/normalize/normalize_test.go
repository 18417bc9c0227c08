package normalize

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/chainsift/pkg/chainsift/internalerr"
)

func TestBytesPlainTextWhitespace(t *testing.T) {
	got, err := Bytes([]byte("THIS  LOAN\t AGREEMENT\n\n\n is made  today. \n"))
	if err != nil {
		t.Fatal(err)
	}
	want := "THIS LOAN AGREEMENT\nis made today."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBytesStripsMarkup(t *testing.T) {
	raw := []byte("<html><body><p>This Loan Agreement is effective.</p><p>The supplier delivers goods.</p></body></html>")
	got, err := Bytes(raw)
	if err != nil {
		t.Fatal(err)
	}
	want := "This Loan Agreement is effective.\nThe supplier delivers goods."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBytesSkipsScriptAndStyle(t *testing.T) {
	raw := []byte("<html><head><style>p{color:red}</style></head><body><script>var x=1;</script><p>Visible text only.</p></body></html>")
	got, err := Bytes(raw)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "color") || strings.Contains(got, "var x") {
		t.Errorf("script/style content leaked: %q", got)
	}
	if !strings.Contains(got, "Visible text only.") {
		t.Errorf("visible text lost: %q", got)
	}
}

func TestBytesLatin1Fallback(t *testing.T) {
	// 0xE9 is not valid standalone UTF-8; the Latin-1 fallback maps it
	// to "é" instead of failing.
	got, err := Bytes([]byte("Soci\xe9t\xe9 G\xe9n\xe9rale loan agreement"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "Société Générale loan agreement" {
		t.Errorf("got %q", got)
	}
}

func TestBytesEmptyDocument(t *testing.T) {
	if _, err := Bytes([]byte("  \n\t \n")); !errors.Is(err, internalerr.ErrEmptyDocument) {
		t.Errorf("Expected ErrEmptyDocument, got %v", err)
	}
}

func TestFileTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.txt")
	if err := os.WriteFile(path, []byte("this file exceeds the configured bound"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := File(path, 10); !errors.Is(err, internalerr.ErrTooLarge) {
		t.Errorf("Expected ErrTooLarge, got %v", err)
	}
}

func TestFileMissing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "absent.txt"), 0); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestFileReadsAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.htm")
	if err := os.WriteFile(path, []byte("<div>Credit  Agreement</div><div>dated as of January 5, 2004</div>"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := File(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := "Credit Agreement\ndated as of January 5, 2004"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
