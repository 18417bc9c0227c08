// Command backfill-names fills missing company names in the CIK
// reference CSV from the SEC company-facts service. The SEC requires a
// descriptive User-Agent with contact details and allows at most ten
// requests per second; both are enforced here.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

const factsURL = "https://data.sec.gov/api/xbrl/companyfacts/CIK%s.json"

func main() {
	var (
		inPath    = flag.String("map", "", "Reference CSV to repair (required)")
		outPath   = flag.String("out", "", "Output path (default: overwrite input)")
		userAgent = flag.String("user-agent", "", "User-Agent with contact info, e.g. \"Example Corp admin@example.com\" (required)")
		idCol     = flag.String("id-column", "CIK", "Identifier column name")
		nameCol   = flag.String("name-column", "COMPANY_NAME", "Name column name")
	)
	flag.Parse()

	if *inPath == "" {
		log.Fatal("--map required")
	}
	if *userAgent == "" {
		log.Fatal("--user-agent required (the SEC rejects anonymous clients)")
	}
	if *outPath == "" {
		*outPath = *inPath
	}

	rows, err := readCSV(*inPath)
	if err != nil {
		log.Fatal("Failed to read reference CSV: ", err)
	}
	if len(rows) < 2 {
		log.Fatal("Reference CSV has no data rows")
	}

	idIdx, nameIdx := columnIndexes(rows[0], *idCol, *nameCol)
	if idIdx < 0 || nameIdx < 0 {
		log.Fatalf("Missing %q or %q column in %s", *idCol, *nameCol, *inPath)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	filled, missing := 0, 0

	for _, row := range rows[1:] {
		if idIdx >= len(row) || nameIdx >= len(row) {
			continue
		}
		cik := strings.TrimSpace(row[idIdx])
		if cik == "" || strings.TrimSpace(row[nameIdx]) != "" {
			continue
		}
		missing++

		name, err := fetchName(client, cik, *userAgent)
		if err != nil {
			log.Printf("CIK %s: %v", cik, err)
		} else if name != "" {
			row[nameIdx] = name
			filled++
		}

		// Stay under the SEC's 10 req/s ceiling.
		time.Sleep(100 * time.Millisecond)
	}

	if err := writeCSV(*outPath, rows); err != nil {
		log.Fatal("Failed to write output: ", err)
	}

	log.Printf("✓ Backfill complete: %d/%d missing names filled, saved to %s", filled, missing, *outPath)
}

// fetchName queries the company-facts endpoint for one CIK and returns
// its entityName. Transient server errors are retried with backoff; a
// 404 means the CIK is unknown to the SEC and is not retried.
func fetchName(client *http.Client, cik, userAgent string) (string, error) {
	// The endpoint wants the fixed-width ten-digit form.
	url := fmt.Sprintf(factsURL, padCIK(cik))

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<attempt) * time.Second)
		}

		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return "", fmt.Errorf("not known to the SEC (404)")
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d", resp.StatusCode)
			continue
		case resp.StatusCode != http.StatusOK:
			resp.Body.Close()
			return "", fmt.Errorf("HTTP %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		var facts struct {
			EntityName string `json:"entityName"`
		}
		if err := json.Unmarshal(body, &facts); err != nil {
			return "", fmt.Errorf("parse response: %w", err)
		}
		return strings.TrimSpace(facts.EntityName), nil
	}
	return "", lastErr
}

func padCIK(cik string) string {
	cik = strings.TrimLeft(strings.TrimSpace(cik), "0")
	if len(cik) >= 10 {
		return cik
	}
	return strings.Repeat("0", 10-len(cik)) + cik
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func columnIndexes(header []string, idCol, nameCol string) (int, int) {
	idIdx, nameIdx := -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
		if idIdx < 0 && strings.EqualFold(h, idCol) {
			idIdx = i
		}
		if nameIdx < 0 && strings.EqualFold(h, nameCol) {
			nameIdx = i
		}
	}
	return idIdx, nameIdx
}
