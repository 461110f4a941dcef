package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadCSV reads a delimited file. The delimiter is sniffed from the
// extension: tab for .tsv, comma otherwise.
func LoadCSV(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = sniffDelimiter(path)

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, noRowsErr(filepath.Base(path))
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row: %w", err)
		}
		cp := make([]string, len(rec))
		copy(cp, rec)
		records = append(records, cp)
	}

	src := &Source{
		Name:    filepath.Base(path),
		Headers: headers,
		Rows:    rawRows(headers, records),
	}
	if len(src.Rows) == 0 {
		return nil, noRowsErr(src.Name)
	}
	return src, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
