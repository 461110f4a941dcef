// Package ingest reads household snapshot files (CSV, TSV, XLSX) into raw
// header/row form for the schema layer to normalize. Readers are tolerant:
// ragged rows are padded, unknown cells pass through as strings, and only a
// file that yields no usable rows is a hard error.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bundlebench/bundlebench/internal/schema"
)

// Source is a parsed input file before schema resolution.
type Source struct {
	Name    string
	Headers []string
	Rows    []schema.RawRow
}

// Load dispatches on file extension. An unrecognized extension is treated
// as CSV since exported books frequently arrive as ".txt" or bare files.
func Load(path string) (*Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadXLSX(path, "", 0)
	default:
		return LoadCSV(path)
	}
}

// rawRows zips headers with record values; missing trailing cells are
// simply absent from the map, extra cells are dropped.
func rawRows(headers []string, records [][]string) []schema.RawRow {
	out := make([]schema.RawRow, 0, len(records))
	for _, rec := range records {
		row := schema.RawRow{}
		empty := true
		for i, h := range headers {
			if i >= len(rec) {
				break
			}
			v := strings.TrimSpace(rec[i])
			row[h] = v
			if v != "" {
				empty = false
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}

func noRowsErr(name string) error {
	return fmt.Errorf("no usable rows in %s", name)
}
