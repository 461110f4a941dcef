package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFixture(t, "book.csv",
		"household_id,lines_count,renewal_date\n"+
			"HH-1,2,2026-09-01\n"+
			"HH-2,1,2026-10-15\n")

	src, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if src.Name != "book.csv" {
		t.Fatalf("name = %q", src.Name)
	}
	if len(src.Headers) != 3 || src.Headers[0] != "household_id" {
		t.Fatalf("headers = %v", src.Headers)
	}
	if len(src.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(src.Rows))
	}
	if src.Rows[1]["household_id"] != "HH-2" {
		t.Fatalf("row 2 = %v", src.Rows[1])
	}
}

func TestLoadTSV(t *testing.T) {
	path := writeFixture(t, "book.tsv",
		"household_id\tlines_count\nHH-1\t3\n")
	src, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.Rows[0]["lines_count"] != "3" {
		t.Fatalf("tab-delimited row = %v", src.Rows[0])
	}
}

func TestLoadCSVRaggedRows(t *testing.T) {
	path := writeFixture(t, "ragged.csv",
		"household_id,lines_count,segment_tier\n"+
			"HH-1,2\n"+
			"HH-2,1,Gold,extra-cell\n")
	src, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(src.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(src.Rows))
	}
	if _, ok := src.Rows[0]["segment_tier"]; ok {
		t.Fatal("short row should not carry a value for the missing column")
	}
	if src.Rows[1]["segment_tier"] != "Gold" {
		t.Fatalf("row 2 = %v", src.Rows[1])
	}
}

func TestLoadCSVEmpty(t *testing.T) {
	for name, content := range map[string]string{
		"empty.csv":       "",
		"header-only.csv": "household_id,lines_count\n",
		"blank-rows.csv":  "household_id,lines_count\n,\n,\n",
	} {
		path := writeFixture(t, name, content)
		if _, err := LoadCSV(path); err == nil {
			t.Fatalf("%s: expected error for file with no usable rows", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
