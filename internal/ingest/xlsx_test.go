package ingest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// writeWorkbook builds a minimal two-sheet xlsx: shared strings for headers,
// inline numbers for data cells.
func writeWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	parts := map[string]string{
		"xl/workbook.xml": `<?xml version="1.0"?>
<workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets>
    <sheet name="Households" sheetId="1" r:id="rId1"/>
    <sheet name="Notes" sheetId="2" r:id="rId2"/>
  </sheets>
</workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0"?>
<Relationships>
  <Relationship Id="rId1" Target="worksheets/sheet1.xml"/>
  <Relationship Id="rId2" Target="worksheets/sheet2.xml"/>
</Relationships>`,
		"xl/sharedStrings.xml": `<?xml version="1.0"?>
<sst><si><t>household_id</t></si><si><t>lines_count</t></si><si><t>HH-1</t></si></sst>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?>
<worksheet>
  <sheetData>
    <row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
    <row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2"><v>2</v></c></row>
  </sheetData>
</worksheet>`,
		"xl/worksheets/sheet2.xml": `<?xml version="1.0"?>
<worksheet><sheetData>
  <row r="1"><c r="A1" t="inlineStr"><is><t>note</t></is></c></row>
  <row r="2"><c r="A2" t="inlineStr"><is><t>hello</t></is></c></row>
</sheetData></worksheet>`,
	}
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return path
}

func TestLoadXLSXFirstSheet(t *testing.T) {
	path := writeWorkbook(t)
	src, err := LoadXLSX(path, "", 0)
	if err != nil {
		t.Fatalf("LoadXLSX: %v", err)
	}
	if len(src.Headers) != 2 || src.Headers[0] != "household_id" {
		t.Fatalf("headers = %v", src.Headers)
	}
	if len(src.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(src.Rows))
	}
	if src.Rows[0]["household_id"] != "HH-1" || src.Rows[0]["lines_count"] != "2" {
		t.Fatalf("row = %v", src.Rows[0])
	}
}

func TestLoadXLSXByName(t *testing.T) {
	path := writeWorkbook(t)
	src, err := LoadXLSX(path, "Notes", 0)
	if err != nil {
		t.Fatalf("LoadXLSX: %v", err)
	}
	if src.Rows[0]["note"] != "hello" {
		t.Fatalf("notes sheet row = %v", src.Rows[0])
	}
}

func TestLoadXLSXUnknownSheet(t *testing.T) {
	path := writeWorkbook(t)
	if _, err := LoadXLSX(path, "Nope", 0); err == nil {
		t.Fatal("expected error for unknown sheet name")
	}
}

func TestLoadDispatchesByExtension(t *testing.T) {
	path := writeWorkbook(t)
	src, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(src.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(src.Rows))
	}
}
