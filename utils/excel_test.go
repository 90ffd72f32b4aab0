package utils

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteReportSheet(t *testing.T) {
	headers := []string{"SL.No", "Date", "Customer Name"}
	rows := [][]interface{}{
		{1, "05/01/2025", "ACME Traders"},
		{2, "06/01/2025", "Beta Mills"},
	}

	buf, err := WriteReportSheet(headers, rows)
	if err != nil {
		t.Fatalf("WriteReportSheet: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex("Report"); idx < 0 {
		t.Fatalf("workbook has no Report sheet: %v", f.GetSheetList())
	}

	for col, want := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		got, err := f.GetCellValue("Report", cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != want {
			t.Fatalf("header %s = %q, want %q", cell, got, want)
		}
	}

	got, _ := f.GetCellValue("Report", "C3")
	if got != "Beta Mills" {
		t.Fatalf("C3 = %q, want Beta Mills", got)
	}
}

func TestWriteReportSheetHeadersOnly(t *testing.T) {
	buf, err := WriteReportSheet([]string{"Sr No"}, nil)
	if err != nil {
		t.Fatalf("WriteReportSheet: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Report")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected a single header row, got %d rows", len(rows))
	}
}
