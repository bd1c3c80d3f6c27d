package csvtable

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestParseCSVBasic(t *testing.T) {
	path := writeTempFile(t, "in.csv",
		"ContactName,InvoiceNumber,Description,Quantity,UnitAmount,TaxType,TaxAmount\n"+
			"Acme, INV1 ,#1 Widget,2,10,Standard,3.33\n"+
			"\n"+
			"Acme,INV1,#1 Shipping,1,5,Standard,0.83\n")

	table, err := ParseCSV(path, ",")
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if table.RowCount() != 2 {
		t.Fatalf("RowCount = %d, want 2 (blank row skipped)", table.RowCount())
	}
	if got := table.Field(table.Rows[0], "InvoiceNumber"); got != "INV1" {
		t.Errorf("InvoiceNumber = %q, want trimmed %q", got, "INV1")
	}
	if got := table.Field(table.Rows[1], "Description"); got != "#1 Shipping" {
		t.Errorf("Description = %q, want %q", got, "#1 Shipping")
	}
}

func TestParseCSVHeaderVariants(t *testing.T) {
	path := writeTempFile(t, "in.csv",
		"*ContactName,*InvoiceNumber,description,QUANTITY,*UnitAmount,TaxType\n"+
			"Acme,INV1,Widget,2,10,Standard\n")

	table, err := ParseCSV(path, ",")
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}

	row := table.Rows[0]
	checks := map[string]string{
		"ContactName":   "Acme",
		"InvoiceNumber": "INV1",
		"Description":   "Widget",
		"Quantity":      "2",
		"UnitAmount":    "10",
	}
	for name, want := range checks {
		if got := table.Field(row, name); got != want {
			t.Errorf("Field(%q) = %q, want %q", name, got, want)
		}
	}
	if !table.HasColumn("unitamount") {
		t.Error("HasColumn should match case-insensitively")
	}
}

func TestParseCSVSchemaMismatch(t *testing.T) {
	path := writeTempFile(t, "in.csv",
		"Animal,Sound,Legs\ncow,moo,4\n")

	_, err := ParseCSV(path, ",")
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("err = %v, want ErrSchemaMismatch", err)
	}
}

func TestParseCSVFallbackOnMalformedQuoting(t *testing.T) {
	// A bare quote inside an unquoted field fails the strict parse; the
	// fallback line splitter must still deliver the rows.
	path := writeTempFile(t, "in.csv",
		"ContactName,InvoiceNumber,Description,Quantity,UnitAmount,TaxType\n"+
			"Acme,INV1,12\" Widget,1,10,Standard\n")

	table, err := ParseCSV(path, ",")
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if table.RowCount() != 1 {
		t.Fatalf("RowCount = %d, want 1", table.RowCount())
	}
	if got := table.Field(table.Rows[0], "Description"); got != "12\" Widget" {
		t.Errorf("Description = %q, want %q", got, "12\" Widget")
	}
}

func TestParseCSVEmptyFile(t *testing.T) {
	path := writeTempFile(t, "in.csv", "")

	_, err := ParseCSV(path, ",")
	if !errors.Is(err, ErrParseFailure) {
		t.Fatalf("err = %v, want ErrParseFailure", err)
	}
}

func TestFieldMissingColumn(t *testing.T) {
	table, err := FromRecords([][]string{
		{"ContactName", "Description"},
		{"Acme", "Widget"},
	}, "mem")
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	if got := table.Field(table.Rows[0], "UnitAmount"); got != "" {
		t.Errorf("Field on absent column = %q, want empty", got)
	}
}

func TestFirstColumnFallback(t *testing.T) {
	table, err := FromRecords([][]string{
		{"Customer", "InvoiceNumber", "Description"},
		{"Acme", "INV1", "Widget"},
	}, "mem")
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	if got := table.FirstColumn(table.Rows[0]); got != "Acme" {
		t.Errorf("FirstColumn = %q, want %q", got, "Acme")
	}
}

func TestShortRowPadding(t *testing.T) {
	table, err := FromRecords([][]string{
		{"ContactName", "InvoiceNumber", "Description"},
		{"Acme"},
	}, "mem")
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	if got := table.Field(table.Rows[0], "Description"); got != "" {
		t.Errorf("missing trailing cell = %q, want empty", got)
	}
}
