package excel

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestLoadInventory(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Código del Material", "Texto breve de material", "Unidad de medida base", "Ubicación", "Libre utilización"},
		{"M1", "Rodamiento 6204", "UN", "E006B01", 12},
		{"M2", "Correa A-42", "UN", "E026A02", 3.5},
	})

	rows, err := LoadInventory(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].MaterialCode != "M1" || rows[0].Location != "E006B01" || rows[0].FreeQuantity != 12 {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].FreeQuantity != 3.5 {
		t.Errorf("row 1 quantity = %v, want 3.5", rows[1].FreeQuantity)
	}
}

func TestLoadInventoryVariantHeaders(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"CODIGO", "Descripción", "UMB", "ubi", "Conteo"},
		{"M1", "Filtro", "UN", "E010A01", 5},
	})

	rows, err := LoadInventory(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].FreeQuantity != 5 {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestLoadInventoryMissingColumns(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Código del Material", "Ubicación"},
		{"M1", "E006B01"},
	})

	_, err := LoadInventory(r)
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	want := []Field{FieldMaterialDescription, FieldBaseUnit, FieldFreeQuantity}
	if len(missing.Missing) != len(want) {
		t.Fatalf("missing = %v, want %v", missing.Missing, want)
	}
	for i, f := range want {
		if missing.Missing[i] != f {
			t.Errorf("missing[%d] = %q, want %q", i, missing.Missing[i], f)
		}
	}
}

func TestLoadInventoryDirtyQuantities(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Código del Material", "Texto breve de material", "Unidad de medida base", "Ubicación", "Libre utilización"},
		{"M1", "Filtro", "UN", "E010A01", ""},
		{"M2", "Correa", "UN", "E010A02", "n/a"},
		{"M3", "Aceite", "LT", "E010A03", "8"},
	})

	rows, err := LoadInventory(r)
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].FreeQuantity != 0 || rows[1].FreeQuantity != 0 {
		t.Errorf("blank and garbage quantities must read as 0, got %v and %v", rows[0].FreeQuantity, rows[1].FreeQuantity)
	}
	if rows[2].FreeQuantity != 8 {
		t.Errorf("row 2 quantity = %v, want 8", rows[2].FreeQuantity)
	}
}

func TestLoadInventoryRaggedRows(t *testing.T) {
	// Trailing empty cells are omitted by GetRows; short rows must not
	// panic and missing cells read as empty/zero.
	r := buildWorkbook(t, [][]interface{}{
		{"Código del Material", "Texto breve de material", "Unidad de medida base", "Ubicación", "Libre utilización"},
		{"M1"},
	})

	rows, err := LoadInventory(r)
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].Location != "" || rows[0].FreeQuantity != 0 {
		t.Errorf("row = %+v, want empty location and zero quantity", rows[0])
	}
}

func TestLoadInventoryMalformedFile(t *testing.T) {
	_, err := LoadInventory(bytes.NewReader([]byte("this is not a spreadsheet")))
	var malformed *MalformedFileError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedFileError, got %v", err)
	}
}

func TestLoadWarehouseMapLenient(t *testing.T) {
	// No safety or max stock columns: the lenient loader zero-fills them.
	r := buildWorkbook(t, [][]interface{}{
		{"Código del Material", "Texto breve de material", "Unidad de medida base", "Ubicación", "Libre utilización"},
		{"M1", "Filtro", "UN", "E010A01", 6},
	})

	rows, err := LoadWarehouseMap(r)
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].SafetyStock != 0 || rows[0].MaxStock != 0 {
		t.Errorf("optional columns must zero-fill, got %+v", rows[0])
	}
}

func TestLoadWarehouseMapWithPlanningColumns(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Código del Material", "Texto breve de material", "Unidad de medida base", "Stock de seguridad", "Stock máximo", "Ubicación", "Libre utilización"},
		{"M1", "Filtro", "UN", 2, 20, "E010A01", 6},
	})

	rows, err := LoadWarehouseMap(r)
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].SafetyStock != 2 || rows[0].MaxStock != 20 {
		t.Errorf("planning columns not read: %+v", rows[0])
	}
}

func TestLoadWarehouseMapStillRequiresCore(t *testing.T) {
	// Leniency covers the planning columns only.
	r := buildWorkbook(t, [][]interface{}{
		{"Código del Material", "Ubicación"},
	})

	_, err := LoadWarehouseMap(r)
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	for _, f := range missing.Missing {
		if optionalWarehouseMapFields[f] {
			t.Errorf("optional field %q reported as missing", f)
		}
	}
}
