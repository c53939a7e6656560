package excel

import "testing"

func TestMapColumnsResolvesVariants(t *testing.T) {
	headers := []string{"CODIGO_MATERIAL", "Descripción", "UMB", "ubicacion", "Libre Utilización"}

	mapping, missing := MapColumns(headers, InventoryRequired)
	if len(missing) != 0 {
		t.Fatalf("expected no missing columns, got %v", missing)
	}

	want := map[Field]int{
		FieldMaterialCode:        0,
		FieldMaterialDescription: 1,
		FieldBaseUnit:            2,
		FieldLocation:            3,
		FieldFreeQuantity:        4,
	}
	for field, idx := range want {
		if mapping[field] != idx {
			t.Errorf("field %q mapped to column %d, want %d", field, mapping[field], idx)
		}
	}
}

func TestMapColumnsLatestWins(t *testing.T) {
	// "Stock" and "Conteo" both resolve to free quantity; the later
	// column must win.
	headers := []string{"Codigo", "Descripcion", "Unidad", "Ubicacion", "Stock", "Conteo"}

	mapping, missing := MapColumns(headers, InventoryRequired)
	if len(missing) != 0 {
		t.Fatalf("expected no missing columns, got %v", missing)
	}
	if mapping[FieldFreeQuantity] != 5 {
		t.Errorf("free quantity mapped to column %d, want 5 (later duplicate wins)", mapping[FieldFreeQuantity])
	}
}

func TestMapColumnsReportsMissingInOrder(t *testing.T) {
	headers := []string{"Código del Material", "Ubicación"}

	_, missing := MapColumns(headers, InventoryRequired)
	want := []Field{FieldMaterialDescription, FieldBaseUnit, FieldFreeQuantity}
	if len(missing) != len(want) {
		t.Fatalf("missing = %v, want %v", missing, want)
	}
	for i, f := range want {
		if missing[i] != f {
			t.Errorf("missing[%d] = %q, want %q", i, missing[i], f)
		}
	}
}

func TestMissingColumnsErrorMessage(t *testing.T) {
	err := &MissingColumnsError{Missing: []Field{FieldBaseUnit, FieldFreeQuantity}}
	want := "the file is missing required columns: Unidad de medida base, Libre utilización"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestMapColumnsUnknownHeadersIgnored(t *testing.T) {
	headers := []string{"Centro", "Almacén", "Lote"}

	mapping, missing := MapColumns(headers, InventoryRequired)
	if len(mapping) != 0 {
		t.Errorf("expected empty mapping, got %v", mapping)
	}
	if len(missing) != len(InventoryRequired) {
		t.Errorf("expected all %d required columns missing, got %v", len(InventoryRequired), missing)
	}
}
