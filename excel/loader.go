package excel

import (
	"io"

	"github.com/josecastillovelasquez23456-dot/warehouse-mro/utils"
	"github.com/xuri/excelize/v2"
)

// Row is one line of a canonical table. Text fields keep the source value
// untouched; quantity fields are cast to float64 with blank or garbage
// cells read as zero, so one dirty cell never blocks a whole batch.
type Row struct {
	MaterialCode string
	Description  string
	BaseUnit     string
	Location     string
	FreeQuantity float64
	SafetyStock  float64
	MaxStock     float64
}

// MalformedFileError signals that the uploaded bytes are not a readable
// spreadsheet at all (truncated file, wrong format, corrupt zip).
type MalformedFileError struct {
	Err error
}

func (e *MalformedFileError) Error() string {
	return "could not read spreadsheet: " + e.Err.Error()
}

func (e *MalformedFileError) Unwrap() error {
	return e.Err
}

// LoadInventory parses an inventory or physical-count upload. All five
// canonical columns must resolve or the load fails with
// MissingColumnsError listing what is absent.
func LoadInventory(r io.Reader) ([]Row, error) {
	return load(r, InventoryRequired, false)
}

// LoadWarehouseMap parses a 2D-warehouse-map upload. Safety and max stock
// are optional enrichments: when the file does not bring them every row
// gets zero instead of failing the upload.
func LoadWarehouseMap(r io.Reader) ([]Row, error) {
	return load(r, WarehouseMapRequired, true)
}

// load reads the stream exactly once; multi-sheet files are not handled
// specially, only the first sheet is read.
func load(r io.Reader, required []Field, lenient bool) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &MalformedFileError{Err: err}
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, &MalformedFileError{Err: err}
	}

	var headers []string
	if len(rows) > 0 {
		headers = rows[0]
	}

	mapping, missing := MapColumns(headers, required)
	if lenient {
		missing = dropOptional(missing)
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	out := make([]Row, 0, max(len(rows)-1, 0))
	for _, raw := range rows[1:] {
		row := Row{
			MaterialCode: cellAt(raw, mapping[FieldMaterialCode]),
			Description:  cellAt(raw, mapping[FieldMaterialDescription]),
			BaseUnit:     cellAt(raw, mapping[FieldBaseUnit]),
			Location:     cellAt(raw, mapping[FieldLocation]),
			FreeQuantity: quantityAt(raw, mapping[FieldFreeQuantity]),
		}
		if idx, ok := mapping[FieldSafetyStock]; ok {
			row.SafetyStock = quantityAt(raw, idx)
		}
		if idx, ok := mapping[FieldMaxStock]; ok {
			row.MaxStock = quantityAt(raw, idx)
		}
		out = append(out, row)
	}
	return out, nil
}

func dropOptional(missing []Field) []Field {
	var out []Field
	for _, f := range missing {
		if !optionalWarehouseMapFields[f] {
			out = append(out, f)
		}
	}
	return out
}

// GetRows returns ragged rows: trailing empty cells are omitted.
func cellAt(raw []string, idx int) string {
	if idx < len(raw) {
		return raw[idx]
	}
	return ""
}

func quantityAt(raw []string, idx int) float64 {
	dec, err := utils.ParseDecimal(cellAt(raw, idx))
	if err != nil {
		return 0
	}
	return dec.InexactFloat64()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
