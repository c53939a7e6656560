package excel

// Field is one of the canonical inventory columns every recognized
// spreadsheet variant is mapped onto. The value is the official display
// name used in error messages and generated files.
type Field string

const (
	FieldMaterialCode        Field = "Código del Material"
	FieldMaterialDescription Field = "Texto breve de material"
	FieldBaseUnit            Field = "Unidad de medida base"
	FieldLocation            Field = "Ubicación"
	FieldFreeQuantity        Field = "Libre utilización"
	FieldSafetyStock         Field = "Stock de seguridad"
	FieldMaxStock            Field = "Stock máximo"
)

// InventoryRequired is the column set every inventory or physical-count
// upload must resolve. WarehouseMapRequired adds the planning columns the
// 2D warehouse map carries; SafetyStock and MaxStock are synthesized as
// zero when the file does not bring them.
var (
	InventoryRequired = []Field{
		FieldMaterialCode,
		FieldMaterialDescription,
		FieldBaseUnit,
		FieldLocation,
		FieldFreeQuantity,
	}

	WarehouseMapRequired = []Field{
		FieldMaterialCode,
		FieldMaterialDescription,
		FieldBaseUnit,
		FieldSafetyStock,
		FieldMaxStock,
		FieldLocation,
		FieldFreeQuantity,
	}

	optionalWarehouseMapFields = map[Field]bool{
		FieldSafetyStock: true,
		FieldMaxStock:    true,
	}
)

// Recognized raw-header spellings per canonical field. SAP exports, hand
// edited count sheets and older templates all name these columns
// differently; keys are matched after NormalizeHeader so casing, accents
// and separators do not matter.
var fieldVariants = map[Field][]string{
	FieldMaterialCode: {
		"codigo del material",
		"codigo_material",
		"codigodelmaterial",
		"cod material",
		"codigo",
		"material",
	},
	FieldMaterialDescription: {
		"texto breve de material",
		"texto_breve_material",
		"descripcion",
	},
	FieldBaseUnit: {
		"unidad de medida base",
		"unidad de medida",
		"umb",
		"unidad",
	},
	FieldLocation: {
		"ubicación",
		"ubicacion",
		"location",
		"ubi",
	},
	FieldFreeQuantity: {
		"libre utilización",
		"libre utilizacion",
		"stock",
		"conteo",
	},
	FieldSafetyStock: {
		"stock de seguridad",
		"stock seguridad",
	},
	FieldMaxStock: {
		"stock máximo",
		"stock maximo",
	},
}

// variantIndex maps normalized header spellings to their canonical field.
// Built once at process start and never mutated afterwards, so concurrent
// requests can read it without locking.
var variantIndex = buildVariantIndex()

func buildVariantIndex() map[string]Field {
	index := make(map[string]Field)
	for field, variants := range fieldVariants {
		for _, v := range variants {
			index[NormalizeHeader(v)] = field
		}
	}
	return index
}
