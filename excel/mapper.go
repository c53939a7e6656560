package excel

import "strings"

// MissingColumnsError is returned when a parsed table is missing required
// canonical columns. The message enumerates the official names so the user
// can fix the file instead of guessing.
type MissingColumnsError struct {
	Missing []Field
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return "the file is missing required columns: " + strings.Join(names, ", ")
}

// MapColumns resolves a header row to canonical fields. The returned map
// holds the column index of each resolved field; when two headers resolve
// to the same field the later column wins. Fields from required that no
// header resolved are reported in missing, preserving required order.
func MapColumns(headers []string, required []Field) (map[Field]int, []Field) {
	mapping := make(map[Field]int)
	for i, h := range headers {
		if field, ok := variantIndex[NormalizeHeader(h)]; ok {
			mapping[field] = i
		}
	}

	var missing []Field
	for _, f := range required {
		if _, ok := mapping[f]; !ok {
			missing = append(missing, f)
		}
	}
	return mapping, missing
}
