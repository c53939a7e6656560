package excel

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator characters folded into spaces before comparison. The two
// unicode entries cover BOM and zero-width-space garbage that CSV-to-xlsx
// conversions leave inside header cells.
var headerSeparators = []string{"-", "_", ".", ",", ";", "\uFEFF", "\u200B"}

// NormalizeHeader canonicalizes a raw column header into the lookup key
// used by the variants table: trimmed, accents stripped, lower-cased,
// separators folded, whitespace collapsed. The result is never displayed.
func NormalizeHeader(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Decompose and drop combining marks so "Ubicación" and "Ubicacion"
	// produce the same key.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	s = strings.ToLower(s)

	for _, sep := range headerSeparators {
		s = strings.ReplaceAll(s, sep, " ")
	}

	return strings.Join(strings.Fields(s), " ")
}
