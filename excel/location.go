package excel

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// LocationKey is the composite sort key that orders warehouse locations
// the way the floor reads them: E006B01 before E026A02 before E026A07,
// with free-text locations like PLANTA after every coded one.
type LocationKey struct {
	Primary int
	Letters string
	Last    int
}

// locationSentinel pushes empty and non-numeric locations past every real
// rack coordinate.
const locationSentinel = 999999

var digitRunRe = regexp.MustCompile(`\d+`)

// LocationKeyOf derives the sort key for a location code. The first
// alphabetic character is a zone prefix shared by nearly every rack and
// carries no ordering information, so only the remaining letters
// discriminate.
func LocationKeyOf(location string) LocationKey {
	loc := strings.ToUpper(strings.TrimSpace(location))
	if loc == "" {
		return LocationKey{Primary: locationSentinel, Letters: "Z", Last: locationSentinel}
	}

	if !strings.ContainsFunc(loc, unicode.IsDigit) {
		// Free-text locations sort after numeric racks, alphabetically
		// among themselves.
		return LocationKey{Primary: locationSentinel, Letters: loc, Last: locationSentinel}
	}

	nums := digitRunRe.FindAllString(loc, -1)
	primary, _ := strconv.Atoi(nums[0])
	last, _ := strconv.Atoi(nums[len(nums)-1])

	var letters []rune
	for _, r := range loc {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	suffix := ""
	if len(letters) > 1 {
		suffix = string(letters[1:])
	}
	if suffix == "" {
		suffix = "Z"
	}

	return LocationKey{Primary: primary, Letters: suffix, Last: last}
}

func (k LocationKey) Less(other LocationKey) bool {
	if k.Primary != other.Primary {
		return k.Primary < other.Primary
	}
	if k.Letters != other.Letters {
		return k.Letters < other.Letters
	}
	return k.Last < other.Last
}

// CompareLocations orders two raw location codes for ascending sort.
func CompareLocations(a, b string) int {
	ka, kb := LocationKeyOf(a), LocationKeyOf(b)
	if ka.Less(kb) {
		return -1
	}
	if kb.Less(ka) {
		return 1
	}
	return 0
}
