package excel

import (
	"sort"
	"testing"
)

func TestLocationKeyOf(t *testing.T) {
	cases := []struct {
		in   string
		want LocationKey
	}{
		{"E026A07", LocationKey{Primary: 26, Letters: "A", Last: 7}},
		{"E006B01", LocationKey{Primary: 6, Letters: "B", Last: 1}},
		{"e006b01", LocationKey{Primary: 6, Letters: "B", Last: 1}},
		{"  E010C03  ", LocationKey{Primary: 10, Letters: "C", Last: 3}},
		{"E100", LocationKey{Primary: 100, Letters: "Z", Last: 100}},
		{"PLANTA", LocationKey{Primary: 999999, Letters: "PLANTA", Last: 999999}},
		{"", LocationKey{Primary: 999999, Letters: "Z", Last: 999999}},
		{"   ", LocationKey{Primary: 999999, Letters: "Z", Last: 999999}},
	}
	for _, tc := range cases {
		if got := LocationKeyOf(tc.in); got != tc.want {
			t.Errorf("LocationKeyOf(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestLocationSortOrder(t *testing.T) {
	locations := []string{"E026A07", "E006B01", "PLANTA", "E026A02"}
	sort.SliceStable(locations, func(i, j int) bool {
		return CompareLocations(locations[i], locations[j]) < 0
	})

	want := []string{"E006B01", "E026A02", "E026A07", "PLANTA"}
	for i := range want {
		if locations[i] != want[i] {
			t.Fatalf("sorted = %v, want %v", locations, want)
		}
	}
}

func TestFreeTextLocationsSortAfterRacks(t *testing.T) {
	if CompareLocations("E999Z99", "ALMACEN") >= 0 {
		t.Errorf("coded location must sort before free-text location")
	}
	if CompareLocations("ALMACEN", "PLANTA") >= 0 {
		t.Errorf("free-text locations must sort alphabetically among themselves")
	}
}

func TestCompareLocationsEqual(t *testing.T) {
	if c := CompareLocations("E026A07", "e026a07 "); c != 0 {
		t.Errorf("CompareLocations = %d, want 0 for case/space variants", c)
	}
}
