package utils

import (
	"testing"
	"time"
)

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("12.50")
	if err != nil {
		t.Fatal(err)
	}
	if d.InexactFloat64() != 12.5 {
		t.Errorf("ParseDecimal(12.50) = %v", d)
	}

	if _, err := ParseDecimal(""); err == nil {
		t.Error("empty string must not parse")
	}
	if _, err := ParseDecimal("n/a"); err == nil {
		t.Error("garbage must not parse")
	}
}

func TestParseFlexibleTime(t *testing.T) {
	got := ParseFlexibleTime("2025-06-02T08:30")
	want := time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseFlexibleTime = %v, want %v", got, want)
	}

	got = ParseFlexibleTime("2025-06-02 08:30")
	if !got.Equal(want) {
		t.Errorf("ParseFlexibleTime with space = %v, want %v", got, want)
	}

	// Blank and malformed timestamps fall back to now.
	before := time.Now().UTC().Add(-time.Minute)
	for _, raw := range []string{"", "yesterday"} {
		if got := ParseFlexibleTime(raw); got.Before(before) {
			t.Errorf("ParseFlexibleTime(%q) = %v, want a recent fallback", raw, got)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	if !IsValidEmail("jcastillo@example.com") {
		t.Error("valid address rejected")
	}
	for _, bad := range []string{"", "not-an-email", "a@b"} {
		if IsValidEmail(bad) {
			t.Errorf("IsValidEmail(%q) = true", bad)
		}
	}
}
