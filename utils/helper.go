package utils

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func IsValidEmail(email string) bool {
	// Basic email validation regex pattern
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	regex := regexp.MustCompile(pattern)
	return regex.MatchString(email)
}

// ParseDecimal converts a string to a decimal.Decimal value.
func ParseDecimal(value string) (decimal.Decimal, error) {
	// Remove any whitespace and check for empty strings
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, errors.New("empty decimal string")
	}

	// Convert string to decimal
	dec, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}

	return dec, nil
}

// ParseFlexibleTime accepts the datetime-local wire formats the frontend
// sends ("2006-01-02T15:04" or "2006-01-02 15:04"). Empty or unparseable
// input falls back to the current time rather than failing the request.
func ParseFlexibleTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().UTC()
	}
	raw = strings.Replace(raw, "T", " ", 1)
	t, err := time.Parse("2006-01-02 15:04", raw)
	if err != nil {
		return time.Now().UTC()
	}
	return t
}

func NewTrue() *bool {
	b := true
	return &b
}
