// Package payment validates card-entry fields for the simulated checkout.
// No card data ever leaves the process; validation exists so obviously bad
// input is rejected before the booking pipeline runs.
package payment

import (
	"strconv"
	"strings"
	"time"
)

// Card holds the raw card-entry fields as submitted.
type Card struct {
	Number string
	Expiry string // MM/YY
	CVV    string
}

// ValidateNumber accepts digit-only card numbers of 13 to 19 characters.
func ValidateNumber(number string) bool {
	if len(number) < 13 || len(number) > 19 {
		return false
	}
	return digitsOnly(number)
}

// ValidateExpiry accepts MM/YY expiries whose month is 1-12 and whose
// (year, month) pair is not strictly before now, comparing two-digit years.
func ValidateExpiry(expiry string, now time.Time) bool {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}

	curYear := now.Year() % 100
	curMonth := int(now.Month())

	if year < curYear {
		return false
	}
	if year == curYear && month < curMonth {
		return false
	}
	return true
}

// ValidateCVV accepts digit-only CVVs of 3 or 4 characters.
func ValidateCVV(cvv string) bool {
	if len(cvv) != 3 && len(cvv) != 4 {
		return false
	}
	return digitsOnly(cvv)
}

// Validate runs all field checks and reports whether the card is usable.
// Failures are deliberately collapsed into a single yes/no so the caller
// surfaces one combined validation error, never per-field detail.
func Validate(card Card, now time.Time) bool {
	return ValidateNumber(card.Number) &&
		ValidateExpiry(card.Expiry, now) &&
		ValidateCVV(card.CVV)
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
