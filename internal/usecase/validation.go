package usecase

import "unicode"

// ValidateAmount checks a decimal money string: a non-empty integer part and an
// optional fraction of at most two digits, with at least one non-zero digit.
func ValidateAmount(amount string) bool {
	if amount == "" {
		return false
	}

	intLen, fracLen := 0, 0
	seenDot := false
	nonZero := false
	for _, r := range amount {
		switch {
		case r == '.':
			if seenDot || intLen == 0 {
				return false
			}
			seenDot = true
		case unicode.IsDigit(r):
			if r != '0' {
				nonZero = true
			}
			if seenDot {
				fracLen++
			} else {
				intLen++
			}
		default:
			return false
		}
	}

	if intLen == 0 || !nonZero {
		return false
	}
	if seenDot && (fracLen == 0 || fracLen > 2) {
		return false
	}
	return true
}

// ValidateCurrency accepts three-letter ISO 4217 alphabetic codes.
func ValidateCurrency(currency string) bool {
	if len(currency) != 3 {
		return false
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
