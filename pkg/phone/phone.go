// Package phone renders Brazilian phone numbers in the (XX) XXXXX-XXXX
// display mask used across the form, the console, and the PDF export.
package phone

import "strings"

// Format strips non-digit characters and applies the display mask. Partial
// input gets a partial mask; anything with more than 11 digits is returned
// untouched, which makes the function idempotent over masked values.
func Format(value string) string {
	digits := onlyDigits(value)
	if len(digits) > 11 {
		return value
	}

	formatted := digits
	if len(digits) > 2 {
		formatted = "(" + digits[:2] + ") " + digits[2:]
	}
	if len(digits) > 7 {
		formatted = "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	}
	return formatted
}

// Digits strips everything but digits, giving the storage form of a
// masked or partially typed number.
func Digits(value string) string {
	return onlyDigits(value)
}

func onlyDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
