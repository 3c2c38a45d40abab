// Package rules holds the field rules shared by the API and the entry form.
package rules

import (
	"strconv"
	"strings"
)

const (
	MsgMissingFields    = "Missing required fields."
	MsgNegativeQuantity = "Quantities must not be negative."
	MsgInvalidFormat    = "Invalid date or time format."
)

// Blank reports whether v is empty after trimming.
func Blank(v string) bool {
	return strings.TrimSpace(v) == ""
}

// ParseQuantity parses a whole, non-negative quantity.
func ParseQuantity(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return n, strconv.ErrRange
	}
	return n, nil
}

// Invalid applies the required-field rule: blank values are invalid, and
// numeric values must parse to a whole number that is not negative.
func Invalid(v string, numeric bool) bool {
	if Blank(v) {
		return true
	}
	if numeric {
		_, err := ParseQuantity(v)
		return err != nil
	}
	return false
}
