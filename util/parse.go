package util

import (
	"strconv"
	"strings"
)

// IsMissing reports whether a raw field carries no value.
func IsMissing(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ParseInteger parses a base-10 int64, ignoring surrounding whitespace.
func ParseInteger(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return v, err == nil
}

// ParseNumber parses a finite float64, ignoring surrounding whitespace.
// Spellings of NaN and infinity are rejected so words like "Infinity" in a
// text column do not read as numbers.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !startsNumeric(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func startsNumeric(s string) bool {
	c := s[0]
	if c == '+' || c == '-' {
		if len(s) == 1 {
			return false
		}
		c = s[1]
	}
	return (c >= '0' && c <= '9') || c == '.'
}
