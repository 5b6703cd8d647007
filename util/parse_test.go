package util

import "testing"

func TestParseInteger(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"1", 1, true},
		{" -42 ", -42, true},
		{"+7", 7, true},
		{"1.0", 0, false},
		{"", 0, false},
		{"1e3", 0, false},
		{"9223372036854775808", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseInteger(tc.input)
			if ok != tc.ok || (ok && got != tc.want) {
				t.Errorf("ParseInteger(%q) = %d, %v, want %d, %v", tc.input, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1", 1, true},
		{"0.5", 0.5, true},
		{".5", 0.5, true},
		{"-2.5e2", -250, true},
		{" 3 ", 3, true},
		{"NaN", 0, false},
		{"Infinity", 0, false},
		{"-inf", 0, false},
		{"-", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseNumber(tc.input)
			if ok != tc.ok || (ok && got != tc.want) {
				t.Errorf("ParseNumber(%q) = %v, %v, want %v, %v", tc.input, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestIsMissing(t *testing.T) {
	if !IsMissing("  ") || !IsMissing("") {
		t.Error("blank fields are missing")
	}
	if IsMissing("0") {
		t.Error("0 is a value")
	}
}
