package config

import (
	"fmt"
	"unicode/utf8"
)

// Row policies accepted by DataConfig.RowPolicy.
const (
	RowPolicyFail = "fail"
	RowPolicySkip = "skip"
)

// Quote modes accepted by DataConfig.Quote. Auto honours quotes for every
// delimiter except tab.
const (
	QuoteAuto = "auto"
	QuoteOn   = "on"
	QuoteOff  = "off"
)

// DataConfig describes one delimited input file.
type DataConfig struct {
	Path       string `yaml:"path" mapstructure:"path"`
	Delimiter  string `yaml:"delimiter" mapstructure:"delimiter"`
	Header     bool   `yaml:"header" mapstructure:"header"`
	SampleRows int    `yaml:"sample_rows" mapstructure:"sample_rows"`
	RowPolicy  string `yaml:"row_policy" mapstructure:"row_policy"`
	Quote      string `yaml:"quote" mapstructure:"quote"`
}

// ApplyDefaults applies default values to the data configuration.
func (c *DataConfig) ApplyDefaults() {
	if c.Delimiter == "" {
		c.Delimiter = ","
	}
	if c.SampleRows == 0 {
		c.SampleRows = 100
	}
	if c.RowPolicy == "" {
		c.RowPolicy = RowPolicyFail
	}
	if c.Quote == "" {
		c.Quote = QuoteAuto
	}
}

// Validate validates the data configuration. name prefixes error messages.
func (c *DataConfig) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s.path is required", name)
	}
	if _, err := c.DelimiterRune(); err != nil {
		return fmt.Errorf("%s.delimiter: %w", name, err)
	}
	if c.SampleRows < 1 {
		return fmt.Errorf("%s.sample_rows must be at least 1 (got: %d)", name, c.SampleRows)
	}
	if c.RowPolicy != RowPolicyFail && c.RowPolicy != RowPolicySkip {
		return fmt.Errorf("%s.row_policy must be one of [%s, %s] (got: %s)", name, RowPolicyFail, RowPolicySkip, c.RowPolicy)
	}
	if c.Quote != QuoteAuto && c.Quote != QuoteOn && c.Quote != QuoteOff {
		return fmt.Errorf("%s.quote must be one of [%s, %s, %s] (got: %s)", name, QuoteAuto, QuoteOn, QuoteOff, c.Quote)
	}
	return nil
}

// Quoting returns the explicit quoting mode, or ok=false for auto.
func (c *DataConfig) Quoting() (enabled, ok bool) {
	switch c.Quote {
	case QuoteOn:
		return true, true
	case QuoteOff:
		return false, true
	}
	return false, false
}

// DelimiterRune returns the delimiter as a single rune. The escape "\t"
// and the word "tab" both mean a tab character.
func (c *DataConfig) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return 0, fmt.Errorf("must be a single character (got: %q)", c.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == '\n' || r == '\r' || r == '"' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", c.Delimiter)
	}
	return r, nil
}
