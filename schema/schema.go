package schema

import (
	"fmt"
	"strings"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
)

// Type is the inferred primitive type of a column.
type Type int

const (
	Text Type = iota
	Integer
	Float
)

// String returns the lower-case type name.
func (t Type) String() string {
	switch t {
	case Text:
		return "text"
	case Integer:
		return "integer"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// IsNumeric reports whether values of t parse as numbers.
func (t Type) IsNumeric() bool {
	return t == Integer || t == Float
}

// ParseType parses a type name as written in configuration.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "string", "str":
		return Text, nil
	case "integer", "int", "int64":
		return Integer, nil
	case "float", "double", "float64", "number":
		return Float, nil
	}
	return Text, apperrors.InvalidInput("type", fmt.Sprintf("unknown column type %q", s))
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Column describes one column of a delimited file.
type Column struct {
	Name     string `json:"name"`
	Type     Type   `json:"type"`
	Position int    `json:"position"`
}

func (c Column) String() string {
	return fmt.Sprintf("{%s,%s,%d}", c.Name, c.Type, c.Position)
}

// Schema is the immutable column layout of a delimited file.
type Schema struct {
	columns   []Column
	index     map[string]int
	hasHeader bool
	delimiter rune
	quoting   bool
}

// New builds a Schema. Positions must be unique and contiguous from 0 in
// slice order, and names must be unique and non-empty. Quoting starts at
// DefaultQuoting(delimiter).
func New(columns []Column, hasHeader bool, delimiter rune) (*Schema, error) {
	if len(columns) == 0 {
		return nil, apperrors.SchemaConflict("", "schema has no columns")
	}
	if err := checkDelimiter(delimiter); err != nil {
		return nil, err
	}
	cols := make([]Column, len(columns))
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c.Position != i {
			return nil, apperrors.SchemaConflict(c.Name, fmt.Sprintf("column %q has position %d, want %d", c.Name, c.Position, i))
		}
		if strings.TrimSpace(c.Name) == "" {
			return nil, apperrors.SchemaConflict("", fmt.Sprintf("column %d has an empty name", i))
		}
		if _, dup := index[c.Name]; dup {
			return nil, apperrors.SchemaConflict(c.Name, fmt.Sprintf("duplicate column name %q", c.Name))
		}
		if c.Type < Text || c.Type > Float {
			return nil, apperrors.SchemaConflict(c.Name, fmt.Sprintf("column %q has unknown type %d", c.Name, int(c.Type)))
		}
		index[c.Name] = i
		cols[i] = c
	}
	return &Schema{columns: cols, index: index, hasHeader: hasHeader, delimiter: delimiter, quoting: DefaultQuoting(delimiter)}, nil
}

// Columns returns a copy of the column descriptors in position order.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.columns) }

// At returns the column at position i.
func (s *Schema) At(i int) Column { return s.columns[i] }

// HasHeader reports whether the file's first line holds column names.
func (s *Schema) HasHeader() bool { return s.hasHeader }

// Delimiter returns the field separator.
func (s *Schema) Delimiter() rune { return s.delimiter }

// Quoting reports whether rows are read with quoted-field handling.
func (s *Schema) Quoting() bool { return s.quoting }

// WithQuoting returns a copy of the schema with quoting set to enabled.
func (s *Schema) WithQuoting(enabled bool) *Schema {
	c := *s
	c.quoting = enabled
	return &c
}

// Index returns the position of the named column, or -1.
func (s *Schema) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Column returns the named column.
func (s *Schema) Column(name string) (Column, bool) {
	i, ok := s.index[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// Names returns the column names in position order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Equal reports whether two schemas describe the same layout.
func (s *Schema) Equal(o *Schema) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.hasHeader != o.hasHeader || s.delimiter != o.delimiter || s.quoting != o.quoting || len(s.columns) != len(o.columns) {
		return false
	}
	for i := range s.columns {
		if s.columns[i] != o.columns[i] {
			return false
		}
	}
	return true
}

func (s *Schema) String() string {
	parts := make([]string, len(s.columns))
	for i, c := range s.columns {
		parts[i] = c.String()
	}
	return fmt.Sprintf("[%s] header=%t delimiter=%q quoting=%t", strings.Join(parts, ","), s.hasHeader, s.delimiter, s.quoting)
}

func checkDelimiter(d rune) error {
	switch d {
	case 0, '\n', '\r', '"', 0xFFFD:
		return apperrors.InvalidInput("delimiter", fmt.Sprintf("invalid delimiter %q", d))
	}
	return nil
}
