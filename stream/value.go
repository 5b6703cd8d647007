package stream

import (
	"strconv"

	"github.com/Stephen0620/NimbusML-Samples/schema"
)

// Value is one typed field of a row.
type Value struct {
	kind schema.Type
	text string
	i    int64
	f    float64
}

// TextValue returns a text value.
func TextValue(s string) Value { return Value{kind: schema.Text, text: s} }

// IntValue returns an integer value.
func IntValue(i int64) Value { return Value{kind: schema.Integer, i: i} }

// FloatValue returns a floating-point value.
func FloatValue(f float64) Value { return Value{kind: schema.Float, f: f} }

// Type returns the value's column type.
func (v Value) Type() schema.Type { return v.kind }

// Text returns the string form of the value.
func (v Value) Text() string {
	if v.kind == schema.Text {
		return v.text
	}
	return v.String()
}

// Int returns the integer payload. Floats are truncated.
func (v Value) Int() int64 {
	if v.kind == schema.Float {
		return int64(v.f)
	}
	return v.i
}

// Float returns the numeric payload as a float64. Text yields 0.
func (v Value) Float() float64 {
	switch v.kind {
	case schema.Integer:
		return float64(v.i)
	case schema.Float:
		return v.f
	}
	return 0
}

func (v Value) String() string {
	switch v.kind {
	case schema.Integer:
		return strconv.FormatInt(v.i, 10)
	case schema.Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	return v.text
}

// Row is a fixed-arity tuple of values ordered by column position.
type Row []Value

// Equal reports whether two rows hold the same values.
func (r Row) Equal(o Row) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if r[i] != o[i] {
			return false
		}
	}
	return true
}
