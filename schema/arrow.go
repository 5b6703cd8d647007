package schema

import (
	"strconv"

	"github.com/apache/arrow/go/v17/arrow"
)

// ArrowType returns the Arrow data type used for t.
func (t Type) ArrowType() arrow.DataType {
	switch t {
	case Integer:
		return arrow.PrimitiveTypes.Int64
	case Float:
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

// Arrow converts the schema to an Arrow schema. The header flag, delimiter
// and quoting mode travel as schema metadata.
func (s *Schema) Arrow() *arrow.Schema {
	fields := make([]arrow.Field, len(s.columns))
	for i, c := range s.columns {
		fields[i] = arrow.Field{Name: c.Name, Type: c.Type.ArrowType()}
	}
	md := arrow.NewMetadata(
		[]string{"has_header", "delimiter", "quoting"},
		[]string{strconv.FormatBool(s.hasHeader), string(s.delimiter), strconv.FormatBool(s.quoting)},
	)
	return arrow.NewSchema(fields, &md)
}
