package columnar

import (
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/metrics"
	"github.com/Stephen0620/NimbusML-Samples/schema"
	"github.com/Stephen0620/NimbusML-Samples/stream"
)

// Prediction column names.
const (
	ColPredictedLabel = "PredictedLabel"
	ColScore          = "Score"
	ColProbability    = "Probability"
)

// PredictionSchema is the Arrow schema of PredictionsToRecord output.
var PredictionSchema = arrow.NewSchema([]arrow.Field{
	{Name: ColPredictedLabel, Type: arrow.PrimitiveTypes.Int64},
	{Name: ColScore, Type: arrow.PrimitiveTypes.Float64},
	{Name: ColProbability, Type: arrow.PrimitiveTypes.Float64},
}, nil)

// RowsToRecord builds one record holding rows. Every row must match sch.
func RowsToRecord(mem memory.Allocator, sch *schema.Schema, rows []stream.Row) (arrow.Record, error) {
	if sch == nil {
		return nil, apperrors.MissingField("schema")
	}
	b := array.NewRecordBuilder(mem, sch.Arrow())
	defer b.Release()

	for i, row := range rows {
		if len(row) != sch.Len() {
			return nil, apperrors.InvalidInput("rows", fmt.Sprintf("row %d has %d values, schema has %d columns", i, len(row), sch.Len()))
		}
		for j, v := range row {
			col := sch.At(j)
			if v.Type() != col.Type {
				return nil, apperrors.InvalidInput("rows", fmt.Sprintf("row %d column %q holds %s, want %s", i, col.Name, v.Type(), col.Type))
			}
			appendValue(b.Field(j), v)
		}
	}
	return b.NewRecord(), nil
}

func appendValue(fb array.Builder, v stream.Value) {
	switch v.Type() {
	case schema.Integer:
		fb.(*array.Int64Builder).Append(v.Int())
	case schema.Float:
		fb.(*array.Float64Builder).Append(v.Float())
	default:
		fb.(*array.StringBuilder).Append(v.Text())
	}
}

// RecordRows converts a record built by RowsToRecord back into rows.
func RecordRows(sch *schema.Schema, rec arrow.Record) ([]stream.Row, error) {
	if int(rec.NumCols()) != sch.Len() {
		return nil, apperrors.SchemaConflict("", fmt.Sprintf("record has %d columns, schema has %d", rec.NumCols(), sch.Len()))
	}
	rows := make([]stream.Row, rec.NumRows())
	for i := range rows {
		rows[i] = make(stream.Row, sch.Len())
	}
	for j := 0; j < sch.Len(); j++ {
		col := sch.At(j)
		arr := rec.Column(j)
		if !arrow.TypeEqual(arr.DataType(), col.Type.ArrowType()) {
			return nil, apperrors.SchemaConflict(col.Name, fmt.Sprintf("record holds %s, schema wants %s", arr.DataType(), col.Type))
		}
		switch arr := arr.(type) {
		case *array.Int64:
			for i := range rows {
				rows[i][j] = stream.IntValue(arr.Value(i))
			}
		case *array.Float64:
			for i := range rows {
				rows[i][j] = stream.FloatValue(arr.Value(i))
			}
		case *array.String:
			for i := range rows {
				rows[i][j] = stream.TextValue(arr.Value(i))
			}
		}
	}
	return rows, nil
}

// PredictionsToRecord builds one record of predictions in row order.
func PredictionsToRecord(mem memory.Allocator, preds []metrics.Prediction) arrow.Record {
	b := array.NewRecordBuilder(mem, PredictionSchema)
	defer b.Release()

	labels := b.Field(0).(*array.Int64Builder)
	scores := b.Field(1).(*array.Float64Builder)
	probs := b.Field(2).(*array.Float64Builder)
	labels.Reserve(len(preds))
	scores.Reserve(len(preds))
	probs.Reserve(len(preds))
	for _, p := range preds {
		labels.Append(p.PredictedLabel)
		scores.Append(p.Score)
		probs.Append(p.Probability)
	}
	return b.NewRecord()
}
