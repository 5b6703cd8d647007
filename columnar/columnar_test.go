package columnar

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/logger"
	"github.com/Stephen0620/NimbusML-Samples/metrics"
	"github.com/Stephen0620/NimbusML-Samples/pipeline"
	"github.com/Stephen0620/NimbusML-Samples/schema"
	"github.com/Stephen0620/NimbusML-Samples/stream"
)

const fixture = "Sentiment\tText\tLabel\tScore\n" +
	"pos\thello world\t1\t0.5\n" +
	"neg\tgo away\t0\t1.5\n" +
	"pos\tnice\t1\t2\n" +
	"neg\tbad\t0\t-1\n" +
	"pos\tgreat\t1\t3.25\n"

func openFixture(t *testing.T) *stream.Stream {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.tsv")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))
	s, err := stream.Open(path, '\t', stream.WithHeader(true), stream.WithLogger(logger.NewNop()))
	require.NoError(t, err)
	return s
}

func TestRowsToRecord(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	s := openFixture(t)
	rows, err := s.Collect(context.Background())
	require.NoError(t, err)

	rec, err := RowsToRecord(mem, s.Schema(), rows)
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(5), rec.NumRows())
	assert.Equal(t, int64(4), rec.NumCols())
	assert.True(t, rec.Schema().Equal(s.Schema().Arrow()))

	text := rec.Column(1).(*array.String)
	assert.Equal(t, "hello world", text.Value(0))
	labels := rec.Column(2).(*array.Int64)
	assert.Equal(t, []int64{1, 0, 1, 0, 1}, labels.Int64Values())
	scores := rec.Column(3).(*array.Float64)
	assert.Equal(t, []float64{0.5, 1.5, 2, -1, 3.25}, scores.Float64Values())

	back, err := RecordRows(s.Schema(), rec)
	require.NoError(t, err)
	require.Len(t, back, len(rows))
	for i := range rows {
		assert.True(t, rows[i].Equal(back[i]), "row %d", i)
	}
}

func TestRowsToRecordErrors(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	sch, err := schema.New([]schema.Column{
		{Name: "Text", Type: schema.Text, Position: 0},
		{Name: "Label", Type: schema.Integer, Position: 1},
	}, true, '\t')
	require.NoError(t, err)

	tests := []struct {
		name string
		rows []stream.Row
	}{
		{"short row", []stream.Row{{stream.TextValue("a")}}},
		{"wrong type", []stream.Row{{stream.TextValue("a"), stream.FloatValue(1)}}},
		{"second row bad", []stream.Row{
			{stream.TextValue("a"), stream.IntValue(1)},
			{stream.IntValue(1), stream.IntValue(1)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := RowsToRecord(mem, sch, tt.rows)
			assert.Nil(t, rec)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidInput), "got %v", err)
		})
	}

	_, err = RowsToRecord(mem, nil, nil)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeMissingField))
}

func TestRecordRowsTypeMismatch(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	rec := PredictionsToRecord(mem, []metrics.Prediction{{PredictedLabel: 1}})
	defer rec.Release()

	sch, err := schema.New([]schema.Column{
		{Name: "A", Type: schema.Text, Position: 0},
		{Name: "B", Type: schema.Float, Position: 1},
		{Name: "C", Type: schema.Float, Position: 2},
	}, false, ',')
	require.NoError(t, err)

	_, err = RecordRows(sch, rec)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSchemaConflict), "got %v", err)
}

func TestBatches(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	s := openFixture(t)
	var sizes []int64
	err := pipeline.ForEach(context.Background(), Batches(mem, s, 2), func(_ context.Context, rec arrow.Record) error {
		defer rec.Release()
		sizes = append(sizes, rec.NumRows())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 2, 1}, sizes)
}

func TestWriteStream(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	s := openFixture(t)
	var buf bytes.Buffer
	n, err := WriteStream(context.Background(), &buf, mem, s, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	rdr, err := ipc.NewReader(&buf, ipc.WithAllocator(mem))
	require.NoError(t, err)
	defer rdr.Release()

	assert.True(t, rdr.Schema().Equal(s.Schema().Arrow()))
	var labels []int64
	for rdr.Next() {
		rows, err := RecordRows(s.Schema(), rdr.Record())
		require.NoError(t, err)
		for _, row := range rows {
			labels = append(labels, row[2].Int())
		}
	}
	require.NoError(t, rdr.Err())
	assert.Equal(t, []int64{1, 0, 1, 0, 1}, labels)
}

func TestPredictions(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	preds := []metrics.Prediction{
		{PredictedLabel: 1, Score: 2.5, Probability: 0.9},
		{PredictedLabel: 0, Score: -1, Probability: 0.25},
	}
	rec := PredictionsToRecord(mem, preds)
	defer rec.Release()

	require.Equal(t, int64(2), rec.NumRows())
	assert.Equal(t, ColPredictedLabel, rec.ColumnName(0))
	assert.Equal(t, []int64{1, 0}, rec.Column(0).(*array.Int64).Int64Values())
	assert.Equal(t, []float64{2.5, -1}, rec.Column(1).(*array.Float64).Float64Values())
	assert.Equal(t, []float64{0.9, 0.25}, rec.Column(2).(*array.Float64).Float64Values())

	var buf bytes.Buffer
	require.NoError(t, WritePredictions(&buf, mem, preds))
	rdr, err := ipc.NewReader(&buf, ipc.WithAllocator(mem))
	require.NoError(t, err)
	defer rdr.Release()
	require.True(t, rdr.Next())
	assert.Equal(t, int64(2), rdr.Record().NumRows())
}
