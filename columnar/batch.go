package columnar

import (
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/Stephen0620/NimbusML-Samples/metrics"
	"github.com/Stephen0620/NimbusML-Samples/pipeline"
	"github.com/Stephen0620/NimbusML-Samples/stream"
)

// DefaultBatchSize is the record length used when size is not positive.
const DefaultBatchSize = 1024

// Batches reads s as Arrow records of at most size rows. The consumer owns
// each record.
func Batches(mem memory.Allocator, s *stream.Stream, size int) *pipeline.Pipeline[arrow.Record] {
	if size <= 0 {
		size = DefaultBatchSize
	}
	sch := s.Schema()
	return pipeline.Map(pipeline.Batch(s.Rows(), size), func(_ context.Context, rows []stream.Row) (arrow.Record, error) {
		return RowsToRecord(mem, sch, rows)
	})
}

// WriteStream writes every row of s to w in the Arrow IPC stream format.
// It returns the number of rows written.
func WriteStream(ctx context.Context, w io.Writer, mem memory.Allocator, s *stream.Stream, size int) (int64, error) {
	iw := ipc.NewWriter(w, ipc.WithSchema(s.Schema().Arrow()), ipc.WithAllocator(mem))

	var rows int64
	err := pipeline.ForEach(ctx, Batches(mem, s, size), func(_ context.Context, rec arrow.Record) error {
		defer rec.Release()
		if err := iw.Write(rec); err != nil {
			return fmt.Errorf("write record batch: %w", err)
		}
		rows += rec.NumRows()
		return nil
	})
	if cerr := iw.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close ipc writer: %w", cerr)
	}
	return rows, err
}

// WritePredictions writes preds to w as a single-record Arrow IPC stream.
func WritePredictions(w io.Writer, mem memory.Allocator, preds []metrics.Prediction) error {
	rec := PredictionsToRecord(mem, preds)
	defer rec.Release()

	iw := ipc.NewWriter(w, ipc.WithSchema(PredictionSchema), ipc.WithAllocator(mem))
	if err := iw.Write(rec); err != nil {
		iw.Close()
		return fmt.Errorf("write predictions: %w", err)
	}
	return iw.Close()
}
