package stream

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/logger"
	"github.com/Stephen0620/NimbusML-Samples/pipeline"
	"github.com/Stephen0620/NimbusML-Samples/schema"
)

// RowPolicy decides how malformed rows are handled.
type RowPolicy int

const (
	// FailOnError aborts the traversal at the first malformed row.
	FailOnError RowPolicy = iota
	// SkipMalformed logs and counts malformed rows, then continues.
	SkipMalformed
)

func (p RowPolicy) String() string {
	if p == SkipMalformed {
		return "skip"
	}
	return "fail"
}

// ParseRowPolicy parses "fail" or "skip".
func ParseRowPolicy(s string) (RowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail", "fail_on_error":
		return FailOnError, nil
	case "skip", "skip_malformed":
		return SkipMalformed, nil
	}
	return FailOnError, apperrors.InvalidInput("row_policy", fmt.Sprintf("unknown row policy %q", s))
}

// Stream is a restartable handle on the rows of a delimited file.
type Stream struct {
	path       string
	schema     *schema.Schema
	policy     RowPolicy
	log        *logger.Logger
	schemaOpts []schema.Option
	quoting    *bool
	skipped    atomic.Int64
}

// Option configures a Stream.
type Option func(*Stream)

// WithRowPolicy sets the malformed-row policy.
func WithRowPolicy(p RowPolicy) Option {
	return func(s *Stream) { s.policy = p }
}

// WithLogger sets the logger used for skipped rows.
func WithLogger(l *logger.Logger) Option {
	return func(s *Stream) { s.log = l }
}

// WithHeader asserts whether the file starts with a header line.
// Only Open uses it; New takes the flag from the schema.
func WithHeader(has bool) Option {
	return func(s *Stream) { s.schemaOpts = append(s.schemaOpts, schema.WithHeader(has)) }
}

// WithQuoting overrides whether quoted fields are honoured. It applies to
// inference in Open and to every traversal, including streams built by New.
func WithQuoting(enabled bool) Option {
	return func(s *Stream) {
		s.quoting = &enabled
		s.schemaOpts = append(s.schemaOpts, schema.WithQuoting(enabled))
	}
}

// WithSchemaOptions passes extra inference options through Open.
func WithSchemaOptions(opts ...schema.Option) Option {
	return func(s *Stream) { s.schemaOpts = append(s.schemaOpts, opts...) }
}

// Open infers the schema of the file at path and returns a stream over it.
func Open(path string, delimiter rune, opts ...Option) (*Stream, error) {
	s := newStream(path, opts)
	sopts := append([]schema.Option{schema.WithDelimiter(delimiter)}, s.schemaOpts...)
	sch, err := schema.Infer(path, sopts...)
	if err != nil {
		return nil, err
	}
	s.schema = sch
	s.log.Debug("schema inferred", logger.Fields(logger.FieldPath, path, "columns", sch.String()))
	return s, nil
}

// New returns a stream over path using a known schema.
func New(path string, sch *schema.Schema, opts ...Option) (*Stream, error) {
	if sch == nil {
		return nil, apperrors.MissingField("schema")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.FileAccess(path, err)
	}
	s := newStream(path, opts)
	if s.quoting != nil {
		sch = sch.WithQuoting(*s.quoting)
	}
	s.schema = sch
	return s, nil
}

func newStream(path string, opts []Option) *Stream {
	s := &Stream{path: path, policy: FailOnError}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get("stream")
	}
	return s
}

// Path returns the source file path.
func (s *Stream) Path() string { return s.path }

// Schema returns the stream's schema.
func (s *Stream) Schema() *schema.Schema { return s.schema }

// Policy returns the malformed-row policy.
func (s *Stream) Policy() RowPolicy { return s.policy }

// Skipped returns the number of malformed rows skipped by the most recent
// traversal.
func (s *Stream) Skipped() int { return int(s.skipped.Load()) }

// Rows returns a pipeline that reopens the file on every traversal.
func (s *Stream) Rows() *pipeline.Pipeline[Row] {
	return pipeline.FromFunc(func(_ context.Context) pipeline.Iterator[Row] {
		f, err := os.Open(s.path)
		if err != nil {
			return pipeline.Fail[Row](apperrors.FileAccess(s.path, err))
		}
		s.skipped.Store(0)
		rr := schema.NewRecordReader(f, s.schema.Delimiter(), s.schema.Quoting())
		return &rowIter{stream: s, file: f, reader: rr, headerPending: s.schema.HasHeader()}
	})
}

// Count traverses the file and returns the number of rows yielded.
func (s *Stream) Count(ctx context.Context) (int, error) {
	return pipeline.Count(ctx, s.Rows())
}

// Collect traverses the file and returns every row. Intended for small
// files and tests.
func (s *Stream) Collect(ctx context.Context) ([]Row, error) {
	return pipeline.Collect(ctx, s.Rows())
}

// Head returns at most n rows from the start of the file.
func (s *Stream) Head(ctx context.Context, n int) ([]Row, error) {
	return pipeline.Collect(ctx, pipeline.Take(s.Rows(), n))
}
