package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/util"
)

// DefaultSampleRows is the number of data rows read for type voting.
const DefaultSampleRows = 100

const utf8BOM = "\ufeff"

type options struct {
	delimiter    rune
	header       bool
	sampleRows   int
	declared     map[string]Type
	declOrder    []string
	textFallback bool
	quoting      *bool
}

// Option configures Infer.
type Option func(*options)

// WithDelimiter sets the field separator. Default ','.
func WithDelimiter(d rune) Option {
	return func(o *options) { o.delimiter = d }
}

// WithHeader asserts whether the first line holds column names.
func WithHeader(has bool) Option {
	return func(o *options) { o.header = has }
}

// WithSampleRows bounds the number of data rows read for inference.
func WithSampleRows(n int) Option {
	return func(o *options) { o.sampleRows = n }
}

// WithColumnType declares the type of the named column instead of voting.
func WithColumnType(name string, t Type) Option {
	return func(o *options) {
		if o.declared == nil {
			o.declared = make(map[string]Type)
		}
		if _, seen := o.declared[name]; !seen {
			o.declOrder = append(o.declOrder, name)
		}
		o.declared[name] = t
	}
}

// WithTextFallback controls whether a column mixing numeric and
// non-numeric values becomes Text (true, the default) or a conflict.
func WithTextFallback(enabled bool) Option {
	return func(o *options) { o.textFallback = enabled }
}

// WithQuoting turns quoted-field handling on or off. By default it is on
// for every delimiter except tab.
func WithQuoting(enabled bool) Option {
	return func(o *options) { o.quoting = &enabled }
}

func (o options) quoted() bool {
	if o.quoting != nil {
		return *o.quoting
	}
	return DefaultQuoting(o.delimiter)
}

func newOptions(opts []Option) options {
	o := options{delimiter: ',', sampleRows: DefaultSampleRows, textFallback: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Infer samples the file at path and returns its schema.
func Infer(path string, opts ...Option) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.FileAccess(path, err)
	}
	defer f.Close()

	return infer(f, path, newOptions(opts))
}

// InferReader samples delimited text from r and returns its schema.
func InferReader(r io.Reader, opts ...Option) (*Schema, error) {
	return infer(r, "input", newOptions(opts))
}

func infer(r io.Reader, source string, o options) (*Schema, error) {
	if err := checkDelimiter(o.delimiter); err != nil {
		return nil, err
	}
	if o.sampleRows < 1 {
		return nil, apperrors.InvalidInput("sample_rows", fmt.Sprintf("sample rows must be at least 1, got %d", o.sampleRows))
	}

	rr := NewRecordReader(r, o.delimiter, o.quoted())

	first, err := readRecord(rr, source)
	if err == io.EOF {
		return nil, apperrors.SchemaConflict("", "file is empty")
	}
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return nil, apperrors.SchemaConflict("", "first line is malformed").WithCause(err)
	}
	if err != nil {
		return nil, err
	}

	var names []string
	var votes []*vote
	if o.header {
		names = headerNames(first)
		votes = newVotes(len(names))
	} else {
		names = make([]string, len(first))
		for i := range first {
			names[i] = fmt.Sprintf("col%d", i)
		}
		votes = newVotes(len(names))
		castVotes(votes, first)
	}

	sampled := 0
	if !o.header {
		sampled = 1
	}
	for sampled < o.sampleRows {
		rec, err := readRecord(rr, source)
		if err == io.EOF {
			break
		}
		if errors.As(err, &pe) {
			sampled++
			continue
		}
		if err != nil {
			return nil, err
		}
		sampled++
		if len(rec) != len(names) {
			continue
		}
		castVotes(votes, rec)
	}

	for _, name := range o.declOrder {
		if !contains(names, name) {
			return nil, apperrors.SchemaConflict(name, fmt.Sprintf("declared column %q is not in the file", name))
		}
	}

	columns := make([]Column, len(names))
	for i, name := range names {
		t, err := resolve(name, votes[i], o)
		if err != nil {
			return nil, err
		}
		columns[i] = Column{Name: name, Type: t, Position: i}
	}
	sch, err := New(columns, o.header, o.delimiter)
	if err != nil {
		return nil, err
	}
	return sch.WithQuoting(o.quoted()), nil
}

func readRecord(rr RecordReader, source string) ([]string, error) {
	rec, err := rr.Read()
	if err == nil || err == io.EOF {
		return rec, err
	}
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return nil, err
	}
	return nil, apperrors.FileAccess(source, err)
}

func headerNames(rec []string) []string {
	names := make([]string, len(rec))
	for i, n := range rec {
		if i == 0 {
			n = strings.TrimPrefix(n, utf8BOM)
		}
		names[i] = strings.TrimSpace(n)
	}
	return names
}

type vote struct {
	values   int
	integers int
	numbers  int
	example  string
}

func newVotes(n int) []*vote {
	vs := make([]*vote, n)
	for i := range vs {
		vs[i] = &vote{}
	}
	return vs
}

func castVotes(votes []*vote, rec []string) {
	for i, raw := range rec {
		if i >= len(votes) || util.IsMissing(raw) {
			continue
		}
		v := votes[i]
		v.values++
		if _, ok := util.ParseInteger(raw); ok {
			v.integers++
			v.numbers++
			continue
		}
		if _, ok := util.ParseNumber(raw); ok {
			v.numbers++
			continue
		}
		if v.example == "" {
			v.example = raw
		}
	}
}

func resolve(name string, v *vote, o options) (Type, error) {
	if declared, ok := o.declared[name]; ok {
		switch {
		case declared == Integer && v.integers != v.values:
			return Text, apperrors.SchemaConflict(name, fmt.Sprintf("column %q is declared integer but sampled values are not", name))
		case declared == Float && v.numbers != v.values:
			return Text, apperrors.SchemaConflict(name, fmt.Sprintf("column %q is declared float but value %q is not numeric", name, v.example))
		}
		return declared, nil
	}

	switch {
	case v.values == 0:
		return Text, nil
	case v.integers == v.values:
		return Integer, nil
	case v.numbers == v.values:
		return Float, nil
	case v.numbers == 0 || o.textFallback:
		return Text, nil
	}
	return Text, apperrors.SchemaConflict(name, fmt.Sprintf(
		"column %q mixes %d numeric and %d non-numeric values (e.g. %q)",
		name, v.numbers, v.values-v.numbers, v.example))
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
