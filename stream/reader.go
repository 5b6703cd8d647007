package stream

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/logger"
	"github.com/Stephen0620/NimbusML-Samples/schema"
	"github.com/Stephen0620/NimbusML-Samples/util"
)

type rowIter struct {
	stream        *Stream
	file          *os.File
	reader        schema.RecordReader
	headerPending bool
	closed        bool
}

func (it *rowIter) Next(ctx context.Context) (Row, bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		rec, err := it.reader.Read()
		if err == io.EOF {
			return nil, false, nil
		}

		var line int
		var pe *csv.ParseError
		switch {
		case errors.As(err, &pe):
			if it.headerPending {
				it.headerPending = false
				continue
			}
			line = pe.Line
			err = apperrors.RowParse(line, "malformed quoting").WithCause(pe.Err)
		case err != nil:
			return nil, false, apperrors.FileAccess(it.stream.path, err)
		default:
			line = it.reader.Line()
			if it.headerPending {
				it.headerPending = false
				continue
			}
		}

		var row Row
		if err == nil {
			row, err = coerce(it.stream.schema, rec, line)
		}
		if err == nil {
			return row, true, nil
		}
		if it.stream.policy == FailOnError {
			return nil, false, err
		}
		it.stream.skipped.Add(1)
		it.stream.log.Warn("skipping malformed row", logger.Fields(
			logger.FieldPath, it.stream.path,
			logger.FieldLine, line,
			logger.FieldError, err.Error(),
		))
	}
}

func (it *rowIter) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	return it.file.Close()
}

func coerce(sch *schema.Schema, rec []string, line int) (Row, error) {
	if len(rec) != sch.Len() {
		return nil, apperrors.RowParse(line, fmt.Sprintf("expected %d fields, got %d", sch.Len(), len(rec))).
			WithDetail("fields", len(rec))
	}
	row := make(Row, len(rec))
	for i, raw := range rec {
		col := sch.At(i)
		switch col.Type {
		case schema.Integer:
			v, ok := util.ParseInteger(raw)
			if !ok {
				return nil, fieldError(line, col, raw)
			}
			row[i] = IntValue(v)
		case schema.Float:
			v, ok := util.ParseNumber(raw)
			if !ok {
				return nil, fieldError(line, col, raw)
			}
			row[i] = FloatValue(v)
		default:
			row[i] = TextValue(raw)
		}
	}
	return row, nil
}

func fieldError(line int, col schema.Column, raw string) error {
	reason := fmt.Sprintf("column %q: cannot read %q as %s", col.Name, raw, col.Type)
	if util.IsMissing(raw) {
		reason = fmt.Sprintf("column %q: missing %s value", col.Name, col.Type)
	}
	return apperrors.RowParse(line, reason).WithDetail("column", col.Name)
}
