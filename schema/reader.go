package schema

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"
)

// RecordReader yields the fields of one delimited line at a time. Blank
// lines are skipped. Line reports where the last record returned by Read
// started.
type RecordReader interface {
	Read() ([]string, error)
	Line() int
}

// DefaultQuoting reports whether quoted fields are honoured by default for
// the given delimiter. Tab-separated files are read literally.
func DefaultQuoting(delimiter rune) bool {
	return delimiter != '\t'
}

// NewRecordReader returns a reader over r. With quoting on, fields follow
// RFC 4180 quoting with stray quotes kept literally, and a malformed line
// surfaces as *csv.ParseError. With quoting off, every line is split on
// the delimiter and quote characters are ordinary text.
func NewRecordReader(r io.Reader, delimiter rune, quoting bool) RecordReader {
	if !quoting {
		return &splitReader{br: bufio.NewReader(r), sep: string(delimiter)}
	}
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return &quotedReader{cr: cr}
}

type quotedReader struct {
	cr   *csv.Reader
	line int
}

func (q *quotedReader) Read() ([]string, error) {
	rec, err := q.cr.Read()
	if err != nil {
		return nil, err
	}
	q.line, _ = q.cr.FieldPos(0)
	return rec, nil
}

func (q *quotedReader) Line() int { return q.line }

type splitReader struct {
	br   *bufio.Reader
	sep  string
	next int
	line int
}

func (s *splitReader) Read() ([]string, error) {
	for {
		text, err := s.br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if text == "" && err == io.EOF {
			return nil, io.EOF
		}
		s.next++
		text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
		if text == "" {
			continue
		}
		s.line = s.next
		return strings.Split(text, s.sep), nil
	}
}

func (s *splitReader) Line() int { return s.line }
