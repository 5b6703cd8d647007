package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/logger"
	"github.com/Stephen0620/NimbusML-Samples/schema"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rows.tsv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

const sentiment = "Sentiment\tText\tLabel\n" +
	"pos\thello world\t1\n" +
	"neg\tawful film\t0\n" +
	"pos\t\"Up\" is a lovely film\t1\n"

func TestOpen_YieldsTypedRows(t *testing.T) {
	s, err := Open(writeFile(t, sentiment), '\t', WithHeader(true), WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rows, err := s.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	want := Row{TextValue("pos"), TextValue("hello world"), IntValue(1)}
	if !rows[0].Equal(want) {
		t.Errorf("row 0 = %v, want %v", rows[0], want)
	}
	if got := rows[2][1].Text(); got != `"Up" is a lovely film` {
		t.Errorf("quote characters not kept literally: %q", got)
	}
	if rows[1][2].Int() != 0 || rows[1][2].Type() != schema.Integer {
		t.Errorf("label = %v", rows[1][2])
	}
}

func TestRows_Restartable(t *testing.T) {
	s, err := Open(writeFile(t, sentiment), '\t', WithHeader(true), WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()
	first, err := s.Collect(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Collect(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("traversal lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Errorf("row %d differs between traversals", i)
		}
	}
	n, err := s.Count(ctx)
	if err != nil || n != 3 {
		t.Errorf("Count = %d, %v", n, err)
	}
}

func TestRows_Quoting(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		delimiter rune
		opts      []Option
		want      []string
	}{
		{
			name:      "tab reads quotes literally",
			content:   "Text\tLabel\nplain\t0\n\"Up\" is a lovely film\t1\nsays \"meh\"\t0\n\"open\t1\n",
			delimiter: '\t',
			want:      []string{"plain", `"Up" is a lovely film`, `says "meh"`, `"open`},
		},
		{
			name:      "comma honours quoted fields",
			content:   "Text,Label\nplain,0\n\"great, really\",1\n",
			delimiter: ',',
			want:      []string{"plain", "great, really"},
		},
		{
			name:      "tab with quoting turned on",
			content:   "Text\tLabel\n\"a\tb\"\t1\n",
			delimiter: '\t',
			opts:      []Option{WithQuoting(true)},
			want:      []string{"a\tb"},
		},
		{
			name:      "comma with quoting turned off",
			content:   "Text,Label\n\"x\",1\n",
			delimiter: ',',
			opts:      []Option{WithQuoting(false)},
			want:      []string{`"x"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithHeader(true), WithLogger(logger.NewNop())}, tt.opts...)
			s, err := Open(writeFile(t, tt.content), tt.delimiter, opts...)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if got := s.Schema().At(1).Type; got != schema.Integer {
				t.Errorf("Label type = %s, want integer", got)
			}
			rows, err := s.Collect(context.Background())
			if err != nil {
				t.Fatalf("Collect: %v", err)
			}
			if len(rows) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(rows), len(tt.want))
			}
			for i, want := range tt.want {
				if got := rows[i][0].Text(); got != want {
					t.Errorf("row %d text = %q, want %q", i, got, want)
				}
			}
			if s.Skipped() != 0 {
				t.Errorf("skipped = %d, want 0", s.Skipped())
			}
		})
	}
}

func TestRows_QuotedTextUnderSkipPolicy(t *testing.T) {
	content := "Sentiment\tText\tLabel\n" +
		"neg\tdull\t0\n" +
		"pos\t\"Up\" is a lovely film\t1\n" +
		"pos\tfine\t1\n" +
		"neg\tbad\t0\n"
	s, err := Open(writeFile(t, content), '\t', WithHeader(true), WithRowPolicy(SkipMalformed), WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 4 || s.Skipped() != 0 {
		t.Errorf("count = %d skipped = %d, want 4 and 0", n, s.Skipped())
	}
}

func TestNew_QuotingOverride(t *testing.T) {
	path := writeFile(t, "\"x\"\n")
	sch, err := schema.New([]schema.Column{{Name: "a", Position: 0}}, false, ',')
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(path, sch, WithQuoting(false), WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatal(err)
	}
	if s.Schema().Quoting() {
		t.Error("schema quoting should follow the override")
	}
	if !sch.Quoting() {
		t.Error("caller's schema must not be modified")
	}
	rows, err := s.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0][0].Text() != `"x"` {
		t.Errorf("rows = %v", rows)
	}
}

func TestRows_NoHeader(t *testing.T) {
	s, err := Open(writeFile(t, "1,2.5\n2,3\n"), ',', WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rows, err := s.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1][1].Float() != 3 {
		t.Errorf("float coercion = %v", rows[1][1])
	}
}

func TestRows_FailOnError(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{"short row", "a\tb\n1\tx\n2\n", 3},
		{"long row", "a\tb\n1\tx\n2\ty\tz\n", 3},
		{"bad integer", "a\tb\n1\tx\nnope\ty\n", 3},
		{"empty integer", "a\tb\n1\tx\n\ty\n", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)
			sch, err := schema.New([]schema.Column{
				{Name: "a", Type: schema.Integer, Position: 0},
				{Name: "b", Type: schema.Text, Position: 1},
			}, true, '\t')
			if err != nil {
				t.Fatal(err)
			}
			s, err := New(path, sch, WithLogger(logger.NewNop()))
			if err != nil {
				t.Fatal(err)
			}
			_, err = s.Collect(context.Background())
			ae, ok := apperrors.AsAppError(err)
			if !ok || ae.Code != apperrors.ErrCodeRowParse {
				t.Fatalf("expected ROW_PARSE, got %v", err)
			}
			if ae.Details["line"] != tt.wantLine {
				t.Errorf("line = %v, want %d", ae.Details["line"], tt.wantLine)
			}
		})
	}
}

func TestRows_SkipMalformed(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "warn", Format: "json"}, "test", &buf)

	path := writeFile(t, "a\tb\n1\tx\nbad\ty\n2\tz\n3\n")
	sch, err := schema.New([]schema.Column{
		{Name: "a", Type: schema.Integer, Position: 0},
		{Name: "b", Type: schema.Text, Position: 1},
	}, true, '\t')
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(path, sch, WithRowPolicy(SkipMalformed), WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	for pass := 0; pass < 2; pass++ {
		buf.Reset()
		n, err := s.Count(context.Background())
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if n != 2 {
			t.Errorf("pass %d: got %d rows, want 2", pass, n)
		}
		if s.Skipped() != 2 {
			t.Errorf("pass %d: skipped = %d, want 2", pass, s.Skipped())
		}
		var entry map[string]interface{}
		if err := json.Unmarshal(bytes.SplitN(buf.Bytes(), []byte("\n"), 2)[0], &entry); err != nil {
			t.Fatalf("decode log line: %v", err)
		}
		if entry["line"] != float64(3) {
			t.Errorf("logged line = %v, want 3", entry["line"])
		}
	}
}

func TestNew_MissingFile(t *testing.T) {
	sch, _ := schema.New([]schema.Column{{Name: "a", Position: 0}}, false, ',')
	_, err := New(filepath.Join(t.TempDir(), "none.csv"), sch)
	if !apperrors.HasCode(err, apperrors.ErrCodeFileAccess) {
		t.Fatalf("expected FILE_ACCESS, got %v", err)
	}
}

func TestRows_FileRemovedAfterOpen(t *testing.T) {
	path := writeFile(t, "a\n1\n")
	s, err := Open(path, ',', WithHeader(true), WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	_, err = s.Count(context.Background())
	if !apperrors.HasCode(err, apperrors.ErrCodeFileAccess) {
		t.Fatalf("expected FILE_ACCESS, got %v", err)
	}
}

func TestHead(t *testing.T) {
	s, err := Open(writeFile(t, sentiment), '\t', WithHeader(true), WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatal(err)
	}
	rows, err := s.Head(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("Head(2) returned %d rows", len(rows))
	}
}

func TestRows_Cancelled(t *testing.T) {
	s, err := Open(writeFile(t, sentiment), '\t', WithHeader(true), WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Count(ctx); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestParseRowPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    RowPolicy
		wantErr bool
	}{
		{"", FailOnError, false},
		{"fail", FailOnError, false},
		{"SKIP", SkipMalformed, false},
		{"ignore", FailOnError, true},
	}
	for _, tt := range tests {
		got, err := ParseRowPolicy(tt.in)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("ParseRowPolicy(%q) = %v, %v", tt.in, got, err)
		}
	}
}
