package schema

import (
	"testing"

	"github.com/apache/arrow/go/v17/arrow"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		columns []Column
		wantErr bool
	}{
		{"valid", []Column{{Name: "a", Position: 0}, {Name: "b", Type: Integer, Position: 1}}, false},
		{"no columns", nil, true},
		{"gap in positions", []Column{{Name: "a", Position: 0}, {Name: "b", Position: 2}}, true},
		{"duplicate name", []Column{{Name: "a", Position: 0}, {Name: "a", Position: 1}}, true},
		{"unknown type", []Column{{Name: "a", Type: Type(9), Position: 0}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.columns, true, ',')
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperrors.HasCode(err, apperrors.ErrCodeSchemaConflict) {
				t.Errorf("code = %s, want SCHEMA_CONFLICT", apperrors.CodeOf(err))
			}
		})
	}
}

func TestSchema_ColumnsReturnsCopy(t *testing.T) {
	s, err := New([]Column{{Name: "a", Position: 0}}, false, ',')
	if err != nil {
		t.Fatal(err)
	}
	cols := s.Columns()
	cols[0].Name = "mutated"
	if s.At(0).Name != "a" {
		t.Error("Columns() exposed internal state")
	}
}

func TestSchema_Lookup(t *testing.T) {
	s, err := New([]Column{{Name: "a", Position: 0}, {Name: "b", Type: Float, Position: 1}}, true, '\t')
	if err != nil {
		t.Fatal(err)
	}
	if s.Index("b") != 1 || s.Index("zzz") != -1 {
		t.Errorf("Index mismatch: b=%d zzz=%d", s.Index("b"), s.Index("zzz"))
	}
	c, ok := s.Column("b")
	if !ok || c.Type != Float {
		t.Errorf("Column(b) = %v, %v", c, ok)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"text", Text, false},
		{"Integer", Integer, false},
		{" float ", Float, false},
		{"int64", Integer, false},
		{"bool", Text, true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseType(%q) = %s, %v", tt.in, got, err)
		}
	}
}

func TestSchema_Arrow(t *testing.T) {
	s, err := New([]Column{
		{Name: "Text", Type: Text, Position: 0},
		{Name: "Label", Type: Integer, Position: 1},
		{Name: "Score", Type: Float, Position: 2},
	}, true, '\t')
	if err != nil {
		t.Fatal(err)
	}
	as := s.Arrow()
	if as.NumFields() != 3 {
		t.Fatalf("NumFields = %d", as.NumFields())
	}
	wantIDs := []arrow.Type{arrow.STRING, arrow.INT64, arrow.FLOAT64}
	for i, id := range wantIDs {
		if got := as.Field(i).Type.ID(); got != id {
			t.Errorf("field %d type = %s, want %s", i, got, id)
		}
	}
	if idx := as.Metadata().FindKey("delimiter"); idx < 0 || as.Metadata().Values()[idx] != "\t" {
		t.Error("delimiter metadata missing")
	}
	if idx := as.Metadata().FindKey("quoting"); idx < 0 || as.Metadata().Values()[idx] != "false" {
		t.Error("tab schema should record quoting=false")
	}
}

func TestSchema_WithQuoting(t *testing.T) {
	s, err := New([]Column{{Name: "a", Type: Text, Position: 0}}, false, ',')
	if err != nil {
		t.Fatal(err)
	}
	if !s.Quoting() {
		t.Fatal("comma schema should quote by default")
	}
	literal := s.WithQuoting(false)
	if literal.Quoting() || !s.Quoting() {
		t.Error("WithQuoting must return a modified copy")
	}
	if s.Equal(literal) {
		t.Error("schemas differing in quoting compare equal")
	}
}
