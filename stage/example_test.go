package stage

import (
	"context"
	"testing"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/schema"
	"github.com/Stephen0620/NimbusML-Samples/stream"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New([]schema.Column{
		{Name: "Sentiment", Type: schema.Text, Position: 0},
		{Name: "Text", Type: schema.Text, Position: 1},
		{Name: "Label", Type: schema.Integer, Position: 2},
	}, true, '\t')
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRolesBind(t *testing.T) {
	sch := testSchema(t)
	tests := []struct {
		name         string
		roles        Roles
		requireLabel bool
		wantFeatures []string
		wantCode     apperrors.ErrorCode
	}{
		{"default features", Roles{Label: "Label"}, true, []string{"Sentiment", "Text"}, ""},
		{"explicit features", Roles{Label: "Label", Features: []string{"Text"}}, true, []string{"Text"}, ""},
		{"missing label allowed", Roles{Label: "Missing", Features: []string{"Text"}}, false, []string{"Text"}, ""},
		{"missing label required", Roles{Label: "Missing"}, true, nil, apperrors.ErrCodeSchemaConflict},
		{"text label", Roles{Label: "Text"}, true, nil, apperrors.ErrCodeSchemaConflict},
		{"label as feature", Roles{Label: "Label", Features: []string{"Label"}}, true, nil, apperrors.ErrCodeSchemaConflict},
		{"unknown feature", Roles{Label: "Label", Features: []string{"Nope"}}, true, nil, apperrors.ErrCodeSchemaConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.roles.Bind(sch, tt.requireLabel)
			if tt.wantCode != "" {
				if !apperrors.HasCode(err, tt.wantCode) {
					t.Fatalf("expected %s, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Bind: %v", err)
			}
			got := b.Features()
			if len(got) != len(tt.wantFeatures) {
				t.Fatalf("features = %v, want %v", got, tt.wantFeatures)
			}
			for i := range got {
				if got[i] != tt.wantFeatures[i] {
					t.Errorf("features = %v, want %v", got, tt.wantFeatures)
				}
			}
		})
	}
}

func TestExampleColumn(t *testing.T) {
	b, err := Roles{Label: "Label"}.Bind(testSchema(t), true)
	if err != nil {
		t.Fatal(err)
	}
	ex := b.Example(stream.Row{stream.TextValue("pos"), stream.TextValue("hello world"), stream.IntValue(1)})
	if !ex.HasLabel || ex.Label != 1 {
		t.Errorf("label = %d (has %v)", ex.Label, ex.HasLabel)
	}
	v, err := ex.Column("Text")
	if err != nil || v.Text() != "hello world" {
		t.Errorf("Column(Text) = %v, %v", v, err)
	}
	if _, err := ex.Column("Label"); !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("label column should be refused, got %v", err)
	}
	typ, err := ex.ColumnType("Sentiment")
	if err != nil || typ != schema.Text {
		t.Errorf("ColumnType = %s, %v", typ, err)
	}
	if _, err := (Example{}).Column("Text"); err == nil {
		t.Error("unbound example should refuse column access")
	}
}

func TestExampleWithFeaturesCopies(t *testing.T) {
	base := Example{Features: make([]float64, 1, 8)}
	a := base.WithFeatures(1)
	b := base.WithFeatures(2)
	if a.Features[1] != 1 || b.Features[1] != 2 {
		t.Errorf("appends aliased: a=%v b=%v", a.Features, b.Features)
	}
	if len(base.Features) != 1 {
		t.Errorf("base mutated: %v", base.Features)
	}
}

func TestFittedFunc(t *testing.T) {
	var f Fitted = FittedFunc(func(_ context.Context, ex Example) (Example, error) {
		return ex.WithFeatures(42), nil
	})
	out, err := f.Transform(context.Background(), Example{})
	if err != nil || len(out.Features) != 1 || out.Features[0] != 42 {
		t.Errorf("Transform = %v, %v", out.Features, err)
	}
}
