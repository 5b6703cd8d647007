package stage

import (
	"fmt"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
	"github.com/Stephen0620/NimbusML-Samples/schema"
	"github.com/Stephen0620/NimbusML-Samples/stream"
)

// Example is one row on its way through the pipeline.
type Example struct {
	Row      stream.Row
	Features []float64
	Label    int64
	HasLabel bool

	binding *Binding
}

// Column returns the value of a feature-role column.
func (ex Example) Column(name string) (stream.Value, error) {
	if ex.binding == nil {
		return stream.Value{}, apperrors.InvalidInput("column", "example is not bound to a schema")
	}
	i, err := ex.binding.featureIndex(name)
	if err != nil {
		return stream.Value{}, err
	}
	return ex.Row[i], nil
}

// ColumnType returns the schema type of a feature-role column.
func (ex Example) ColumnType(name string) (schema.Type, error) {
	if ex.binding == nil {
		return schema.Text, apperrors.InvalidInput("column", "example is not bound to a schema")
	}
	i, err := ex.binding.featureIndex(name)
	if err != nil {
		return schema.Text, err
	}
	return ex.binding.schema.At(i).Type, nil
}

// WithFeatures returns a copy of ex with vec appended to its features.
// The receiver's feature slice is never modified.
func (ex Example) WithFeatures(vec ...float64) Example {
	out := ex
	out.Features = make([]float64, 0, len(ex.Features)+len(vec))
	out.Features = append(out.Features, ex.Features...)
	out.Features = append(out.Features, vec...)
	return out
}

// ReplaceFeatures returns a copy of ex whose features are vec.
func (ex Example) ReplaceFeatures(vec []float64) Example {
	out := ex
	out.Features = vec
	return out
}

// Roles binds source columns to pipeline roles.
type Roles struct {
	// Label names the integer label column.
	Label string `yaml:"label" mapstructure:"label" validate:"required"`
	// Features lists the columns stages may read. Empty means every
	// column except the label.
	Features []string `yaml:"features" mapstructure:"features" validate:"unique"`
}

// Binding is a set of roles resolved against a schema.
type Binding struct {
	schema   *schema.Schema
	label    int
	features map[string]int
	order    []string
}

// Bind resolves roles against sch. When requireLabel is false a missing
// label column is allowed and examples carry no label.
func (r Roles) Bind(sch *schema.Schema, requireLabel bool) (*Binding, error) {
	if sch == nil {
		return nil, apperrors.MissingField("schema")
	}
	b := &Binding{schema: sch, label: -1, features: make(map[string]int)}

	if col, ok := sch.Column(r.Label); ok {
		if col.Type != schema.Integer {
			return nil, apperrors.SchemaConflict(r.Label, fmt.Sprintf("label column %q is %s, want integer", r.Label, col.Type))
		}
		b.label = col.Position
	} else if requireLabel {
		return nil, apperrors.SchemaConflict(r.Label, fmt.Sprintf("label column %q is not in the schema", r.Label))
	}

	names := r.Features
	if len(names) == 0 {
		for _, n := range sch.Names() {
			if n != r.Label {
				names = append(names, n)
			}
		}
	}
	for _, n := range names {
		if n == r.Label {
			return nil, apperrors.SchemaConflict(n, fmt.Sprintf("column %q cannot be both label and feature", n))
		}
		i := sch.Index(n)
		if i < 0 {
			return nil, apperrors.SchemaConflict(n, fmt.Sprintf("feature column %q is not in the schema", n))
		}
		b.features[n] = i
		b.order = append(b.order, n)
	}
	return b, nil
}

// Schema returns the bound schema.
func (b *Binding) Schema() *schema.Schema { return b.schema }

// HasLabel reports whether the label column was found.
func (b *Binding) HasLabel() bool { return b.label >= 0 }

// Features returns the feature-role column names in binding order.
func (b *Binding) Features() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Example wraps a row as an Example.
func (b *Binding) Example(row stream.Row) Example {
	ex := Example{Row: row, binding: b}
	if b.label >= 0 {
		ex.Label = row[b.label].Int()
		ex.HasLabel = true
	}
	return ex
}

func (b *Binding) featureIndex(name string) (int, error) {
	i, ok := b.features[name]
	if !ok {
		return 0, apperrors.InvalidInput("column", fmt.Sprintf("column %q is not bound to the feature role", name))
	}
	return i, nil
}
