package reduce

import (
	"context"

	"github.com/Stephen0620/NimbusML-Samples/pipeline"
	"github.com/Stephen0620/NimbusML-Samples/stage"
)

// Identity is a stage that passes examples through unchanged.
type Identity struct {
	name string
}

// NewIdentity returns a no-op stage. An empty name defaults to "identity".
func NewIdentity(name string) *Identity {
	if name == "" {
		name = "identity"
	}
	return &Identity{name: name}
}

func (i *Identity) Name() string { return i.name }

// Fit does not read the stream.
func (i *Identity) Fit(context.Context, *pipeline.Pipeline[stage.Example]) (stage.Fitted, error) {
	return stage.FittedFunc(func(_ context.Context, ex stage.Example) (stage.Example, error) {
		return ex, nil
	}), nil
}
