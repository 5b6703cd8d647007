package main

import (
	"fmt"
	"slices"

	"github.com/Stephen0620/NimbusML-Samples/classify"
	"github.com/Stephen0620/NimbusML-Samples/config"
	"github.com/Stephen0620/NimbusML-Samples/featurize"
	"github.com/Stephen0620/NimbusML-Samples/observability"
	"github.com/Stephen0620/NimbusML-Samples/reduce"
	"github.com/Stephen0620/NimbusML-Samples/stage"
)

// Reducer and classifier kinds accepted in config.yml.
const (
	ReducerNone     = "none"
	ReducerIdentity = "identity"
	ReducerPCA      = "pca"

	ClassifierMajority   = "majority"
	ClassifierPerceptron = "averaged_perceptron"
	ClassifierLogistic   = "logistic_regression"
)

// Config is the sentiment example configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Data          DataConfig           `yaml:"data" mapstructure:"data"`
	Roles         stage.Roles          `yaml:"roles" mapstructure:"roles"`
	Featurizer    FeaturizerConfig     `yaml:"featurizer" mapstructure:"featurizer"`
	Reducer       ReducerConfig        `yaml:"reducer" mapstructure:"reducer"`
	Classifier    ClassifierConfig     `yaml:"classifier" mapstructure:"classifier"`
	Output        OutputConfig         `yaml:"output" mapstructure:"output"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// DataConfig names the training and test files.
type DataConfig struct {
	Train config.DataConfig `yaml:"train" mapstructure:"train"`
	Test  config.DataConfig `yaml:"test" mapstructure:"test"`
}

// FeaturizerConfig configures the text and optional numeric featurizers.
type FeaturizerConfig struct {
	NGram   featurize.NGramConfig    `yaml:"ngram" mapstructure:"ngram"`
	Numeric *featurize.NumericConfig `yaml:"numeric" mapstructure:"numeric"`
}

// ReducerConfig selects the dimensionality reduction stage.
type ReducerConfig struct {
	Kind string           `yaml:"kind" mapstructure:"kind"`
	PCA  reduce.PCAConfig `yaml:"pca" mapstructure:"pca"`
}

// ClassifierConfig selects the terminal classifier.
type ClassifierConfig struct {
	Kind       string                    `yaml:"kind" mapstructure:"kind"`
	Perceptron classify.PerceptronConfig `yaml:"perceptron" mapstructure:"perceptron"`
	Logistic   classify.LogisticConfig   `yaml:"logistic" mapstructure:"logistic"`
}

// OutputConfig controls what is printed after the test run.
type OutputConfig struct {
	// Scores is the number of prediction rows shown; 0 hides them.
	Scores int `yaml:"scores" mapstructure:"scores"`
	// Predictions, when set, receives every prediction as an Arrow IPC stream.
	Predictions string `yaml:"predictions" mapstructure:"predictions"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "sentiment"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Data.Train.ApplyDefaults()
	c.Data.Test.ApplyDefaults()
	if c.Roles.Label == "" {
		c.Roles.Label = "Label"
	}
	c.Featurizer.NGram.ApplyDefaults()
	if c.Reducer.Kind == "" {
		c.Reducer.Kind = ReducerNone
	}
	if c.Classifier.Kind == "" {
		c.Classifier.Kind = ClassifierPerceptron
	}
	c.Observability.ApplyDefaults()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Data.Train.Validate("data.train"); err != nil {
		return err
	}
	if err := c.Data.Test.Validate("data.test"); err != nil {
		return err
	}
	reducers := []string{ReducerNone, ReducerIdentity, ReducerPCA}
	if !slices.Contains(reducers, c.Reducer.Kind) {
		return fmt.Errorf("reducer.kind must be one of %v (got: %s)", reducers, c.Reducer.Kind)
	}
	classifiers := []string{ClassifierMajority, ClassifierPerceptron, ClassifierLogistic}
	if !slices.Contains(classifiers, c.Classifier.Kind) {
		return fmt.Errorf("classifier.kind must be one of %v (got: %s)", classifiers, c.Classifier.Kind)
	}
	if c.Output.Scores < 0 {
		return fmt.Errorf("output.scores must not be negative (got: %d)", c.Output.Scores)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	return nil
}
