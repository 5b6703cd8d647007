package main

import (
	"github.com/Stephen0620/NimbusML-Samples/classify"
	"github.com/Stephen0620/NimbusML-Samples/config"
	"github.com/Stephen0620/NimbusML-Samples/featurize"
	"github.com/Stephen0620/NimbusML-Samples/logger"
	"github.com/Stephen0620/NimbusML-Samples/reduce"
	"github.com/Stephen0620/NimbusML-Samples/runner"
	"github.com/Stephen0620/NimbusML-Samples/schema"
	"github.com/Stephen0620/NimbusML-Samples/stage"
	"github.com/Stephen0620/NimbusML-Samples/stream"
)

// buildPipeline assembles the configured stages: n-gram text features,
// optional numeric features, an optional reducer and the classifier.
func buildPipeline(cfg *Config, log *logger.Logger) (*runner.Pipeline, error) {
	var stages []stage.Transformer

	ngram, err := featurize.NewNGram(cfg.Featurizer.NGram)
	if err != nil {
		return nil, err
	}
	stages = append(stages, ngram)

	if cfg.Featurizer.Numeric != nil {
		numeric, err := featurize.NewNumeric(*cfg.Featurizer.Numeric)
		if err != nil {
			return nil, err
		}
		stages = append(stages, numeric)
	}

	switch cfg.Reducer.Kind {
	case ReducerIdentity:
		stages = append(stages, reduce.NewIdentity(""))
	case ReducerPCA:
		pca, err := reduce.NewPCA(cfg.Reducer.PCA)
		if err != nil {
			return nil, err
		}
		stages = append(stages, pca)
	}

	classifier, err := newClassifier(cfg.Classifier)
	if err != nil {
		return nil, err
	}
	return runner.New(cfg.Roles, classifier, stages, runner.WithLogger(log))
}

func newClassifier(cfg ClassifierConfig) (stage.Classifier, error) {
	switch cfg.Kind {
	case ClassifierMajority:
		return classify.NewMajority(""), nil
	case ClassifierLogistic:
		return classify.NewLogisticRegression(cfg.Logistic)
	default:
		return classify.NewAveragedPerceptron(cfg.Perceptron)
	}
}

// openStream infers the schema of one configured data file.
func openStream(cfg config.DataConfig, log *logger.Logger) (*stream.Stream, error) {
	delim, err := cfg.DelimiterRune()
	if err != nil {
		return nil, err
	}
	policy, err := stream.ParseRowPolicy(cfg.RowPolicy)
	if err != nil {
		return nil, err
	}
	opts := []stream.Option{
		stream.WithHeader(cfg.Header),
		stream.WithRowPolicy(policy),
		stream.WithLogger(log),
		stream.WithSchemaOptions(schema.WithSampleRows(cfg.SampleRows)),
	}
	if quoting, ok := cfg.Quoting(); ok {
		opts = append(opts, stream.WithQuoting(quoting))
	}
	return stream.Open(cfg.Path, delim, opts...)
}
