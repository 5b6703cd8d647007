// Package classify holds the terminal classifiers of a pipeline.
//
// Majority predicts the most frequent training label. AveragedPerceptron and
// LogisticRegression are binary linear models over Example.Features and
// require labels 0 and 1. Each training epoch is one traversal of the
// example stream, so the stream is re-read rather than buffered. Training
// uses no randomness: the same data always yields the same model.
package classify
