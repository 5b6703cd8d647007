// Package stage defines the capabilities a pipeline step can have and the
// Example record that flows between steps.
//
// A Transformer is fitted on a stream of examples and yields a Fitted
// transform that maps one example to another. A Classifier is the terminal
// step: fitting it yields a Model that predicts one example at a time.
// Fitted transforms and models are immutable once returned.
//
// Roles bind source columns to the label and feature roles explicitly.
// Stages reach source values only through Example.Column, which refuses
// the label column.
package stage
