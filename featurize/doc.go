// Package featurize turns source columns into numeric feature vectors.
//
// NGram builds a bag of word n-grams over one or more text columns. Numeric
// copies integer and float columns into the feature vector, optionally
// standardized with the mean and deviation seen during Fit.
package featurize
