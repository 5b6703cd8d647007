// Package reduce provides dimensionality reduction stages.
//
// PCA accumulates the feature covariance in a single pass over the training
// examples, then keeps the eigenvectors with the largest eigenvalues.
// Memory grows with the square of the feature dimension, not with the
// number of rows.
package reduce
