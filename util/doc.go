// Package util holds small parsing helpers shared by schema inference and
// row decoding, so both agree on what counts as a number.
package util
