// Package schema infers the column layout of a delimited text file.
//
// Infer reads the header line (when the caller asserts one) and a bounded
// sample of data rows, then assigns each column one of three types:
//
//   - Integer when every non-empty sampled value parses as an int64
//   - Float when every non-empty sampled value is numeric but not all are integers
//   - Text otherwise
//
// Empty values do not vote. A column that is numeric in some rows and text
// in others becomes Text, unless text fallback is disabled, in which case
// inference fails with a SCHEMA_CONFLICT error. Types may also be declared
// up front with WithColumnType; a sampled value that contradicts a declared
// numeric type is always a conflict.
//
// The resulting Schema is immutable and inference is deterministic: the same
// file and options always produce an Equal schema.
package schema
