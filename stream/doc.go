// Package stream reads a delimited text file as a lazy, restartable
// sequence of typed rows.
//
// A Stream holds only a path and a schema. Every traversal of Rows reopens
// the file and reads it record by record, so memory use does not grow with
// file size and two traversals yield identical rows.
//
// Rows whose field count differs from the schema, or whose fields do not
// coerce to the column type, are malformed. The RowPolicy decides what
// happens to them: FailOnError (the default) aborts the traversal with a
// ROW_PARSE error; SkipMalformed logs a warning, counts the row and moves on.
//
//	s, err := stream.Open("train.tsv", '\t', stream.WithHeader(true))
//	n, err := s.Count(ctx)
package stream
