// Package columnar exports typed rows and predictions as Apache Arrow
// records.
//
// Records returned by this package are reference counted; callers own them
// and must call Release when done.
//
//	rec, err := columnar.RowsToRecord(memory.DefaultAllocator, s.Schema(), rows)
//	if err != nil {
//	    return err
//	}
//	defer rec.Release()
package columnar
