// Package runner trains and evaluates a linear pipeline of stages over a
// row stream.
//
// Fit fits each transformer in order on the stream as transformed by the
// stages before it, then fits the classifier on the fully transformed
// stream. Nothing is buffered: every stage fit is a fresh traversal that
// reopens the source file. Test and Predict push a stream through the
// fitted stages into the trained model.
//
// Runs fail fast. The first error aborts the run and no partial results are
// returned. Errors that already carry an error code pass through unchanged;
// any other stage error is wrapped as STAGE_FIT or STAGE_TRANSFORM naming the
// stage, with the original error reachable through errors.As.
package runner
