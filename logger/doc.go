// Package logger provides structured logging built on zerolog.
//
// A global logger is configured once with Init and shared by the stream,
// runner and example program. Packages obtain component-tagged loggers with
// Get or WithComponent; the run id is attached with WithRun and per-event
// fields are built with Fields.
//
//	logger.Init(logger.Config{Level: "debug", Format: "json"})
//	log := logger.Get("runner").WithRun(runID)
//	log.Info("fit finished", logger.DurationFields("fit", elapsed))
package logger
