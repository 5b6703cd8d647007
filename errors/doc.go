// Package errors provides the coded error type shared by every package in
// this module.
//
// Each failure a caller can act on has its own ErrorCode: file access,
// schema conflicts, malformed rows, stage fit/transform failures, invalid
// configuration and use of an untrained pipeline. Errors are never retried;
// callers are expected to halt on any of them.
package errors
