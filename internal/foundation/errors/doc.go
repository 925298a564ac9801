// Package errors provides type-safe error primitives used across resumebuilder.
//
// Key features:
//   - ErrorCategory: Broad error classification (parse, write, render, ...)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing messages
//
// Example usage:
//
//	err := errors.RenderToolFailure("typst compile failed").
//		WithCause(runErr).
//		WithContext("exit_code", 1).
//		Build()
package errors
