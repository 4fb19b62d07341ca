// Package apperrors defines the structured error types shared by every run
// mode (configuration, evaluation, timeouts, oversized input) and maps them
// to process exit codes with ExitCodeFor.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Wrapping types such as EvalError implement Unwrap so that engine sentinels
// like bigint.ErrDivisionByZero remain visible to errors.Is.
package apperrors
