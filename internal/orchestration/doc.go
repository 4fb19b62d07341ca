// Package orchestration evaluates batches of independent expressions
// concurrently and aggregates the outcome. It decouples evaluation from
// presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
