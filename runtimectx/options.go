// Package runtimectx provides the dynamic execution context every
// iterator is opened against: variable bindings with lexical parent
// lookup, cancellation, a query-correlation id, a structured logger,
// and an Options struct of runtime settings for hybrid local/
// distributed dispatch.
package runtimectx

// Options is the flat struct-of-flags configuration used to steer
// iterator construction and hybrid dispatch, in the same shape as the
// janus-datalog's own ExecutorOptions/PlannerOptions: one exported struct,
// no builder chain, a DefaultOptions() constructor callers mutate
// field-by-field. The field comments below say what each setting
// selects; no code in this module reads an Options value (Context does
// not carry one, and Hybrid, LocalCollection and the FLWOR clauses do
// not consult it), so setting a field does not change how a query runs.
type Options struct {
	// Hybrid dispatch thresholds: below
	// RDDFallbackThreshold input items, a hybrid iterator prefers local
	// execution over a distributed collection even when one is
	// available, to avoid distributed-execution overhead on tiny
	// inputs.
	RDDFallbackThreshold int

	// EnableDataFrameOrderBy selects the DataFrame-backed distributed
	// OrderBy algorithm over falling back to a collect-then-
	// sort-locally strategy when a query's ORDER BY executes over a
	// distributed source.
	EnableDataFrameOrderBy bool

	// WorkerPoolSize bounds LocalCollection.Map's parallelism; 0 means
	// runtime.NumCPU(), mirroring MaxSubqueryWorkers' 0-means-NumCPU
	// convention.
	WorkerPoolSize int

	// EnableStreamingAggregation selects streaming (constant-memory)
	// GroupBy aggregation over drain-then-aggregate.
	EnableStreamingAggregation bool

	// DefaultEmptyOrder sets the default emptyOrder used when a
	// group-by or order-by clause doesn't specify one explicitly.
	DefaultEmptyOrder int // item.EmptyOrder, kept untyped here to avoid an import cycle

	// EnableDebugLogging raises the logger's level to debug for this
	// query, mirroring ExecutorOptions.EnableDebugLogging.
	EnableDebugLogging bool
}

// DefaultOptions mirrors janus-datalog's DefaultPlannerOptions: a single
// function returning sane defaults, grounded the same way so a caller
// can start from it and override only what it needs to.
func DefaultOptions() Options {
	return Options{
		RDDFallbackThreshold:       1000,
		EnableDataFrameOrderBy:     true,
		WorkerPoolSize:             0,
		EnableStreamingAggregation: true,
		DefaultEmptyOrder:          0, // item.EmptyLeast
		EnableDebugLogging:         false,
	}
}
