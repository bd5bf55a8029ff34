package iterator

import "github.com/prometheus/client_golang/prometheus"

// Metrics instruments the iterator lifecycle the same way
// antflydb-antfly-go/libaf instruments its service: open/close balance
// counters catch leaked iterators in tests and long-running queries;
// the hybrid-fallback counter tracks how often a hybrid node's
// children forced it into distributed mode versus running locally.
var (
	OpensTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "jsoniq_core",
		Subsystem: "iterator",
		Name:      "opens_total",
		Help:      "Total number of RuntimeIterator.Open calls.",
	})

	ClosesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "jsoniq_core",
		Subsystem: "iterator",
		Name:      "closes_total",
		Help:      "Total number of RuntimeIterator.Close calls.",
	})

	HybridDispatchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jsoniq_core",
		Subsystem: "iterator",
		Name:      "hybrid_dispatch_total",
		Help:      "Total number of hybrid iterator dispatch decisions, by chosen ExecutionKind.",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(OpensTotal, ClosesTotal, HybridDispatchTotal)
}

// RecordDispatch records the dispatch decision a Hybrid node made;
// call it once per Open from initExecutionKind-style call sites.
func RecordDispatch(kind ExecutionKind) {
	HybridDispatchTotal.WithLabelValues(kind.String()).Inc()
}
