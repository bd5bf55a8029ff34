// Package annotations provides a low-overhead event system for
// tracking query execution metrics, generalizing janus-datalog's
// datalog/annotations package (which records Datalog pattern-matching
// and join events) to JSONiq's clause/iterator/function-call execution
// model.
package annotations

import (
	"sync"
	"time"
)

// Event name constants, following janus-datalog's hierarchical
// "noun/verb" naming pattern.
const (
	// Query lifecycle
	QueryInvoked  = "query/invoked"
	QueryComplete = "query/completed"

	// FLWOR clause execution
	ClauseBegin    = "clause/begin"
	ClauseComplete = "clause/complete"

	// Iterator execution (open/close lifecycle)
	IteratorOpened = "iterator/opened"
	IteratorClosed = "iterator/closed"

	// Blocking clause algorithms
	GroupByExecuted = "groupby/executed"
	OrderByExecuted = "orderby/executed"

	// Function resolution and invocation
	FunctionResolved = "function/resolved"
	FunctionInvoked  = "function/invoked"

	// Errors
	ErrorParse   = "error/parse"
	ErrorTyping  = "error/typing"
	ErrorRuntime = "error/runtime"
)

// Event represents a single annotation event during query execution.
type Event struct {
	Name    string
	Start   time.Time
	End     time.Time
	Latency time.Duration
	Data    map[string]interface{}
}

// Handler processes annotation events as they occur.
type Handler func(event Event)

// Collector accumulates events during a single query's execution,
// mirroring janus-datalog's mutex-protected Collector so it is safe to
// share across concurrently-opened sibling iterators (e.g. the two
// branches of a join, or concurrent for-clause evaluation).
type Collector struct {
	enabled bool
	handler Handler
	events  []Event
	mu      sync.Mutex
}

// NewCollector creates a collector; handler may be nil to disable
// collection entirely while still accepting Add calls as no-ops.
func NewCollector(handler Handler) *Collector {
	return &Collector{
		enabled: handler != nil,
		handler: handler,
		events:  make([]Event, 0, 64),
	}
}

// Add records an event and forwards it to the handler, if any. Safe
// for concurrent use.
func (c *Collector) Add(event Event) {
	if !c.enabled {
		return
	}
	c.mu.Lock()
	c.events = append(c.events, event)
	c.mu.Unlock()
	if c.handler != nil {
		c.handler(event)
	}
}

// AddTiming records an event whose Latency is computed from start to
// now, the common case for wrapping a single operation.
func (c *Collector) AddTiming(name string, start time.Time, data map[string]interface{}) {
	if !c.enabled {
		return
	}
	end := time.Now()
	c.Add(Event{
		Name:    name,
		Start:   start,
		End:     end,
		Latency: end.Sub(start),
		Data:    data,
	})
}

// Events returns a copy of all collected events.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Reset clears the collector for reuse across queries, keeping the
// handler and enabled status.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
}
