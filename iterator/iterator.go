// Package iterator implements the pull-based streaming protocol every
// expression result flows through: open/hasNext/next/close/reset,
// plus the isRDD/getRDD/isDataFrame/getDataFrame escape hatches a
// hybrid iterator uses to hand a whole distributed collection to its
// consumer instead of pulling one item at a time.
package iterator

import (
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/jerrors"
)

// ExecutionKind tags how an iterator actually ran once opened, used by
// the annotations package's Explain renderer.
type ExecutionKind int

const (
	ExecutionLocal ExecutionKind = iota
	ExecutionRDD
	ExecutionDataFrame
)

func (k ExecutionKind) String() string {
	switch k {
	case ExecutionRDD:
		return "rdd"
	case ExecutionDataFrame:
		return "dataframe"
	default:
		return "local"
	}
}

// RuntimeIterator is the streaming contract every expression
// evaluates to, following janus-datalog's Next()/Tuple()/Close() shape
// generalized to single items instead of tuples (item.Item and
// iterator.RuntimeIterator are this core's Value/Iterator pair). Open
// must be called exactly once before HasNext/Next; Close exactly once
// when the consumer is done, even on an error path.
//
// IsRDD/GetRDD and IsDataFrame/GetDataFrame are the hybrid escape
// hatch: a consumer that can operate on a whole
// distributed collection should check these before falling back to
// per-item HasNext/Next pulls, so a large distributed source is never
// forced through a single-item pull loop.
type RuntimeIterator interface {
	Open(ctx interface{}) error
	HasNext() (bool, error)
	Next() (item.Item, error)
	Close() error
	// Reset rewinds the iterator to just after Open, returning
	// jerrors.NotRewindable if the underlying source cannot rewind
	// (e.g. a consumed network cursor with no buffering).
	Reset() error

	IsRDD() bool
	GetRDD() (distributed.PartitionedCollection, error)
	IsDataFrame() bool
	GetDataFrame() (distributed.DataFrame, error)

	ExecutionKind() ExecutionKind
}

// state tracks the open/close lifecycle for the Guard helper embedded
// by concrete iterators, catching the hasNext/next-before-open and
// double-close misuse janus-datalog's Iterator implementations leave to
// caller discipline.
type state int

const (
	stateUnopened state = iota
	stateOpen
	stateClosed
)

// Guard is embeddable by concrete RuntimeIterator implementations to
// get open/close lifecycle checking for free, mirroring how the
// janus-datalog's CountingIterator/CachingIterator wrap an inner Iterator
// rather than reimplementing bookkeeping per iterator.
type Guard struct {
	st state
}

// MarkOpen transitions from unopened to open, or reports an
// IteratorFlow error if Open was already called.
func (g *Guard) MarkOpen() error {
	if g.st != stateUnopened {
		return jerrors.NewIteratorFlow("Open called more than once")
	}
	g.st = stateOpen
	OpensTotal.Inc()
	return nil
}

// RequireOpen reports an IteratorFlow error if HasNext/Next is called
// before Open or after Close.
func (g *Guard) RequireOpen() error {
	switch g.st {
	case stateOpen:
		return nil
	case stateUnopened:
		return jerrors.NewIteratorFlow("HasNext/Next called before Open")
	default:
		return jerrors.NewIteratorFlow("HasNext/Next called after Close")
	}
}

// MarkClosed transitions to closed; calling Close twice is tolerated
// (idempotent) since many call sites defer Close after an early return
// that may already have closed it.
func (g *Guard) MarkClosed() {
	if g.st != stateClosed {
		ClosesTotal.Inc()
	}
	g.st = stateClosed
}

// MarkReopened transitions back to open for Reset, reporting an error
// if the iterator was never opened to begin with.
func (g *Guard) MarkReopened() error {
	if g.st == stateUnopened {
		return jerrors.NewIteratorFlow("Reset called before Open")
	}
	g.st = stateOpen
	return nil
}
