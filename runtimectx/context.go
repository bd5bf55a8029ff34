package runtimectx

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/jerrors"
)

// Binding is the value bound to a variable name in a Context. Exactly
// one of Sequence, Cursor, or Collection is meaningful, selected by
// IsCursor/IsCollection — FLWOR bindings may be materialized
// sequences, streaming cursors, or a partitioned collection staying
// on a distributed backend instead of being pulled through this
// process at all.
type Binding struct {
	Sequence     item.Sequence
	Cursor       Cursor
	IsCursor     bool
	Collection   distributed.PartitionedCollection
	IsCollection bool
}

// Cursor is the minimal streaming-binding contract a Binding may hold
// instead of a materialized Sequence: pull one item at a time with no
// assumption of rewindability.
type Cursor interface {
	Next() (item.Item, bool, error)
}

// SequenceBinding wraps a materialized sequence as a Binding.
func SequenceBinding(seq item.Sequence) Binding {
	return Binding{Sequence: seq}
}

// CursorBinding wraps a streaming cursor as a Binding.
func CursorBinding(c Cursor) Binding {
	return Binding{Cursor: c, IsCursor: true}
}

// CollectionBinding wraps a distributed.PartitionedCollection as a
// Binding, letting a variable stay RDD-backed through Lookup instead
// of being materialized by LookupSequence until something actually
// needs a local Sequence.
func CollectionBinding(c distributed.PartitionedCollection) Binding {
	return Binding{Collection: c, IsCollection: true}
}

// Context is the JSONiq dynamic context: a chain of immutable frames,
// each owning its own local bindings and borrowing its parent by
// pointer. Position/Size support context-sensitive expressions inside
// a FLWOR return clause; QueryID/Logger/cancelled are query-wide and
// read straight through the parent chain rather than copied per
// frame, so creating a child frame per tuple
// stays cheap.
type Context struct {
	parent   *Context
	bindings map[string]Binding

	Position int // 1-based; 0 means "not in a positional context"
	Size     int // 0 means "unknown/streaming"

	queryID  uuid.UUID
	logger   *zap.Logger
	cancelCh <-chan struct{}
}

// New creates a root context for a query: a fresh correlation id, the
// given logger, and a cancellation channel the caller closes to
// request early termination. Closing it makes Cancelled report true;
// the iterators in this module do not check Cancelled, so a running
// query is not stopped by it.
func New(logger *zap.Logger, cancelCh <-chan struct{}) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{
		bindings: make(map[string]Binding),
		queryID:  uuid.New(),
		logger:   logger,
		cancelCh: cancelCh,
	}
}

// Child creates a new frame that borrows c as its lexical parent. Used
// by each FLWOR clause that introduces bindings for the current tuple
// (pushes a child context per tuple).
func (c *Context) Child() *Context {
	return &Context{
		parent:   c,
		bindings: make(map[string]Binding),
		Position: c.Position,
		Size:     c.Size,
		queryID:  c.queryID,
		logger:   c.logger,
		cancelCh: c.cancelCh,
	}
}

// Bind sets a variable binding in this frame (not the parent chain).
func (c *Context) Bind(name string, b Binding) {
	c.bindings[name] = b
}

// BindSequence is a convenience wrapper around Bind(name,
// SequenceBinding(seq)).
func (c *Context) BindSequence(name string, seq item.Sequence) {
	c.Bind(name, SequenceBinding(seq))
}

// Lookup resolves a variable by walking the parent chain outward,
// innermost frame first — JSONiq lexical scoping.
func (c *Context) Lookup(name string) (Binding, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// LookupSequence resolves a variable and materializes it to a
// Sequence, draining a cursor binding if necessary. Callers that only
// need a one-shot streaming read should use Lookup + the Cursor
// directly instead, to avoid materializing large distributed-backed
// bindings.
func (c *Context) LookupSequence(name string) (item.Sequence, error) {
	b, ok := c.Lookup(name)
	if !ok {
		return nil, jerrors.NewDynamicError(jerrors.Position{}, "unbound variable $%s", name)
	}
	if b.IsCollection {
		items, err := b.Collection.Collect()
		if err != nil {
			return nil, err
		}
		return item.Sequence(items), nil
	}
	if !b.IsCursor {
		return b.Sequence, nil
	}
	var seq item.Sequence
	for {
		it, ok, err := b.Cursor.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return seq, nil
		}
		seq = append(seq, it)
	}
}

// QueryID returns the correlation id shared by every frame in this
// query's context chain.
func (c *Context) QueryID() uuid.UUID { return c.queryID }

// Logger returns the structured logger shared by every frame.
func (c *Context) Logger() *zap.Logger { return c.logger }

// Cancelled reports whether the query's cancellation channel has been
// closed. Iterators should check this between next() calls on
// potentially long-running sources.
func (c *Context) Cancelled() bool {
	if c.cancelCh == nil {
		return false
	}
	select {
	case <-c.cancelCh:
		return true
	default:
		return false
	}
}

// WithPosition returns a shallow copy of c with Position/Size set,
// used when entering a context-sensitive sub-expression (e.g. a
// predicate step) without introducing a new binding frame.
func (c *Context) WithPosition(pos, size int) *Context {
	cp := *c
	cp.Position = pos
	cp.Size = size
	return &cp
}

// Snapshot returns an immutable deep-enough copy of c suitable for a
// function closure to own: closures own a reference to an
// immutable snapshot of their lexical scope at creation. Because
// frames and their bindings maps are never mutated after Bind calls
// made immediately at frame construction, a shallow struct copy that
// stops borrowing by continuing to point at the same parent chain is
// sufficient — the parent chain itself is never mutated in place.
func (c *Context) Snapshot() *Context {
	cp := *c
	return &cp
}
