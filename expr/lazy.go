package expr

import (
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
)

// lazyEval is the common shape nearly every expression iterator in
// this package uses: compute the whole result once at Open (most
// JSONiq scalar/structural expressions are cheap enough that nothing
// is gained from a hand-rolled incremental Next), then stream it back
// out of an iterator.Materialized.
type lazyEval struct {
	iterator.Guard
	compute func(ctx interface{}) ([]item.Item, error)
	inner   *iterator.Materialized
}

func newLazyEval(compute func(ctx interface{}) ([]item.Item, error)) *lazyEval {
	return &lazyEval{compute: compute}
}

func (l *lazyEval) Open(ctx interface{}) error {
	if err := l.Guard.MarkOpen(); err != nil {
		return err
	}
	items, err := l.compute(ctx)
	if err != nil {
		return err
	}
	l.inner = iterator.FromSlice(items)
	return l.inner.Open(ctx)
}

func (l *lazyEval) HasNext() (bool, error) { return l.inner.HasNext() }
func (l *lazyEval) Next() (item.Item, error) { return l.inner.Next() }

func (l *lazyEval) Close() error {
	l.Guard.MarkClosed()
	if l.inner == nil {
		return nil
	}
	return l.inner.Close()
}

func (l *lazyEval) Reset() error {
	if err := l.Guard.MarkReopened(); err != nil {
		return err
	}
	return l.inner.Reset()
}

func (l *lazyEval) IsRDD() bool                                        { return false }
func (l *lazyEval) GetRDD() (distributed.PartitionedCollection, error) { return nil, nil }
func (l *lazyEval) IsDataFrame() bool                                  { return false }
func (l *lazyEval) GetDataFrame() (distributed.DataFrame, error)       { return nil, nil }
func (l *lazyEval) ExecutionKind() iterator.ExecutionKind              { return iterator.ExecutionLocal }

// evalSequence opens and drains an already built, not yet opened
// child against ctx, returning its full item sequence.
func evalSequence(child iterator.RuntimeIterator, ctx interface{}) (item.Sequence, error) {
	if err := child.Open(ctx); err != nil {
		return nil, err
	}
	items, err := iterator.Drain(child)
	if err != nil {
		return nil, err
	}
	return item.Sequence(items), nil
}
