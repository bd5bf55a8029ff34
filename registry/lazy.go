package registry

import (
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
)

// computed is this package's own copy of expr's lazyEval shape: most
// built-ins compute their whole result once at Open and stream it back
// via iterator.Materialized. It can't reuse expr.lazyEval directly
// since that type is unexported in the expr package.
type computed struct {
	iterator.Guard
	compute func(ctx interface{}) ([]item.Item, error)
	inner   *iterator.Materialized
}

func newComputed(compute func(ctx interface{}) ([]item.Item, error)) *computed {
	return &computed{compute: compute}
}

func (c *computed) Open(ctx interface{}) error {
	if err := c.Guard.MarkOpen(); err != nil {
		return err
	}
	items, err := c.compute(ctx)
	if err != nil {
		return err
	}
	c.inner = iterator.FromSlice(items)
	return c.inner.Open(ctx)
}

func (c *computed) HasNext() (bool, error)   { return c.inner.HasNext() }
func (c *computed) Next() (item.Item, error) { return c.inner.Next() }

func (c *computed) Close() error {
	c.Guard.MarkClosed()
	if c.inner == nil {
		return nil
	}
	return c.inner.Close()
}

func (c *computed) Reset() error {
	if err := c.Guard.MarkReopened(); err != nil {
		return err
	}
	return c.inner.Reset()
}

func (c *computed) IsRDD() bool                                        { return false }
func (c *computed) GetRDD() (distributed.PartitionedCollection, error) { return nil, nil }
func (c *computed) IsDataFrame() bool                                  { return false }
func (c *computed) GetDataFrame() (distributed.DataFrame, error)       { return nil, nil }
func (c *computed) ExecutionKind() iterator.ExecutionKind              { return iterator.ExecutionLocal }

// singleton opens arg against ctx and requires exactly zero or one
// result item.
func singleton(arg iterator.RuntimeIterator, ctx interface{}) (item.Item, bool, error) {
	if err := arg.Open(ctx); err != nil {
		return nil, false, err
	}
	items, err := iterator.Drain(arg)
	if err != nil {
		return nil, false, err
	}
	switch len(items) {
	case 0:
		return nil, false, nil
	case 1:
		return items[0], true, nil
	default:
		return nil, false, jerrors.NewDynamicError(jerrors.Position{}, "function argument must be a singleton, got %d items", len(items))
	}
}

// fullSequence opens arg against ctx and drains its entire result.
func fullSequence(arg iterator.RuntimeIterator, ctx interface{}) (item.Sequence, error) {
	if err := arg.Open(ctx); err != nil {
		return nil, err
	}
	items, err := iterator.Drain(arg)
	if err != nil {
		return nil, err
	}
	return item.Sequence(items), nil
}
