package iterator

import (
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
)

// Materialized is a RuntimeIterator over an already-computed slice of
// items, local-only. Most expression iterators (arithmetic, logical,
// comparisons, constructors) evaluate to a small, already-in-memory
// result and gain nothing from hand-rolled streaming, so they build a
// Materialized instead of reimplementing HasNext/Next bookkeeping.
type Materialized struct {
	Guard
	items []item.Item
	pos   int
}

// FromSlice wraps items as a RuntimeIterator. Open is still required
// before use, matching every other RuntimeIterator.
func FromSlice(items []item.Item) *Materialized {
	return &Materialized{items: items, pos: -1}
}

func (m *Materialized) Open(ctx interface{}) error { return m.Guard.MarkOpen() }

func (m *Materialized) HasNext() (bool, error) {
	if err := m.Guard.RequireOpen(); err != nil {
		return false, err
	}
	return m.pos+1 < len(m.items), nil
}

func (m *Materialized) Next() (item.Item, error) {
	if err := m.Guard.RequireOpen(); err != nil {
		return nil, err
	}
	m.pos++
	return m.items[m.pos], nil
}

func (m *Materialized) Close() error { m.Guard.MarkClosed(); return nil }

func (m *Materialized) Reset() error {
	if err := m.Guard.MarkReopened(); err != nil {
		return err
	}
	m.pos = -1
	return nil
}

func (m *Materialized) IsRDD() bool                                        { return false }
func (m *Materialized) GetRDD() (distributed.PartitionedCollection, error) { return nil, nil }
func (m *Materialized) IsDataFrame() bool                                  { return false }
func (m *Materialized) GetDataFrame() (distributed.DataFrame, error)       { return nil, nil }
func (m *Materialized) ExecutionKind() ExecutionKind                       { return ExecutionLocal }

// Drain pulls every remaining item from it into a slice, closing it
// once exhausted. Used by clause implementations that need an
// expression's full result before proceeding (e.g. Where's effective
// boolean value, OrderBy's key materialization).
func Drain(it RuntimeIterator) ([]item.Item, error) {
	var out []item.Item
	for {
		has, err := it.HasNext()
		if err != nil {
			return nil, err
		}
		if !has {
			break
		}
		v, err := it.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, it.Close()
}
