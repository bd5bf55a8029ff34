package iterator

import (
	"sync"

	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
)

// Buffered wraps a RuntimeIterator and buffers its items so the
// wrapped source can be re-iterated via Reset even though the source
// itself may not support it, ported from janus-datalog's
// BufferedIterator (cache-then-replay). Unlike that version,
// Buffered never hands out the underlying RDD/DataFrame handle — once
// wrapped, re-iteration always replays the buffer, even for a source
// that IsRDD/IsDataFrame.
type Buffered struct {
	mu       sync.Mutex
	source   RuntimeIterator
	buffer   []item.Item
	position int
	consumed bool
	opened   bool
}

// NewBuffered wraps source. Open must still be called on the returned
// Buffered before use.
func NewBuffered(source RuntimeIterator) *Buffered {
	return &Buffered{source: source, position: -1}
}

func (b *Buffered) Open(ctx interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.opened {
		return nil
	}
	b.opened = true
	return b.source.Open(ctx)
}

func (b *Buffered) HasNext() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.position+1 < len(b.buffer) {
		return true, nil
	}
	if b.consumed {
		return false, nil
	}
	hasNext, err := b.source.HasNext()
	if err != nil {
		return false, err
	}
	if !hasNext {
		b.consumed = true
		return false, b.source.Close()
	}
	return true, nil
}

func (b *Buffered) Next() (item.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.position++
	if b.position < len(b.buffer) {
		return b.buffer[b.position], nil
	}
	it, err := b.source.Next()
	if err != nil {
		return nil, err
	}
	b.buffer = append(b.buffer, it)
	return it, nil
}

func (b *Buffered) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.consumed {
		return nil
	}
	b.consumed = true
	return b.source.Close()
}

// Reset rewinds to the start of the buffer; it never fails, since
// buffering is exactly what makes replay always possible.
func (b *Buffered) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.position = -1
	return nil
}

func (b *Buffered) IsRDD() bool                                           { return false }
func (b *Buffered) GetRDD() (distributed.PartitionedCollection, error)    { return nil, nil }
func (b *Buffered) IsDataFrame() bool                                     { return false }
func (b *Buffered) GetDataFrame() (distributed.DataFrame, error)         { return nil, nil }
func (b *Buffered) ExecutionKind() ExecutionKind                         { return ExecutionLocal }
