package iterator

import (
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
)

// sliceIterator is a minimal local-only RuntimeIterator over a fixed
// slice of items, used across this package's tests.
type sliceIterator struct {
	Guard
	items []item.Item
	pos   int
}

func newSliceIterator(items []item.Item) *sliceIterator {
	return &sliceIterator{items: items, pos: -1}
}

func (s *sliceIterator) Open(ctx interface{}) error { return s.Guard.MarkOpen() }

func (s *sliceIterator) HasNext() (bool, error) {
	if err := s.Guard.RequireOpen(); err != nil {
		return false, err
	}
	return s.pos+1 < len(s.items), nil
}

func (s *sliceIterator) Next() (item.Item, error) {
	if err := s.Guard.RequireOpen(); err != nil {
		return nil, err
	}
	s.pos++
	return s.items[s.pos], nil
}

func (s *sliceIterator) Close() error {
	s.Guard.MarkClosed()
	return nil
}

func (s *sliceIterator) Reset() error {
	if err := s.Guard.MarkReopened(); err != nil {
		return err
	}
	s.pos = -1
	return nil
}

func (s *sliceIterator) IsRDD() bool                                        { return false }
func (s *sliceIterator) GetRDD() (distributed.PartitionedCollection, error) { return nil, nil }
func (s *sliceIterator) IsDataFrame() bool                                  { return false }
func (s *sliceIterator) GetDataFrame() (distributed.DataFrame, error)       { return nil, nil }
func (s *sliceIterator) ExecutionKind() ExecutionKind                      { return ExecutionLocal }

// rddIterator reports IsRDD() true and hands out a fixed collection,
// used to exercise Hybrid's distributed-dispatch path.
type rddIterator struct {
	Guard
	collection distributed.PartitionedCollection
}

func (r *rddIterator) Open(ctx interface{}) error { return r.Guard.MarkOpen() }
func (r *rddIterator) HasNext() (bool, error) {
	return false, nil
}
func (r *rddIterator) Next() (item.Item, error) { return nil, nil }
func (r *rddIterator) Close() error             { r.Guard.MarkClosed(); return nil }
func (r *rddIterator) Reset() error             { return nil }
func (r *rddIterator) IsRDD() bool              { return true }
func (r *rddIterator) GetRDD() (distributed.PartitionedCollection, error) {
	return r.collection, nil
}
func (r *rddIterator) IsDataFrame() bool                            { return false }
func (r *rddIterator) GetDataFrame() (distributed.DataFrame, error) { return nil, nil }
func (r *rddIterator) ExecutionKind() ExecutionKind                 { return ExecutionRDD }
