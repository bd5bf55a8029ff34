package iterator

import (
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/jerrors"
)

// Hybrid is the base for iterators that evaluate locally or delegate
// to a distributed backend depending on their children (a "Hybrid
// iterator"). The decision is made once at Open and cached:
// if any child reports IsRDD() and ToRDD is set, this node switches to distributed
// mode and its Next becomes an IteratorFlow error — consumers must use
// GetRDD instead. A node may have both an RDD and a DataFrame path;
// DataFrame takes precedence when both are available, since a
// DataFrame-capable child implies a typed/columnar plan exists.
type Hybrid struct {
	Guard

	Children []RuntimeIterator

	// LocalNext/LocalHasNext/LocalClose/LocalReset implement this
	// node's local evaluation, used when no child is distributed.
	LocalOpen    func(ctx interface{}, children []RuntimeIterator) error
	LocalHasNext func() (bool, error)
	LocalNext    func() (item.Item, error)
	LocalClose   func() error
	LocalReset   func() error

	// ToRDD builds this node's own partitioned collection from its
	// children's collections, used once distributed mode is selected.
	ToRDD func(children []RuntimeIterator) (distributed.PartitionedCollection, error)
	// ToDataFrame builds this node's DataFrame the same way, preferred
	// over ToRDD when a child is DataFrame-capable.
	ToDataFrame func(children []RuntimeIterator) (distributed.DataFrame, error)

	decided       bool
	kind          ExecutionKind
	rdd           distributed.PartitionedCollection
	df            distributed.DataFrame
	fallbackCount int
}

// Open opens every child, then decides (and caches) whether this node
// runs locally or delegates to a distributed backend.
func (h *Hybrid) Open(ctx interface{}) error {
	if err := h.Guard.MarkOpen(); err != nil {
		return err
	}
	for _, c := range h.Children {
		if err := c.Open(ctx); err != nil {
			return err
		}
	}
	return h.initExecutionKind(ctx)
}

// initExecutionKind computes and caches the dispatch decision exactly
// once, mirroring an initIsRDD()-style cache.
func (h *Hybrid) initExecutionKind(ctx interface{}) error {
	if h.decided {
		return nil
	}
	h.decided = true

	anyDataFrame, anyRDD := false, false
	for _, c := range h.Children {
		if c.IsDataFrame() {
			anyDataFrame = true
		}
		if c.IsRDD() {
			anyRDD = true
		}
	}

	switch {
	case anyDataFrame && h.ToDataFrame != nil:
		df, err := h.ToDataFrame(h.Children)
		if err != nil {
			return err
		}
		h.kind = ExecutionDataFrame
		h.df = df
	case anyRDD && h.ToRDD != nil:
		rdd, err := h.ToRDD(h.Children)
		if err != nil {
			return err
		}
		h.kind = ExecutionRDD
		h.rdd = rdd
	default:
		h.kind = ExecutionLocal
		if h.LocalOpen != nil {
			if err := h.LocalOpen(ctx, h.Children); err != nil {
				return err
			}
		}
	}
	RecordDispatch(h.kind)
	return nil
}

func (h *Hybrid) HasNext() (bool, error) {
	if err := h.Guard.RequireOpen(); err != nil {
		return false, err
	}
	if h.kind != ExecutionLocal {
		return false, jerrors.NewIteratorFlow("HasNext called on a distributed-mode hybrid iterator; use GetRDD/GetDataFrame")
	}
	return h.LocalHasNext()
}

func (h *Hybrid) Next() (item.Item, error) {
	if err := h.Guard.RequireOpen(); err != nil {
		return nil, err
	}
	if h.kind != ExecutionLocal {
		return nil, jerrors.NewIteratorFlow("Next called on a distributed-mode hybrid iterator; use GetRDD/GetDataFrame")
	}
	return h.LocalNext()
}

func (h *Hybrid) Close() error {
	h.Guard.MarkClosed()
	var err error
	for _, c := range h.Children {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if h.kind == ExecutionLocal && h.LocalClose != nil {
		if cerr := h.LocalClose(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (h *Hybrid) Reset() error {
	if h.kind != ExecutionLocal {
		return jerrors.NewNotRewindable("hybrid iterator running in distributed mode cannot reset")
	}
	if h.LocalReset == nil {
		return jerrors.NewNotRewindable("hybrid iterator has no local reset implementation")
	}
	if err := h.Guard.MarkReopened(); err != nil {
		return err
	}
	return h.LocalReset()
}

func (h *Hybrid) IsRDD() bool { return h.kind == ExecutionRDD }

func (h *Hybrid) GetRDD() (distributed.PartitionedCollection, error) {
	if h.kind != ExecutionRDD {
		return nil, jerrors.NewIteratorFlow("GetRDD called but this node is not running in RDD mode")
	}
	return h.rdd, nil
}

func (h *Hybrid) IsDataFrame() bool { return h.kind == ExecutionDataFrame }

func (h *Hybrid) GetDataFrame() (distributed.DataFrame, error) {
	if h.kind != ExecutionDataFrame {
		return nil, jerrors.NewIteratorFlow("GetDataFrame called but this node is not running in DataFrame mode")
	}
	return h.df, nil
}

func (h *Hybrid) ExecutionKind() ExecutionKind { return h.kind }
