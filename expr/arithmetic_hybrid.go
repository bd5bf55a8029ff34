package expr

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
)

// arithmeticHybrid wraps iterator.Hybrid to capture the Open-time ctx
// for ToRDD's use: Hybrid's own ToRDD/ToDataFrame hooks don't receive
// ctx (the dispatch decision is made once, right after Open opens
// every child), but evaluating the non-distributed operand still
// needs it.
type arithmeticHybrid struct {
	iterator.Hybrid
	ctx interface{}
}

func (a *arithmeticHybrid) Open(ctx interface{}) error {
	a.ctx = ctx
	return a.Hybrid.Open(ctx)
}

// buildArithmeticHybrid is buildArithmetic's distributed-aware sibling,
// used only for an arithmetic node whose static ExecutionMode resolved
// to ast.ModeRDD: the side that reports IsRDD() stays a
// distributed.PartitionedCollection throughout, mapped over with the
// other (necessarily local) side's singleton value baked in, rather
// than materializing the whole collection through a per-item pull
// loop the way the plain local path would.
func buildArithmeticHybrid(node ast.Node, op string, left, right iterator.RuntimeIterator) iterator.RuntimeIterator {
	ah := &arithmeticHybrid{}
	ah.Children = []iterator.RuntimeIterator{left, right}

	var localIter *iterator.Materialized
	ah.LocalOpen = func(ctx interface{}, kids []iterator.RuntimeIterator) error {
		lv, lOK, err := singletonFromOpened(kids[0], node.Pos())
		if err != nil {
			return err
		}
		rv, rOK, err := singletonFromOpened(kids[1], node.Pos())
		if err != nil {
			return err
		}
		var items []item.Item
		if lOK && rOK {
			result, err := applyArithmetic(node.Pos(), op, lv, rv)
			if err != nil {
				return err
			}
			items = []item.Item{result}
		}
		localIter = iterator.FromSlice(items)
		return localIter.Open(ctx)
	}
	ah.LocalHasNext = func() (bool, error) { return localIter.HasNext() }
	ah.LocalNext = func() (item.Item, error) { return localIter.Next() }
	ah.LocalClose = func() error {
		if localIter == nil {
			return nil
		}
		return localIter.Close()
	}
	ah.LocalReset = func() error { return localIter.Reset() }

	ah.ToRDD = func(kids []iterator.RuntimeIterator) (distributed.PartitionedCollection, error) {
		rddIdx := -1
		for i, c := range kids {
			if c.IsRDD() {
				rddIdx = i
				break
			}
		}
		if rddIdx == -1 {
			return nil, jerrors.NewIteratorFlow("arithmetic ToRDD called but no operand is RDD-backed")
		}
		coll, err := kids[rddIdx].GetRDD()
		if err != nil {
			return nil, err
		}
		otherIdx := 1 - rddIdx
		scalar, ok, err := singletonFromOpened(kids[otherIdx], node.Pos())
		if err != nil {
			return nil, err
		}
		if !ok {
			return coll.Filter(func(item.Item) (bool, error) { return false, nil })
		}
		leftIsRDD := rddIdx == 0
		return coll.Map(func(v item.Item) (item.Item, error) {
			if leftIsRDD {
				return applyArithmetic(node.Pos(), op, v, scalar)
			}
			return applyArithmetic(node.Pos(), op, scalar, v)
		})
	}

	return ah
}

// singletonFromOpened drains an already-Open'd iterator (Hybrid.Open
// opens every child itself before dispatch is decided, so the
// singletonOf helper's own Open call would double-open) and checks it
// yielded at most one item.
func singletonFromOpened(it iterator.RuntimeIterator, pos ast.Position) (item.Item, bool, error) {
	items, err := iterator.Drain(it)
	if err != nil {
		return nil, false, err
	}
	switch len(items) {
	case 0:
		return nil, false, nil
	case 1:
		return items[0], true, nil
	default:
		return nil, false, jerrors.NewDynamicError(pos, "operator requires a singleton operand, got %d items", len(items))
	}
}
