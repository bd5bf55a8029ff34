package expr

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// varRefIterator resolves a variable name against the runtimectx.Context
// supplied at Open, walking the lexical parent chain (a "parent
// pointer" rule) via Context.Lookup. A collection-backed binding
// (runtimectx.CollectionBinding) is reported honestly through
// IsRDD/GetRDD instead of being silently materialized, so a Hybrid
// iterator built over a variable reference can stay on its
// distributed backend.
type varRefIterator struct {
	iterator.Guard
	name string
	pos  ast.Position

	coll   distributed.PartitionedCollection
	isColl bool
	inner  *iterator.Materialized
}

func buildVarRef(node ast.Node) (iterator.RuntimeIterator, error) {
	g, ok := node.(interface{ Attr(string) (interface{}, bool) })
	if !ok {
		return nil, jerrors.NewDynamicError(node.Pos(), "var-ref node does not expose attributes")
	}
	v, ok := g.Attr("name")
	if !ok {
		return nil, jerrors.NewDynamicError(node.Pos(), "var-ref node missing \"name\" attribute")
	}
	name, ok := v.(string)
	if !ok {
		return nil, jerrors.NewDynamicError(node.Pos(), "var-ref node's \"name\" attribute is not a string")
	}
	return &varRefIterator{name: name, pos: node.Pos()}, nil
}

func (v *varRefIterator) Open(ctx interface{}) error {
	if err := v.Guard.MarkOpen(); err != nil {
		return err
	}
	rc, ok := ctx.(*runtimectx.Context)
	if !ok {
		return jerrors.NewDynamicError(v.pos, "var-ref requires a *runtimectx.Context")
	}
	b, ok := rc.Lookup(v.name)
	if !ok {
		return jerrors.NewDynamicError(v.pos, "unbound variable $%s", v.name)
	}
	if b.IsCollection {
		v.coll = b.Collection
		v.isColl = true
		v.inner = iterator.FromSlice(nil)
		return v.inner.Open(ctx)
	}
	seq, err := rc.LookupSequence(v.name)
	if err != nil {
		return err
	}
	v.inner = iterator.FromSlice([]item.Item(seq))
	return v.inner.Open(ctx)
}

func (v *varRefIterator) HasNext() (bool, error) {
	if v.isColl {
		return false, jerrors.NewIteratorFlow("HasNext called on an RDD-backed var-ref; use GetRDD")
	}
	return v.inner.HasNext()
}

func (v *varRefIterator) Next() (item.Item, error) {
	if v.isColl {
		return nil, jerrors.NewIteratorFlow("Next called on an RDD-backed var-ref; use GetRDD")
	}
	return v.inner.Next()
}

func (v *varRefIterator) Close() error {
	v.Guard.MarkClosed()
	if v.inner == nil {
		return nil
	}
	return v.inner.Close()
}

func (v *varRefIterator) Reset() error {
	if err := v.Guard.MarkReopened(); err != nil {
		return err
	}
	return v.inner.Reset()
}

func (v *varRefIterator) IsRDD() bool { return v.isColl }

func (v *varRefIterator) GetRDD() (distributed.PartitionedCollection, error) {
	if !v.isColl {
		return nil, jerrors.NewIteratorFlow("GetRDD called but this var-ref is not RDD-backed")
	}
	return v.coll, nil
}

func (v *varRefIterator) IsDataFrame() bool { return false }

func (v *varRefIterator) GetDataFrame() (distributed.DataFrame, error) {
	return nil, jerrors.NewIteratorFlow("GetDataFrame called but this var-ref is not DataFrame-backed")
}
