package flwor

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/expr"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// forClause implements "for $v [at $p] in expr [allowing empty]": for
// each upstream tuple, evaluates expr against that tuple's bindings
// and emits one downstream tuple per resulting item, binding $v to a
// one-item sequence each time and, when an "at" position variable was
// given, binding it to that item's 1-based position within expr's
// result — the one construct in a FLWOR pipeline that can multiply
// the tuple stream.
type forClause struct {
	Base
	pos           ast.Position
	name          string
	posVar        string
	allowingEmpty bool
	sourceExpr    ast.Node
	env           expr.Env
	upstream      TupleIterator

	current    Tuple
	currentSeq item.Sequence
	idx        int
	hasCurrent bool
	opened     bool
	rootCtx    *runtimectx.Context
}

// BuildFor constructs a for-clause TupleIterator. node carries the
// bound variable's name ("name" attribute) and whether "allowing
// empty" was specified ("allowingEmpty" bool attribute); its single
// child is the source expression.
func BuildFor(node ast.Node, env expr.Env, upstream TupleIterator) (TupleIterator, error) {
	name, ok := attrString(node, "name")
	if !ok {
		return nil, jerrors.NewDynamicError(node.Pos(), "for clause missing \"name\" attribute")
	}
	allowingEmpty, _ := attrBool(node, "allowingEmpty")
	posVar, _ := attrString(node, "posVar")
	children := node.Children()
	if len(children) != 1 {
		return nil, jerrors.NewDynamicError(node.Pos(), "for clause requires exactly 1 source child")
	}
	bound := append(append([]string{}, upstream.GetVariablesBoundInCurrentFLWORExpression()...), name)
	if posVar != "" {
		bound = append(bound, posVar)
	}
	return &forClause{
		Base: Base{
			BoundVars:    bound,
			Dependencies: upstream.GetVariableDependencies(),
			Projection:   bound,
		},
		pos:           node.Pos(),
		name:          name,
		posVar:        posVar,
		allowingEmpty: allowingEmpty,
		sourceExpr:    children[0],
		env:           env,
		upstream:      upstream,
	}, nil
}

func (f *forClause) Open(ctx *runtimectx.Context) error {
	f.rootCtx = ctx
	f.opened = true
	return f.upstream.Open(ctx)
}

// advance pulls the next upstream tuple and evaluates the source
// expression against it, looping past upstream tuples whose source
// sequence is empty and allowingEmpty is false.
func (f *forClause) advance() (bool, error) {
	for {
		has, err := f.upstream.HasNext()
		if err != nil || !has {
			return false, err
		}
		tup, err := f.upstream.Next()
		if err != nil {
			return false, err
		}
		it, err := expr.Build(f.sourceExpr, f.env)
		if err != nil {
			return false, err
		}
		evalCtx := tup.ToContext(f.rootCtx)
		if err := it.Open(evalCtx); err != nil {
			return false, err
		}
		seq, err := iterator.Drain(it)
		if err != nil {
			return false, err
		}
		if len(seq) == 0 {
			if f.allowingEmpty {
				f.current = tup
				f.currentSeq = item.Sequence{item.NullValue}
				f.idx = 0
				return true, nil
			}
			continue
		}
		f.current = tup
		f.currentSeq = seq
		f.idx = 0
		return true, nil
	}
}

func (f *forClause) HasNext() (bool, error) {
	if f.hasCurrent {
		return true, nil
	}
	for f.currentSeq == nil || f.idx >= len(f.currentSeq) {
		ok, err := f.advance()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	f.hasCurrent = true
	return true, nil
}

func (f *forClause) Next() (Tuple, error) {
	has, err := f.HasNext()
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, jerrors.NewIteratorFlow("Next called with no tuple available")
	}
	v := f.currentSeq[f.idx]
	position := f.idx + 1
	f.idx++
	f.hasCurrent = false
	out := f.current.With(f.name, item.Sequence{v})
	if f.posVar != "" {
		out = out.With(f.posVar, item.Sequence{item.NewInteger(int64(position))})
	}
	return out, nil
}

func (f *forClause) Close() error { return f.upstream.Close() }

func (f *forClause) Reset() error {
	f.current = nil
	f.currentSeq = nil
	f.idx = 0
	f.hasCurrent = false
	return f.upstream.Reset()
}
