package flwor

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/expr"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// letClause implements "let $v := expr": one output tuple per input
// tuple, with $v bound to expr's full (possibly multi-item, possibly
// empty) result sequence — unlike for, let never fans out or drops
// tuples.
type letClause struct {
	Base
	name       string
	valueExpr  ast.Node
	env        expr.Env
	upstream   TupleIterator
	rootCtx    *runtimectx.Context
}

func BuildLet(node ast.Node, env expr.Env, upstream TupleIterator) (TupleIterator, error) {
	name, ok := attrString(node, "name")
	if !ok {
		return nil, jerrors.NewDynamicError(node.Pos(), "let clause missing \"name\" attribute")
	}
	children := node.Children()
	if len(children) != 1 {
		return nil, jerrors.NewDynamicError(node.Pos(), "let clause requires exactly 1 value child")
	}
	bound := append(append([]string{}, upstream.GetVariablesBoundInCurrentFLWORExpression()...), name)
	return &letClause{
		Base: Base{
			BoundVars:    bound,
			Dependencies: upstream.GetVariableDependencies(),
			Projection:   bound,
		},
		name:      name,
		valueExpr: children[0],
		env:       env,
		upstream:  upstream,
	}, nil
}

func (l *letClause) Open(ctx *runtimectx.Context) error {
	l.rootCtx = ctx
	return l.upstream.Open(ctx)
}

func (l *letClause) HasNext() (bool, error) { return l.upstream.HasNext() }

func (l *letClause) Next() (Tuple, error) {
	tup, err := l.upstream.Next()
	if err != nil {
		return nil, err
	}
	it, err := expr.Build(l.valueExpr, l.env)
	if err != nil {
		return nil, err
	}
	evalCtx := tup.ToContext(l.rootCtx)
	if err := it.Open(evalCtx); err != nil {
		return nil, err
	}
	seq, err := iterator.Drain(it)
	if err != nil {
		return nil, err
	}
	return tup.With(l.name, seq), nil
}

func (l *letClause) Close() error { return l.upstream.Close() }
func (l *letClause) Reset() error { return l.upstream.Reset() }
