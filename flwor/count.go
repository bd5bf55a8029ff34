package flwor

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// countClause implements "count $v": binds $v to the 1-based position
// of each tuple within the current tuple stream. Position is
// assigned sequentially as tuples are pulled, so count only gives a
// stable position when nothing reorders the stream afterward.
type countClause struct {
	Base
	name     string
	upstream TupleIterator
	pos      int64
}

func BuildCount(node ast.Node, upstream TupleIterator) (TupleIterator, error) {
	name, ok := attrString(node, "name")
	if !ok {
		return nil, jerrors.NewDynamicError(node.Pos(), "count clause missing \"name\" attribute")
	}
	bound := append(append([]string{}, upstream.GetVariablesBoundInCurrentFLWORExpression()...), name)
	return &countClause{
		Base: Base{
			BoundVars:    bound,
			Dependencies: upstream.GetVariableDependencies(),
			Projection:   bound,
		},
		name:     name,
		upstream: upstream,
	}, nil
}

func (c *countClause) Open(ctx *runtimectx.Context) error {
	c.pos = 0
	return c.upstream.Open(ctx)
}

func (c *countClause) HasNext() (bool, error) { return c.upstream.HasNext() }

func (c *countClause) Next() (Tuple, error) {
	tup, err := c.upstream.Next()
	if err != nil {
		return nil, err
	}
	c.pos++
	return tup.With(c.name, item.Sequence{item.NewInteger(c.pos)}), nil
}

func (c *countClause) Close() error { return c.upstream.Close() }

func (c *countClause) Reset() error {
	c.pos = 0
	return c.upstream.Reset()
}
