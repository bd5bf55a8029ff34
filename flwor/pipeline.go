package flwor

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/expr"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// emptySource is the root of every FLWOR pipeline: a single empty
// tuple, so the first clause (almost always a "for") has something to
// iterate over exactly once.
type emptySource struct {
	done bool
}

func (e *emptySource) Open(*runtimectx.Context) error { e.done = false; return nil }
func (e *emptySource) HasNext() (bool, error)         { return !e.done, nil }
func (e *emptySource) Next() (Tuple, error) {
	if e.done {
		return nil, jerrors.NewIteratorFlow("Next called with no tuple available")
	}
	e.done = true
	return Tuple{}, nil
}
func (e *emptySource) Close() error { return nil }
func (e *emptySource) Reset() error { e.done = false; return nil }

func (e *emptySource) GetVariablesBoundInCurrentFLWORExpression() []string   { return nil }
func (e *emptySource) GetVariableDependencies() map[string]ast.DependencyKind { return nil }
func (e *emptySource) GetProjection() []string                               { return nil }

func (e *emptySource) IsRDD() bool { return false }
func (e *emptySource) GetRDD() (distributed.PartitionedCollection, error) {
	return nil, jerrors.NewIteratorFlow("GetRDD called but this stage is not running in RDD mode")
}
func (e *emptySource) IsDataFrame() bool { return false }
func (e *emptySource) GetDataFrame() (distributed.DataFrame, error) {
	return nil, jerrors.NewIteratorFlow("GetDataFrame called but this stage is not running in DataFrame mode")
}

// BuildPipeline assembles a FLWOR expression's full clause chain into
// a single RuntimeIterator: node's children are the clause nodes in
// source order, the last of which must be a KindReturnClause. This is
// what expr.BuildFLWOR is wired to at package init time (see wire.go).
func BuildPipeline(node ast.Node, env expr.Env) (iterator.RuntimeIterator, error) {
	children := node.Children()
	if len(children) == 0 {
		return nil, jerrors.NewDynamicError(node.Pos(), "FLWOR expression requires at least a return clause")
	}
	var chain TupleIterator = &emptySource{}
	for _, clause := range children[:len(children)-1] {
		var err error
		chain, err = buildClause(clause, env, chain)
		if err != nil {
			return nil, err
		}
	}
	last := children[len(children)-1]
	if last.Kind() != ast.KindReturnClause {
		return nil, jerrors.NewDynamicError(last.Pos(), "FLWOR expression's final clause must be a return clause")
	}
	return BuildReturn(last, env, chain)
}

func buildClause(node ast.Node, env expr.Env, upstream TupleIterator) (TupleIterator, error) {
	switch node.Kind() {
	case ast.KindForClause:
		return BuildFor(node, env, upstream)
	case ast.KindLetClause:
		return BuildLet(node, env, upstream)
	case ast.KindWhereClause:
		return BuildWhere(node, env, upstream)
	case ast.KindGroupByClause:
		return BuildGroupBy(node, env, upstream)
	case ast.KindOrderByClause:
		return BuildOrderBy(node, env, upstream)
	case ast.KindCountClause:
		return BuildCount(node, upstream)
	default:
		return nil, jerrors.NewDynamicError(node.Pos(), "unexpected clause kind %v in FLWOR pipeline", node.Kind())
	}
}
