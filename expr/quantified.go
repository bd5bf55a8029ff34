package expr

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// quantifiedClause is one "$var in expr" binding of a some/every test.
type quantifiedClause struct {
	name   string
	source iterator.RuntimeIterator
}

// buildQuantified implements "some $v1 in e1, ... satisfies
// test" / "every ...": existential or universal quantification over
// the cartesian product of each clause's source sequence, with
// short-circuit evaluation. Children: [clause1-source, clause2-source,
// ..., test]; each clause source's bound variable name is carried on
// that child node's own "name" attribute, and the "universal" bool
// attribute on node selects every (true) vs. some (false).
func buildQuantified(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	children := node.Children()
	if len(children) < 2 {
		return nil, jerrors.NewDynamicError(node.Pos(), "quantified expression requires at least one binding clause and a test")
	}
	universal, _ := boolAttr(node, "universal")

	var clauses []quantifiedClause
	for _, c := range children[:len(children)-1] {
		name, err := requiredStringAttr(c, "name")
		if err != nil {
			return nil, err
		}
		srcChildren := c.Children()
		if len(srcChildren) != 1 {
			return nil, jerrors.NewDynamicError(c.Pos(), "quantified binding clause requires exactly 1 source child")
		}
		src, err := Build(srcChildren[0], env)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, quantifiedClause{name: name, source: src})
	}
	testNode := children[len(children)-1]
	if _, err := Build(testNode, env); err != nil {
		return nil, err
	}

	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		rc, ok := ctx.(*runtimectx.Context)
		if !ok {
			return nil, jerrors.NewDynamicError(node.Pos(), "quantified expression requires a runtime context")
		}
		sequences := make([]item.Sequence, len(clauses))
		for i, c := range clauses {
			seq, err := evalSequence(c.source, ctx)
			if err != nil {
				return nil, err
			}
			sequences[i] = seq
		}
		result, err := quantifyCartesian(rc, clauses, sequences, 0, env, testNode, universal)
		if err != nil {
			return nil, err
		}
		return []item.Item{item.NewBoolean(result)}, nil
	}), nil
}

// quantifyCartesian recursively binds one clause variable per level,
// short-circuiting as soon as the outcome is determined: "some"
// returns true on the first satisfying combination, "every" returns
// false on the first failing one. The test is built afresh for each
// combination, since a built iterator is single-use.
func quantifyCartesian(rc *runtimectx.Context, clauses []quantifiedClause, sequences []item.Sequence, depth int, env Env, testNode ast.Node, universal bool) (bool, error) {
	if depth == len(clauses) {
		test, err := Build(testNode, env)
		if err != nil {
			return false, err
		}
		v, ok, err := singletonOf(test, rc, testNode.Pos())
		if err != nil {
			return false, err
		}
		if !ok {
			return false, jerrors.NewDynamicError(testNode.Pos(), "quantified test must produce a singleton")
		}
		seq := item.Sequence{v}
		return seq.EffectiveBooleanValue()
	}
	for _, v := range sequences[depth] {
		child := rc.Child()
		child.BindSequence(clauses[depth].name, item.Sequence{v})
		result, err := quantifyCartesian(child, clauses, sequences, depth+1, env, testNode, universal)
		if err != nil {
			return false, err
		}
		if universal && !result {
			return false, nil
		}
		if !universal && result {
			return true, nil
		}
	}
	return universal, nil
}

func boolAttr(node ast.Node, key string) (bool, bool) {
	g, ok := node.(attrHolder)
	if !ok {
		return false, false
	}
	v, ok := g.Attr(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}
