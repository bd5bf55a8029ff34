package expr

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
)

// buildLogical implements short-circuit and/or over
// each operand's effective boolean value.
func buildLogical(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	op, err := requiredStringAttr(node, "op")
	if err != nil {
		return nil, err
	}
	if op != "and" && op != "or" {
		return nil, jerrors.NewInvalidArgument(node.Pos(), "unknown logical operator %q", op)
	}
	children := node.Children()
	if len(children) == 0 {
		return nil, jerrors.NewDynamicError(node.Pos(), "logical expression requires at least one operand")
	}
	operands := make([]iterator.RuntimeIterator, len(children))
	for i, c := range children {
		it, err := Build(c, env)
		if err != nil {
			return nil, err
		}
		operands[i] = it
	}
	shortCircuit := false // "and" short-circuits on a false operand
	if op == "or" {
		shortCircuit = true // "or" short-circuits on a true operand
	}
	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		result := !shortCircuit
		for _, operand := range operands {
			seq, err := evalSequence(operand, ctx)
			if err != nil {
				return nil, err
			}
			ebv, err := seq.EffectiveBooleanValue()
			if err != nil {
				return nil, err
			}
			if ebv == shortCircuit {
				return []item.Item{item.NewBoolean(shortCircuit)}, nil
			}
			result = ebv
		}
		return []item.Item{item.NewBoolean(result)}, nil
	}), nil
}
