package expr

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
)

// buildIf implements "if (cond) then e1 else e2": children are
// [condition, then, else]. Only the selected branch is evaluated.
func buildIf(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	children := node.Children()
	if len(children) != 3 {
		return nil, jerrors.NewDynamicError(node.Pos(), "if expression requires exactly 3 children (condition, then, else)")
	}
	cond, err := Build(children[0], env)
	if err != nil {
		return nil, err
	}
	thenIt, err := Build(children[1], env)
	if err != nil {
		return nil, err
	}
	elseIt, err := Build(children[2], env)
	if err != nil {
		return nil, err
	}
	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		condSeq, err := evalSequence(cond, ctx)
		if err != nil {
			return nil, err
		}
		ebv, err := condSeq.EffectiveBooleanValue()
		if err != nil {
			return nil, err
		}
		branch := elseIt
		if ebv {
			branch = thenIt
		}
		return evalSequence(branch, ctx)
	}), nil
}

// buildSwitch implements "switch (subject) case m return r ... default
// return d". Children layout for KindSwitch: [subject, case1-match,
// case1-result, case2-match, case2-result, ..., default-result]; the
// case count is inferred from the child count. Each case has exactly
// one match expression and one result expression; multi-match cases
// are expected to have been desugared by the parser into repeated
// single matches with the same result expression.
func buildSwitch(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	children := node.Children()
	if len(children) < 4 || len(children)%2 != 0 {
		return nil, jerrors.NewDynamicError(node.Pos(), "switch expression requires a subject, one or more case/result pairs, and a default result")
	}
	subject, err := Build(children[0], env)
	if err != nil {
		return nil, err
	}
	type switchCase struct {
		match, result iterator.RuntimeIterator
	}
	var cases []switchCase
	for i := 1; i+1 < len(children); i += 2 {
		match, err := Build(children[i], env)
		if err != nil {
			return nil, err
		}
		result, err := Build(children[i+1], env)
		if err != nil {
			return nil, err
		}
		cases = append(cases, switchCase{match: match, result: result})
	}
	defaultResult, err := Build(children[len(children)-1], env)
	if err != nil {
		return nil, err
	}
	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		subjectSeq, err := evalSequence(subject, ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range cases {
			matchSeq, err := evalSequence(c.match, ctx)
			if err != nil {
				return nil, err
			}
			if sequencesDeepEqual(subjectSeq, matchSeq) {
				return evalSequence(c.result, ctx)
			}
		}
		return evalSequence(defaultResult, ctx)
	}), nil
}

func sequencesDeepEqual(a, b item.Sequence) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		eq, err := item.Equal(a[i], b[i])
		if err != nil || !eq {
			return false
		}
	}
	return true
}

// buildTypeswitch implements "typeswitch ($v) case kind return
// e ... default return e". Children: [subject, then per-case a "kind"
// string attribute carried on the case node itself together with its
// result expression as its single child, ..., default-result]. The
// case count is inferred from len(children)-2 (subject + default).
func buildTypeswitch(node ast.Node, env Env) (iterator.RuntimeIterator, error) {
	children := node.Children()
	if len(children) < 2 {
		return nil, jerrors.NewDynamicError(node.Pos(), "typeswitch expression requires a subject and a default result")
	}
	subject, err := Build(children[0], env)
	if err != nil {
		return nil, err
	}
	type typeCase struct {
		kind   item.Kind
		result iterator.RuntimeIterator
	}
	var cases []typeCase
	for i := 1; i < len(children)-1; i++ {
		caseNode := children[i]
		kindName, err := requiredStringAttr(caseNode, "kind")
		if err != nil {
			return nil, err
		}
		kind, ok := item.ParseKindName(kindName)
		if !ok {
			return nil, jerrors.NewInvalidArgument(caseNode.Pos(), "unknown typeswitch case kind %q", kindName)
		}
		caseChildren := caseNode.Children()
		if len(caseChildren) != 1 {
			return nil, jerrors.NewDynamicError(caseNode.Pos(), "typeswitch case requires exactly 1 result child")
		}
		result, err := Build(caseChildren[0], env)
		if err != nil {
			return nil, err
		}
		cases = append(cases, typeCase{kind: kind, result: result})
	}
	defaultResult, err := Build(children[len(children)-1], env)
	if err != nil {
		return nil, err
	}
	return newLazyEval(func(ctx interface{}) ([]item.Item, error) {
		subjectSeq, err := evalSequence(subject, ctx)
		if err != nil {
			return nil, err
		}
		if len(subjectSeq) == 1 {
			k := subjectSeq[0].Kind()
			for _, c := range cases {
				if c.kind == k {
					return evalSequence(c.result, ctx)
				}
			}
		}
		return evalSequence(defaultResult, ctx)
	}), nil
}
