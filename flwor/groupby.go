package flwor

import (
	"github.com/cespare/xxhash/v2"

	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/expr"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// groupByClause implements "group by $k1 [:= e1], $k2 [:= e2], ...":
// a blocking stage that drains the entire upstream tuple stream,
// partitions tuples into groups sharing the same grouping-key values,
// and emits one output tuple per group with each grouping variable
// bound to its (singleton) key value and every other bound variable
// re-bound to the concatenation of that variable's values across all
// tuples in the group, per group-by semantics.
//
// Composite keys are hashed with xxhash to bucket candidate groups
// cheaply (grounded on janus-datalog's index-bucketing use of xxhash),
// then confirmed with item.Equal across the full key tuple since a
// hash collision must never merge two distinct groups.
type groupByClause struct {
	Base
	keyNames  []string
	keyExprs  []ast.Node
	env       expr.Env
	upstream  TupleIterator
	allNames  []string

	groups []groupResult
	idx    int
	filled bool
}

type groupResult struct {
	keyValues []item.Item
	others    map[string]item.Sequence
}

// BuildGroupBy constructs a group-by clause. node's children are the
// grouping-key expressions in order; each child's "name" attribute is
// the grouping variable that key's value is (re)bound to downstream.
func BuildGroupBy(node ast.Node, env expr.Env, upstream TupleIterator) (TupleIterator, error) {
	children := node.Children()
	if len(children) == 0 {
		return nil, jerrors.NewDynamicError(node.Pos(), "group by clause requires at least 1 key")
	}
	keyNames := make([]string, len(children))
	keyExprs := make([]ast.Node, len(children))
	for i, c := range children {
		name, ok := attrString(c, "name")
		if !ok {
			return nil, jerrors.NewDynamicError(c.Pos(), "group by key missing \"name\" attribute")
		}
		keyExprChildren := c.Children()
		if len(keyExprChildren) != 1 {
			return nil, jerrors.NewDynamicError(c.Pos(), "group by key requires exactly 1 value child")
		}
		keyNames[i] = name
		keyExprs[i] = keyExprChildren[0]
	}
	upstreamVars := upstream.GetVariablesBoundInCurrentFLWORExpression()
	allNames := dedupAppend(upstreamVars, keyNames)
	return &groupByClause{
		Base: Base{
			BoundVars:    allNames,
			Dependencies: upstream.GetVariableDependencies(),
			Projection:   allNames,
		},
		keyNames: keyNames,
		keyExprs: keyExprs,
		env:      env,
		upstream: upstream,
		allNames: allNames,
	}, nil
}

func dedupAppend(base []string, extra []string) []string {
	seen := make(map[string]bool, len(base))
	out := append([]string{}, base...)
	for _, n := range base {
		seen[n] = true
	}
	for _, n := range extra {
		if !seen[n] {
			out = append(out, n)
			seen[n] = true
		}
	}
	return out
}

func (g *groupByClause) Open(ctx *runtimectx.Context) error {
	if err := g.upstream.Open(ctx); err != nil {
		return err
	}
	return g.fill(ctx)
}

func (g *groupByClause) fill(ctx *runtimectx.Context) error {
	g.groups = nil
	g.idx = 0
	buckets := make(map[uint64][]int)
	for {
		has, err := g.upstream.HasNext()
		if err != nil {
			return err
		}
		if !has {
			break
		}
		tup, err := g.upstream.Next()
		if err != nil {
			return err
		}
		keyValues := make([]item.Item, len(g.keyExprs))
		for i, ke := range g.keyExprs {
			it, err := expr.Build(ke, g.env)
			if err != nil {
				return err
			}
			evalCtx := tup.ToContext(ctx)
			if err := it.Open(evalCtx); err != nil {
				return err
			}
			seq, err := iterator.Drain(it)
			if err != nil {
				return err
			}
			if len(seq) != 1 {
				return jerrors.NewDynamicError(jerrors.Position{}, "group by key %q must evaluate to a singleton", g.keyNames[i])
			}
			keyValues[i] = seq[0]
		}
		h := hashKey(keyValues)
		matched := -1
		for _, candidate := range buckets[h] {
			eq, err := keysEqual(g.groups[candidate].keyValues, keyValues)
			if err != nil {
				return err
			}
			if eq {
				matched = candidate
				break
			}
		}
		if matched == -1 {
			others := make(map[string]item.Sequence)
			for name, seq := range tup {
				others[name] = append(item.Sequence{}, seq...)
			}
			g.groups = append(g.groups, groupResult{keyValues: keyValues, others: others})
			buckets[h] = append(buckets[h], len(g.groups)-1)
			matched = len(g.groups) - 1
		} else {
			for name, seq := range tup {
				isKey := false
				for _, kn := range g.keyNames {
					if kn == name {
						isKey = true
						break
					}
				}
				if isKey {
					continue
				}
				g.groups[matched].others[name] = append(g.groups[matched].others[name], seq...)
			}
		}
	}
	g.filled = true
	return nil
}

func hashKey(values []item.Item) uint64 {
	h := xxhash.New()
	for _, v := range values {
		h.Write([]byte(v.Kind().String()))
		h.Write([]byte{0}) // separator, so kind/value text can't collide across a boundary shift
		h.Write([]byte(v.String()))
	}
	return h.Sum64()
}

// keysEqual compares two composite group keys item-by-item. A
// cross-type comparison that item.Equal itself rejects (e.g. a number
// against a string) is propagated rather than treated as "not equal",
// since silently starting a new group would hide a type error the
// caller must see.
func keysEqual(a, b []item.Item) (bool, error) {
	if len(a) != len(b) {
		return false, nil
	}
	for i := range a {
		eq, err := item.Equal(a[i], b[i])
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

func (g *groupByClause) HasNext() (bool, error) { return g.idx < len(g.groups), nil }

func (g *groupByClause) Next() (Tuple, error) {
	if g.idx >= len(g.groups) {
		return nil, jerrors.NewIteratorFlow("Next called with no group available")
	}
	grp := g.groups[g.idx]
	g.idx++
	out := make(Tuple, len(g.allNames))
	for name, seq := range grp.others {
		out[name] = seq
	}
	for i, name := range g.keyNames {
		out[name] = item.Sequence{grp.keyValues[i]}
	}
	return out, nil
}

func (g *groupByClause) Close() error { return g.upstream.Close() }

func (g *groupByClause) Reset() error {
	g.idx = 0
	return nil
}
