// Package flwor implements the FLWOR pipeline: TupleIterator, the
// streaming contract each clause (For/Let/Where/GroupBy/OrderBy/Count/
// Return) implements over tuples of variable bindings, generalizing
// janus-datalog's Relation/Tuple pair (datalog/executor/relation.go) from
// Datalog symbol bindings to JSONiq variable bindings.
package flwor

import (
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/distributed"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/jerrors"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

// Tuple is one FLWOR binding tuple: a map from variable name to its
// bound sequence, mirroring janus-datalog's query.Tuple (a map from
// Symbol to value) generalized from single Datalog values to JSONiq
// sequences since a variable may be bound to more than one item.
type Tuple map[string]item.Sequence

// Clone returns a shallow copy of t — cheap, since item.Sequence
// values are themselves treated as immutable once bound.
func (t Tuple) Clone() Tuple {
	out := make(Tuple, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// With returns a copy of t with name bound to seq, leaving t
// unmodified — used by For/Let to extend the tuple stream without
// mutating a tuple another goroutine/iterator may still be reading.
func (t Tuple) With(name string, seq item.Sequence) Tuple {
	out := t.Clone()
	out[name] = seq
	return out
}

// ToContext binds every variable in t into a child runtimectx.Context
// of parent, the bridge FLWOR clauses use before evaluating an
// expr-package iterator against the tuple's bindings.
func (t Tuple) ToContext(parent *runtimectx.Context) *runtimectx.Context {
	child := parent.Child()
	for name, seq := range t {
		child.BindSequence(name, seq)
	}
	return child
}

// TupleIterator is the FLWOR pipeline's streaming contract: like
// iterator.RuntimeIterator but over Tuple instead of item.Item, plus
// the static analysis accessors the variable-dependency tracking
// and projection mechanism need: which variables this stage's
// output tuples are bound for, how a downstream clause depends on
// each, and the resulting projection (which upstream bindings can be
// dropped).
type TupleIterator interface {
	Open(ctx *runtimectx.Context) error
	HasNext() (bool, error)
	Next() (Tuple, error)
	Close() error
	Reset() error

	// GetVariablesBoundInCurrentFLWORExpression returns the variable
	// names this stage (and every stage before it in the same FLWOR
	// expression) binds.
	GetVariablesBoundInCurrentFLWORExpression() []string

	// GetVariableDependencies returns, for each upstream variable,
	// how this stage (and everything downstream of it that has
	// already been analyzed) uses it.
	GetVariableDependencies() map[string]ast.DependencyKind

	// GetProjection returns the set of variable names that must
	// survive into this stage's output tuples — the complement is
	// safe to drop.
	GetProjection() []string

	// IsRDD/GetRDD and IsDataFrame/GetDataFrame mirror
	// iterator.RuntimeIterator's hybrid escape hatch at the tuple
	// level: a clause that can stay on a distributed backend instead
	// of pulling one tuple at a time reports itself here, and a
	// downstream clause (GroupBy/OrderBy) that knows how to keep
	// working against that backend checks these before falling back
	// to HasNext/Next.
	IsRDD() bool
	GetRDD() (distributed.PartitionedCollection, error)
	IsDataFrame() bool
	GetDataFrame() (distributed.DataFrame, error)
}

// Base is embeddable by concrete clause implementations to supply the
// bookkeeping every TupleIterator needs in common: the bound-variable
// list and the merged dependency map, both usually computed once at
// construction time from the clause's own AST node plus its child's
// accessors.
type Base struct {
	BoundVars    []string
	Dependencies map[string]ast.DependencyKind
	Projection   []string
}

func (b *Base) GetVariablesBoundInCurrentFLWORExpression() []string { return b.BoundVars }

func (b *Base) GetVariableDependencies() map[string]ast.DependencyKind { return b.Dependencies }

func (b *Base) GetProjection() []string { return b.Projection }

// IsRDD/GetRDD/IsDataFrame/GetDataFrame default to "not distributed":
// plain clauses (For/Let/Where/Count) never originate a distributed
// collection themselves, they just pass a tuple stream through. A
// clause that does bridge to a distributed backend (dataFrameSource,
// and orderByClause when it ran against one) overrides these.
func (b *Base) IsRDD() bool { return false }

func (b *Base) GetRDD() (distributed.PartitionedCollection, error) {
	return nil, jerrors.NewIteratorFlow("GetRDD called but this stage is not running in RDD mode")
}

func (b *Base) IsDataFrame() bool { return false }

func (b *Base) GetDataFrame() (distributed.DataFrame, error) {
	return nil, jerrors.NewIteratorFlow("GetDataFrame called but this stage is not running in DataFrame mode")
}

// MergeDependencies combines a child's dependency map with this
// clause's own uses of upstream variables, applying the
// conflict-resolution-to-DepFull rule via ast.DependencyKind.Merge.
func MergeDependencies(child map[string]ast.DependencyKind, own map[string]ast.DependencyKind) map[string]ast.DependencyKind {
	out := make(map[string]ast.DependencyKind, len(child)+len(own))
	for k, v := range child {
		out[k] = v
	}
	for k, v := range own {
		out[k] = out[k].Merge(v)
	}
	return out
}
