// Package ast describes the shape of expression nodes the core
// consumes. The lexer/parser and static analysis passes that produce
// and annotate this tree are external collaborators, out of scope
// here; this package only fixes the node contract the core reads —
// kind, children, source metadata, execution-mode annotation, and
// variable-dependency map — so that iterator construction (package
// expr) and static analysis results can be represented without the
// core mutating the tree it's handed.
package ast

import "github.com/dataflowql/jsoniq-core/jerrors"

// Kind tags the expression node variant. The core dispatches on Kind
// when building a RuntimeIterator/TupleIterator for a node — one
// dispatch function per traversal, no visitor/base-class scaffolding.
type Kind int

const (
	KindLiteral Kind = iota
	KindVarRef
	KindArithmetic
	KindValueComparison
	KindGeneralComparison
	KindLogical
	KindRange
	KindSequenceConstructor
	KindArrayConstructor
	KindObjectConstructor
	KindPathStep
	KindPredicateStep
	KindIf
	KindSwitch
	KindTypeswitch
	KindQuantified
	KindFunctionCall
	KindFunctionItemConstructor
	KindFLWOR
	KindForClause
	KindLetClause
	KindWhereClause
	KindGroupByClause
	KindOrderByClause
	KindCountClause
	KindReturnClause
)

var kindNames = map[Kind]string{
	KindLiteral:                 "literal",
	KindVarRef:                  "varRef",
	KindArithmetic:              "arithmetic",
	KindValueComparison:         "valueComparison",
	KindGeneralComparison:       "generalComparison",
	KindLogical:                 "logical",
	KindRange:                   "range",
	KindSequenceConstructor:     "sequenceConstructor",
	KindArrayConstructor:        "arrayConstructor",
	KindObjectConstructor:       "objectConstructor",
	KindPathStep:                "pathStep",
	KindPredicateStep:           "predicateStep",
	KindIf:                      "if",
	KindSwitch:                  "switch",
	KindTypeswitch:              "typeswitch",
	KindQuantified:              "quantified",
	KindFunctionCall:            "functionCall",
	KindFunctionItemConstructor: "functionItemConstructor",
	KindFLWOR:                   "flwor",
	KindForClause:               "for",
	KindLetClause:               "let",
	KindWhereClause:             "where",
	KindGroupByClause:           "groupBy",
	KindOrderByClause:           "orderBy",
	KindCountClause:             "count",
	KindReturnClause:            "return",
}

// String names a node kind by what it does, used by the annotations
// package's Explain renderer and by error messages.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ExecutionMode is the static execution-mode annotation a node
// carries, computed by the (out-of-scope) static analysis pass. The
// core reads it; it never mutates it.
type ExecutionMode int

const (
	ModeUnset ExecutionMode = iota
	ModeLocal
	ModeRDD
	ModeDataFrame
)

// DependencyKind classifies how a downstream clause uses an upstream
// variable — used by FLWOR projection (TupleIterator.GetProjection).
type DependencyKind int

const (
	DepNone DependencyKind = iota
	DepFull
	DepCount
	DepSum
)

// Merge conflict-resolves two dependency kinds the way
// TupleIterator.GetProjection must: any two different *used* kinds
// resolve to DepFull, since a variable used in two incompatible ways
// must be materialized in full.
func (d DependencyKind) Merge(other DependencyKind) DependencyKind {
	if d == DepNone {
		return other
	}
	if other == DepNone {
		return d
	}
	if d == other {
		return d
	}
	return DepFull
}

// Position is the source metadata every node carries: file, line,
// column, and the node's own text fragment, reused directly by
// jerrors when an iterator surfaces an error for this node.
type Position = jerrors.Position

// Node is the expression-node contract the core reads. Concrete
// parser implementations satisfy it; this package does not provide
// one (parsing is out of scope), only the interface plus a Generic
// node the core's own tests build trees with.
type Node interface {
	Kind() Kind
	Children() []Node
	Pos() Position
	Mode() ExecutionMode
	Dependencies() map[string]DependencyKind
}

// Generic is a minimal, directly-constructible Node used by the
// core's own tests and by hand-built trees (e.g. function bodies
// captured in a closure). Real parser output need not use this type,
// only satisfy Node.
type Generic struct {
	NodeKind  Kind
	Kids      []Node
	Position  Position
	ExecMode  ExecutionMode
	DepMap    map[string]DependencyKind
	Attrs     map[string]interface{}
}

func (g *Generic) Kind() Kind                            { return g.NodeKind }
func (g *Generic) Children() []Node                       { return g.Kids }
func (g *Generic) Pos() Position                          { return g.Position }
func (g *Generic) Mode() ExecutionMode                    { return g.ExecMode }
func (g *Generic) Dependencies() map[string]DependencyKind { return g.DepMap }

// Attr returns a named side-table attribute (e.g. the literal value,
// the variable name, the arithmetic operator) attached to this node.
// Using a side table instead of per-Kind struct fields keeps Node a
// single interface with no subclass hierarchy.
func (g *Generic) Attr(name string) (interface{}, bool) {
	v, ok := g.Attrs[name]
	return v, ok
}
