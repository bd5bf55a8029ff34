package item

import "github.com/dataflowql/jsoniq-core/ast"

// Function is the JSONiq function item: a closure over an AST body
// plus the environment captured at creation time. Two function items
// are never equal by value (see compare.go) — closures are reference-
// like even though Go values are copied, because each constructed
// closure snapshot is considered a fresh identity.
//
// Env is opaque here to avoid a dependency cycle between item and the
// runtime-context package that actually defines the environment
// shape; runtimectx/expr type-assert it back when invoking the
// function. This mirrors janus-datalog's own avoidance of cyclic
// registry/AST references (see datalog's (name,arity)-keyed function
// registry) by going through an indirection instead of a direct
// pointer into another package's types.
type Function struct {
	base
	Name   string
	Params []string
	Body   ast.Node
	Env    interface{}
}

func (Function) Kind() Kind       { return KindFunction }
func (Function) IsFunction() bool { return true }

func (f Function) String() string {
	s := "function("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	return s + ")"
}

func NewFunction(name string, params []string, body ast.Node, env interface{}) Function {
	return Function{Name: name, Params: params, Body: body, Env: env}
}

// Arity returns the number of formal parameters.
func (f Function) Arity() int { return len(f.Params) }
