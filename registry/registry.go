// Package registry implements FunctionRegistry: a (name,
// arity)-keyed map from function identifier to the iterator factory
// that evaluates a call to it, generalizing janus-datalog's
// datalog/query.FunctionRegistry (a name-keyed validation table for
// Datalog predicate functions) to JSONiq's arity-exact built-in and
// user-defined function calls.
package registry

import (
	"github.com/dataflowql/jsoniq-core/expr"
	"github.com/dataflowql/jsoniq-core/jerrors"
)

// key is the (name, arity) pair every entry is stored under —
// resolution is arity-exact, with variadic built-ins modeled as
// several fixed-arity entries sharing the same name.
type key struct {
	name  string
	arity int
}

// FunctionRegistry holds both statically-registered built-ins and
// user-defined functions captured during prolog processing, satisfying
// expr.Registry so expr.Build can resolve KindFunctionCall nodes
// without importing this package.
type FunctionRegistry struct {
	entries map[key]expr.Factory
	// userDefined tracks which keys came from RegisterUserFunction, so
	// Register (built-ins) and RegisterUserFunction (prolog-declared
	// functions) can each enforce their own collision rule.
	userDefined map[key]bool
}

// NewFunctionRegistry builds a registry with every built-in function
// this module ships pre-registered.
func NewFunctionRegistry() *FunctionRegistry {
	r := &FunctionRegistry{
		entries:     make(map[key]expr.Factory),
		userDefined: make(map[key]bool),
	}
	registerBuiltins(r)
	return r
}

// Register adds a built-in (name, arity) entry, overwriting any
// previous built-in registration under the same key — used only at
// construction time by registerBuiltins.
func (r *FunctionRegistry) Register(name string, arity int, factory expr.Factory) {
	r.entries[key{name, arity}] = factory
}

// RegisterUserFunction adds a function declared in the query prolog.
// A user-defined function may shadow a built-in of the same
// (name, arity), but two user-defined functions may never collide.
func (r *FunctionRegistry) RegisterUserFunction(name string, arity int, factory expr.Factory) error {
	k := key{name, arity}
	if r.userDefined[k] {
		return jerrors.NewInvalidArgument(jerrors.Position{}, "function %s#%d is already declared", name, arity)
	}
	r.entries[k] = factory
	r.userDefined[k] = true
	return nil
}

// Resolve implements expr.Registry.
func (r *FunctionRegistry) Resolve(name string, arity int) (expr.Factory, bool) {
	f, ok := r.entries[key{name, arity}]
	return f, ok
}

// IsRegistered reports whether any (name, arity) entry exists,
// independent of which table (built-in or user) it came from.
func (r *FunctionRegistry) IsRegistered(name string, arity int) bool {
	_, ok := r.entries[key{name, arity}]
	return ok
}
