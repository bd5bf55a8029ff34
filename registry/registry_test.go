package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

func TestNewFunctionRegistryPreregistersBuiltins(t *testing.T) {
	r := NewFunctionRegistry()
	assert.True(t, r.IsRegistered("count", 1))
	assert.False(t, r.IsRegistered("count", 2))
	assert.False(t, r.IsRegistered("no-such-function", 1))
}

func TestRegisterUserFunctionShadowsBuiltin(t *testing.T) {
	r := NewFunctionRegistry()
	called := false
	err := r.RegisterUserFunction("count", 1, func(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) {
		called = true
		return nil, nil
	})
	require.NoError(t, err)

	factory, ok := r.Resolve("count", 1)
	require.True(t, ok)
	_, _ = factory(nil, nil)
	assert.True(t, called)
}

func TestRegisterUserFunctionRejectsDuplicateUserDeclaration(t *testing.T) {
	r := NewFunctionRegistry()
	noop := func(ctx *runtimectx.Context, args []iterator.RuntimeIterator) (iterator.RuntimeIterator, error) { return nil, nil }

	require.NoError(t, r.RegisterUserFunction("local:f", 1, noop))
	err := r.RegisterUserFunction("local:f", 1, noop)
	assert.Error(t, err)
}

func TestResolveIsArityExact(t *testing.T) {
	r := NewFunctionRegistry()
	_, ok := r.Resolve("substring", 2)
	assert.True(t, ok)
	_, ok = r.Resolve("substring", 3)
	assert.True(t, ok)
	_, ok = r.Resolve("substring", 4)
	assert.False(t, ok)
}
