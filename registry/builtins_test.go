package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/iterator"
)

func literalArg(items ...item.Item) iterator.RuntimeIterator {
	return iterator.FromSlice(items)
}

func runBuiltin(t *testing.T, r *FunctionRegistry, name string, arity int, args []iterator.RuntimeIterator) []item.Item {
	t.Helper()
	factory, ok := r.Resolve(name, arity)
	require.True(t, ok, "%s#%d not registered", name, arity)
	it, err := factory(nil, args)
	require.NoError(t, err)
	require.NoError(t, it.Open(nil))
	defer it.Close()
	out, err := iterator.Drain(it)
	require.NoError(t, err)
	return out
}

func TestLowerCaseOfEmptySequenceIsEmptyString(t *testing.T) {
	r := NewFunctionRegistry()
	out := runBuiltin(t, r, "lower-case", 1, []iterator.RuntimeIterator{literalArg()})
	require.Len(t, out, 1)
	assert.Equal(t, "", out[0].(item.String).Value)
}

func TestLowerCaseLowercasesNonEmptyArgument(t *testing.T) {
	r := NewFunctionRegistry()
	out := runBuiltin(t, r, "lower-case", 1, []iterator.RuntimeIterator{literalArg(item.NewString("FooBar"))})
	assert.Equal(t, "foobar", out[0].(item.String).Value)
}

func TestUpperCase(t *testing.T) {
	r := NewFunctionRegistry()
	out := runBuiltin(t, r, "upper-case", 1, []iterator.RuntimeIterator{literalArg(item.NewString("ahoy"))})
	assert.Equal(t, "AHOY", out[0].(item.String).Value)
}

func TestStringLength(t *testing.T) {
	r := NewFunctionRegistry()
	out := runBuiltin(t, r, "string-length", 1, []iterator.RuntimeIterator{literalArg(item.NewString("hello"))})
	assert.Equal(t, int64(5), out[0].(item.Integer).Value)
}

func TestConcat(t *testing.T) {
	r := NewFunctionRegistry()
	out := runBuiltin(t, r, "concat", 2, []iterator.RuntimeIterator{
		literalArg(item.NewString("foo")), literalArg(item.NewString("bar")),
	})
	assert.Equal(t, "foobar", out[0].(item.String).Value)
}

func TestSubstringTwoArg(t *testing.T) {
	r := NewFunctionRegistry()
	out := runBuiltin(t, r, "substring", 2, []iterator.RuntimeIterator{
		literalArg(item.NewString("motorcycle")), literalArg(item.NewInteger(6)),
	})
	assert.Equal(t, "cycle", out[0].(item.String).Value)
}

func TestSubstringThreeArg(t *testing.T) {
	r := NewFunctionRegistry()
	out := runBuiltin(t, r, "substring", 3, []iterator.RuntimeIterator{
		literalArg(item.NewString("motorcycle")), literalArg(item.NewInteger(1)), literalArg(item.NewInteger(5)),
	})
	assert.Equal(t, "motor", out[0].(item.String).Value)
}

func TestCountOfSequence(t *testing.T) {
	r := NewFunctionRegistry()
	out := runBuiltin(t, r, "count", 1, []iterator.RuntimeIterator{
		literalArg(item.NewInteger(1), item.NewInteger(2), item.NewInteger(3)),
	})
	assert.Equal(t, int64(3), out[0].(item.Integer).Value)
}

func TestEmptyAndExistsAreComplementary(t *testing.T) {
	r := NewFunctionRegistry()
	emptyOut := runBuiltin(t, r, "empty", 1, []iterator.RuntimeIterator{literalArg()})
	existsOut := runBuiltin(t, r, "exists", 1, []iterator.RuntimeIterator{literalArg()})
	assert.True(t, emptyOut[0].(item.Boolean).Value)
	assert.False(t, existsOut[0].(item.Boolean).Value)
}

func TestSumAndAvg(t *testing.T) {
	r := NewFunctionRegistry()
	nums := func() []iterator.RuntimeIterator {
		return []iterator.RuntimeIterator{literalArg(item.NewInteger(1), item.NewInteger(2), item.NewInteger(3))}
	}
	sum := runBuiltin(t, r, "sum", 1, nums())
	avg := runBuiltin(t, r, "avg", 1, nums())
	assert.Equal(t, 6.0, sum[0].(item.Double).Value)
	assert.Equal(t, 2.0, avg[0].(item.Double).Value)
}

func TestSumOfEmptySequenceIsZero(t *testing.T) {
	r := NewFunctionRegistry()
	out := runBuiltin(t, r, "sum", 1, []iterator.RuntimeIterator{literalArg()})
	assert.Equal(t, int64(0), out[0].(item.Integer).Value)
}

func TestMinMax(t *testing.T) {
	r := NewFunctionRegistry()
	nums := func() []iterator.RuntimeIterator {
		return []iterator.RuntimeIterator{literalArg(item.NewInteger(5), item.NewInteger(1), item.NewInteger(3))}
	}
	min := runBuiltin(t, r, "min", 1, nums())
	max := runBuiltin(t, r, "max", 1, nums())
	assert.Equal(t, int64(1), min[0].(item.Integer).Value)
	assert.Equal(t, int64(5), max[0].(item.Integer).Value)
}

func TestAbs(t *testing.T) {
	r := NewFunctionRegistry()
	out := runBuiltin(t, r, "abs", 1, []iterator.RuntimeIterator{literalArg(item.NewInteger(-7))})
	assert.Equal(t, int64(7), out[0].(item.Integer).Value)
}

func TestRoundHalfUp(t *testing.T) {
	r := NewFunctionRegistry()
	out := runBuiltin(t, r, "round", 1, []iterator.RuntimeIterator{literalArg(item.NewDouble(2.5))})
	assert.Equal(t, int64(3), out[0].(item.Integer).Value)
}

func TestKeysRequiresObject(t *testing.T) {
	r := NewFunctionRegistry()
	factory, ok := r.Resolve("keys", 1)
	require.True(t, ok)
	it, err := factory(nil, []iterator.RuntimeIterator{literalArg(item.NewString("not an object"))})
	require.NoError(t, err)
	require.NoError(t, it.Open(nil))
	defer it.Close()
	_, err = iterator.Drain(it)
	assert.Error(t, err)
}

func TestKeysReturnsObjectKeys(t *testing.T) {
	r := NewFunctionRegistry()
	obj, err := item.NewObject([]string{"a", "b"}, []item.Item{item.NewInteger(1), item.NewInteger(2)})
	require.NoError(t, err)

	out := runBuiltin(t, r, "keys", 1, []iterator.RuntimeIterator{literalArg(obj)})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].(item.String).Value)
	assert.Equal(t, "b", out[1].(item.String).Value)
}

func TestDistinctValuesDedups(t *testing.T) {
	r := NewFunctionRegistry()
	out := runBuiltin(t, r, "distinct-values", 1, []iterator.RuntimeIterator{
		literalArg(item.NewInteger(1), item.NewInteger(2), item.NewInteger(1), item.NewInteger(3)),
	})
	assert.Len(t, out, 3)
}

func TestStringCastOfEmptyIsEmptyString(t *testing.T) {
	r := NewFunctionRegistry()
	out := runBuiltin(t, r, "string", 1, []iterator.RuntimeIterator{literalArg()})
	assert.Equal(t, "", out[0].(item.String).Value)
}

func TestBooleanCastUsesEffectiveBooleanValue(t *testing.T) {
	r := NewFunctionRegistry()
	out := runBuiltin(t, r, "boolean", 1, []iterator.RuntimeIterator{literalArg(item.NewInteger(0))})
	assert.False(t, out[0].(item.Boolean).Value)
}

func TestWrongArityReturnsInvalidArgument(t *testing.T) {
	r := NewFunctionRegistry()
	factory, ok := r.Resolve("concat", 2)
	require.True(t, ok)
	_, err := factory(nil, []iterator.RuntimeIterator{literalArg(item.NewString("only one"))})
	assert.Error(t, err)
}
