package jerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageIncludesCategoryAndPosition(t *testing.T) {
	err := NewTypeError(Position{File: "q.jq", Line: 2, Column: 5}, "bad type %s", "foo")
	assert.Contains(t, err.Error(), "TypeError")
	assert.Contains(t, err.Error(), "q.jq:2:5")
	assert.Contains(t, err.Error(), "bad type foo")
}

func TestOfReportsCategory(t *testing.T) {
	err := NewDynamicError(Position{}, "boom")
	cat, ok := Of(err)
	require.True(t, ok)
	assert.Equal(t, DynamicError, cat)
}

func TestOfFalseForPlainError(t *testing.T) {
	_, ok := Of(errors.New("plain"))
	assert.False(t, ok)
}

func TestWrapPreservesCauseForUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(SchemaMismatch, Position{}, cause, "schema mismatch")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestIsMatchesByCategoryOnly(t *testing.T) {
	err := NewFunctionNotFound(Position{}, "foo/2")
	sentinel := &Error{Category: FunctionNotFound}
	assert.True(t, errors.Is(err, sentinel))

	other := &Error{Category: TypeError}
	assert.False(t, errors.Is(err, other))
}

func TestNewCancelledCategory(t *testing.T) {
	err := NewCancelled()
	assert.Equal(t, Cancelled, err.Category)
}
