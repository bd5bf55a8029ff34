package item

import (
	"strings"

	"github.com/dataflowql/jsoniq-core/jerrors"
)

// EmptyOrder controls where an empty/null placeholder sorts in an
// ordering comparison.
type EmptyOrder int

const (
	EmptyLeast EmptyOrder = iota
	EmptyGreatest
)

// Compare implements a total order for sort purposes: numerics
// promote and compare by value, strings compare by codepoint,
// booleans false<true, temporals compare chronologically
// (durations by total milliseconds/months within a family), and any
// other cross-type pairing is an error. This follows the same
// type-switch-with-promotion shape as datalog/compare.go's
// CompareValues, generalized with the decimal rung and the duration/
// temporal families the Datalog value algebra never needed.
func Compare(a, b Item) (int, error) {
	if IsNumeric(a) && IsNumeric(b) {
		return compareNumeric(a, b), nil
	}

	switch av := a.(type) {
	case String:
		if bv, ok := b.(String); ok {
			return strings.Compare(av.Value, bv.Value), nil
		}
	case Boolean:
		if bv, ok := b.(Boolean); ok {
			return cmpBool(av.Value, bv.Value), nil
		}
	case Duration:
		if bv, ok := b.(Duration); ok {
			return compareDurations(av, bv)
		}
	case Temporal:
		if bv, ok := b.(Temporal); ok && av.Precision == bv.Precision {
			return cmpTimeValue(av, bv), nil
		}
	}

	return 0, jerrors.NewTypeError(jerrors.Position{}, "cannot compare %s with %s", a.Kind(), b.Kind())
}

func cmpBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

func cmpTimeValue(a, b Temporal) int {
	if a.Value.Before(b.Value) {
		return -1
	}
	if a.Value.After(b.Value) {
		return 1
	}
	return 0
}

func compareDurations(a, b Duration) (int, error) {
	if a.Category != b.Category {
		return 0, jerrors.NewTypeError(jerrors.Position{}, "cannot compare incompatible duration families")
	}
	switch a.Category {
	case DurationYearMonth:
		return cmpInt64(a.Months, b.Months), nil
	case DurationDayTime:
		return cmpInt64(a.Millis, b.Millis), nil
	default:
		if c := cmpInt64(a.Months, b.Months); c != 0 {
			return c, nil
		}
		return cmpInt64(a.Millis, b.Millis), nil
	}
}

// Equal reports item-equality per the rules Compare uses, with binary
// items explicitly rejected (binary is not orderable or equatable as
// a key) and function items never equal.
func Equal(a, b Item) (bool, error) {
	if a.Kind() == KindFunction || b.Kind() == KindFunction {
		return false, nil
	}
	if a.Kind() == KindBinary || b.Kind() == KindBinary {
		return false, jerrors.NewTypeError(jerrors.Position{}, "binary items are not orderable/equatable")
	}
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull(), nil
	}
	c, err := Compare(a, b)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

// SortKey wraps a single ordering-column value together with its
// emptyOrder and direction, used by OrderBy (local and distributed).
// A nil Value represents the empty-sequence placeholder.
type SortKey struct {
	Value      Item // nil for empty-sequence placeholder
	EmptyOrder EmptyOrder
	Descending bool
}

// CompareKeys compares two SortKey values honoring emptyOrder and
// direction.
func CompareKeys(a, b SortKey) (int, error) {
	aEmpty, bEmpty := a.Value == nil, b.Value == nil
	if aEmpty || bEmpty {
		c := compareEmptyPlacement(aEmpty, bEmpty, a.EmptyOrder)
		if a.Descending {
			c = -c
		}
		return c, nil
	}
	if a.Value.Kind() == KindBinary || b.Value.Kind() == KindBinary {
		return 0, jerrors.NewNonAtomicKey(jerrors.Position{}, "binary items cannot be used as sort keys")
	}
	if a.Value.IsArray() || a.Value.IsObject() || a.Value.IsFunction() ||
		b.Value.IsArray() || b.Value.IsObject() || b.Value.IsFunction() {
		return 0, jerrors.NewNonAtomicKey(jerrors.Position{}, "sort key must be atomic, got %s/%s", a.Value.Kind(), b.Value.Kind())
	}
	c, err := Compare(a.Value, b.Value)
	if err != nil {
		return 0, jerrors.Wrap(jerrors.UnexpectedType, jerrors.Position{}, err, "incompatible sort key types")
	}
	if a.Descending {
		c = -c
	}
	return c, nil
}

// compareEmptyPlacement returns the sort-order comparison when at
// least one side is the empty placeholder; order (CompareKeys passes
// the left key's emptyOrder) decides where empties sit.
func compareEmptyPlacement(aEmpty, bEmpty bool, order EmptyOrder) int {
	if aEmpty && bEmpty {
		return 0
	}
	leastWins := -1
	if order == EmptyGreatest {
		leastWins = 1
	}
	if aEmpty {
		return leastWins
	}
	return -leastWins
}
